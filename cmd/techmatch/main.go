// Command techmatch manages technology embeddings and similarity search.
package main

import "github.com/vitrine-labs/techmatch/internal/adapters/driving/cli"

func main() {
	cli.Execute()
}
