package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitrine-labs/techmatch/internal/core/domain"
	"github.com/vitrine-labs/techmatch/internal/core/ports/driving"
	"github.com/vitrine-labs/techmatch/internal/logger"
)

var (
	searchLimit  int
	searchCutoff float64
	searchJSON   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [title]",
	Short: "Find technologies similar to a title",
	Long: `Embeds the given title and returns the stored technologies nearest to it
by cosine similarity. The technology carrying that exact title is excluded
so a record never matches itself.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default from config)")
	searchCmd.Flags().Float64Var(&searchCutoff, "cutoff", 0, "minimum similarity score, exclusive (default from config)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	title := args[0]

	opts := driving.SimilarityOptions{
		Limit: searchLimit,
	}
	if opts.Limit <= 0 {
		opts.Limit = cfg.Search.Limit
	}

	// An explicit --cutoff wins even at zero; otherwise the config value
	// applies.
	cutoff := cfg.Search.Cutoff
	if cmd.Flags().Changed("cutoff") {
		cutoff = searchCutoff
	}
	opts.Cutoff = &cutoff

	results, err := similarityService.FindSimilarTechnologies(context.Background(), title, opts)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return err
		}
		// Upstream detail goes to the log, not the caller.
		logger.Error("Similarity search failed: %v", err)
		return errors.New("search unavailable")
	}

	if searchJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(results) == 0 {
		cmd.Println("No similar technologies found.")
		return nil
	}

	cmd.Println("Similar technologies:")
	cmd.Println()
	for i, r := range results {
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, r.Title, r.Similarity)
		if r.TRL != "" {
			cmd.Printf("      TRL: %s\n", r.TRL)
		}
		if r.Excerpt != "" {
			cmd.Printf("      %s\n", r.Excerpt)
		}
		cmd.Println()
	}
	return nil
}
