package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitrine-labs/techmatch/internal/adapters/driven/ai"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show storage state and embedding provider connectivity",
	Long: `Reports the database location, the number of stored technologies, and
whether the configured embedding provider answers a connectivity check.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	techs, err := technologyStore.ListTechnologies(context.Background())
	if err != nil {
		return fmt.Errorf("list technologies: %w", err)
	}

	provider := cfg.Embedding.Provider
	if provider == "" {
		provider = "gemini"
	}

	cmd.Printf("Database:     %s\n", store.Path())
	cmd.Printf("Technologies: %d\n", len(techs))
	cmd.Printf("Provider:     %s\n", provider)

	svc, err := ai.CreateAndValidateEmbeddingService(cfg.Embedding)
	if err != nil {
		cmd.Printf("Embedding:    unavailable (%v)\n", err)
		return nil
	}
	defer svc.Close() //nolint:errcheck

	cmd.Printf("Embedding:    ok (%s, %d dimensions)\n", svc.ModelName(), svc.Dimensions())
	return nil
}
