package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vitrine-labs/techmatch/internal/core/domain"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored technologies",
	RunE:  runList,
}

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a technology and its index state",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a technology and its embeddings",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var reindexCmd = &cobra.Command{
	Use:   "reindex [id]",
	Short: "Rebuild the embedding rows for a stored technology",
	Args:  cobra.ExactArgs(1),
	RunE:  runReindex,
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(reindexCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	techs, err := technologyStore.ListTechnologies(context.Background())
	if err != nil {
		return fmt.Errorf("list technologies: %w", err)
	}

	if len(techs) == 0 {
		cmd.Println("No technologies stored.")
		return nil
	}

	for _, tech := range techs {
		cmd.Printf("  %s  %s\n", tech.ID, tech.Title)
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	tech, err := technologyStore.GetTechnology(ctx, args[0])
	if err != nil {
		return fmt.Errorf("get technology: %w", err)
	}

	entries, err := store.EmbeddingStore().GetEmbeddings(ctx, tech.ID)
	if err != nil {
		return fmt.Errorf("get embeddings: %w", err)
	}

	cmd.Printf("ID:          %s\n", tech.ID)
	cmd.Printf("Title:       %s\n", tech.Title)
	if tech.TRL != "" {
		cmd.Printf("TRL:         %s\n", tech.TRL)
	}
	if tech.Excerpt != "" {
		cmd.Printf("Excerpt:     %s\n", tech.Excerpt)
	}
	if tech.Description != "" {
		cmd.Printf("Description: %s\n", tech.Description)
	}
	cmd.Printf("Indexed:     %d chunks\n", len(entries))
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	if err := technologyStore.DeleteTechnology(context.Background(), args[0]); err != nil {
		return fmt.Errorf("delete technology: %w", err)
	}
	cmd.Printf("Deleted technology %s\n", args[0])
	return nil
}

func runReindex(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	tech, err := technologyStore.GetTechnology(ctx, args[0])
	if err != nil {
		return fmt.Errorf("get technology: %w", err)
	}

	input := technologyInput(tech)
	if indexingService.StoreTechnologyEmbeddings(ctx, tech.ID, input) {
		cmd.Printf("Reindexed technology %s\n", tech.ID)
		return nil
	}
	return fmt.Errorf("reindex failed for %s; see log for detail", tech.ID)
}

// technologyInput rebuilds the indexing input from a stored record.
func technologyInput(tech *domain.Technology) domain.TechnologyInput {
	return domain.TechnologyInput{
		Title:       tech.Title,
		Description: tech.Description,
		Excerpt:     tech.Excerpt,
		TRL:         tech.TRL,
	}
}
