package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vitrine-labs/techmatch/internal/core/domain"
)

var (
	addID          string
	addTitle       string
	addDescription string
	addExcerpt     string
	addTRL         string
	addFile        string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Store a technology and index its embeddings",
	Long: `Stores a technology record and replaces its embedding rows. Fields can be
given as flags or read from a JSON file with {"title", "description",
"excerpt", "trl"}. If indexing fails the record is still saved, just without
search visibility; run "techmatch reindex" to retry.`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addID, "id", "", "technology ID (generated when empty)")
	addCmd.Flags().StringVar(&addTitle, "title", "", "technology title")
	addCmd.Flags().StringVar(&addDescription, "description", "", "long-form description")
	addCmd.Flags().StringVar(&addExcerpt, "excerpt", "", "short summary")
	addCmd.Flags().StringVar(&addTRL, "trl", "", "maturity level, free-form")
	addCmd.Flags().StringVarP(&addFile, "file", "f", "", "read fields from a JSON file")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, _ []string) error {
	input := domain.TechnologyInput{
		Title:       addTitle,
		Description: addDescription,
		Excerpt:     addExcerpt,
		TRL:         addTRL,
	}

	if addFile != "" {
		data, err := os.ReadFile(addFile)
		if err != nil {
			return fmt.Errorf("read input file: %w", err)
		}
		if err := json.Unmarshal(data, &input); err != nil {
			return fmt.Errorf("parse input file: %w", err)
		}
	}

	if err := input.Validate(); err != nil {
		return err
	}

	id := addID
	if id == "" {
		id = uuid.New().String()
	}

	ctx := context.Background()
	tech := &domain.Technology{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		Excerpt:     input.Excerpt,
		TRL:         input.TRL,
	}
	if err := technologyStore.SaveTechnology(ctx, tech); err != nil {
		return fmt.Errorf("save technology: %w", err)
	}

	if indexingService.StoreTechnologyEmbeddings(ctx, id, input) {
		cmd.Printf("Stored and indexed technology %s\n", id)
	} else {
		cmd.Printf("Stored technology %s without search visibility; run \"techmatch reindex %s\" to retry\n", id, id)
	}
	return nil
}
