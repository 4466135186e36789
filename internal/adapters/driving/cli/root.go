// Package cli wires the cobra command tree for the techmatch binary.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vitrine-labs/techmatch/internal/adapters/driven/ai"
	"github.com/vitrine-labs/techmatch/internal/adapters/driven/storage/sqlite"
	"github.com/vitrine-labs/techmatch/internal/chunker"
	"github.com/vitrine-labs/techmatch/internal/config"
	"github.com/vitrine-labs/techmatch/internal/core/ports/driven"
	"github.com/vitrine-labs/techmatch/internal/core/ports/driving"
	"github.com/vitrine-labs/techmatch/internal/core/services"
	"github.com/vitrine-labs/techmatch/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	flagConfig  string
	flagDataDir string
	flagVerbose bool
)

// Wired services, shared by subcommands.
var (
	cfg               config.Config
	store             *sqlite.Store
	technologyStore   driven.TechnologyStore
	embeddingService  driven.EmbeddingService
	indexingService   driving.IndexingService
	similarityService driving.SimilarityService
)

var rootCmd = &cobra.Command{
	Use:   "techmatch",
	Short: "Semantic similarity search over marketplace technologies",
	Long: `techmatch maintains vector embeddings for technology records and answers
"which technologies resemble this one" queries with cosine similarity.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
	PersistentPostRun: closeServices,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default ~/.techmatch/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "database directory (default ~/.techmatch/data)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initServices loads configuration and wires stores and services before any
// subcommand runs.
func initServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(flagVerbose)

	var err error
	cfg, err = config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dataDir := flagDataDir
	if dataDir == "" {
		dataDir = cfg.Storage.DataDir
	}

	store, err = sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	technologyStore = store.TechnologyStore()
	embeddingStore := store.EmbeddingStore()

	// A missing API key degrades to record management without search
	// visibility rather than failing every command.
	embeddingService, err = ai.CreateEmbeddingService(cfg.Embedding)
	if err != nil {
		logger.Warn("Embedding service not configured: %v", err)
		embeddingService = nil
	}

	c := chunker.New(
		chunker.WithChunkSize(cfg.Chunking.ChunkSize),
		chunker.WithOverlap(cfg.Chunking.ChunkOverlap),
	)
	indexingService = services.NewIndexingService(embeddingStore, embeddingService, c)
	similarityService = services.NewSimilarityService(embeddingStore, embeddingService)

	return nil
}

// closeServices releases wired resources.
func closeServices(_ *cobra.Command, _ []string) {
	if embeddingService != nil {
		embeddingService.Close() //nolint:errcheck
	}
	if store != nil {
		store.Close() //nolint:errcheck
	}
}
