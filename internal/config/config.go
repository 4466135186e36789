// Package config loads the techmatch configuration from a TOML file, with
// sensible defaults and an environment fallback for API keys.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/vitrine-labs/techmatch/internal/chunker"
	"github.com/vitrine-labs/techmatch/internal/core/services"
)

// DefaultDirName is the directory under the user's home that holds the
// config file and the database.
const DefaultDirName = ".techmatch"

// Config is the full application configuration.
type Config struct {
	Embedding Embedding `toml:"embedding"`
	Storage   Storage   `toml:"storage"`
	Chunking  Chunking  `toml:"chunking"`
	Search    Search    `toml:"search"`
}

// Embedding configures the embedding provider.
type Embedding struct {
	// Provider selects the adapter: "gemini" (default) or "openai".
	Provider string `toml:"provider"`

	// APIKey authenticates against the provider. When empty, falls back
	// to GEMINI_API_KEY or OPENAI_API_KEY depending on the provider.
	APIKey string `toml:"api_key"`

	// Model overrides the provider's default embedding model.
	Model string `toml:"model"`

	// BaseURL overrides the provider's API endpoint, for compatible
	// gateways. Empty selects the provider default.
	BaseURL string `toml:"base_url"`

	// RequestsPerMinute caps outbound embedding calls (gemini only).
	RequestsPerMinute int `toml:"requests_per_minute"`
}

// Storage configures the backing database.
type Storage struct {
	// DataDir holds the SQLite database. Empty means ~/.techmatch/data.
	DataDir string `toml:"data_dir"`
}

// Chunking configures document splitting.
type Chunking struct {
	ChunkSize    int `toml:"chunk_size"`
	ChunkOverlap int `toml:"chunk_overlap"`
}

// Search configures similarity query defaults.
type Search struct {
	Limit  int     `toml:"limit"`
	Cutoff float64 `toml:"cutoff"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Embedding: Embedding{
			Provider: "gemini",
		},
		Chunking: Chunking{
			ChunkSize:    chunker.DefaultChunkSize,
			ChunkOverlap: chunker.DefaultChunkOverlap,
		},
		Search: Search{
			Limit:  services.DefaultSimilarityLimit,
			Cutoff: services.DefaultSimilarityCutoff,
		},
	}
}

// Load reads the configuration from path. An empty path defaults to
// ~/.techmatch/config.toml; a missing file yields the defaults. Values absent
// from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName, "config.toml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			resolveAPIKey(&cfg)
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	resolveAPIKey(&cfg)
	return cfg, nil
}

// resolveAPIKey fills the API key from the environment when the file left it
// empty.
func resolveAPIKey(cfg *Config) {
	if cfg.Embedding.APIKey != "" {
		return
	}
	switch cfg.Embedding.Provider {
	case "openai":
		cfg.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
	default:
		cfg.Embedding.APIKey = os.Getenv("GEMINI_API_KEY")
	}
}
