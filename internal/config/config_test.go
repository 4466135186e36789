package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrine-labs/techmatch/internal/chunker"
	"github.com/vitrine-labs/techmatch/internal/core/services"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "gemini", cfg.Embedding.Provider)
	assert.Equal(t, chunker.DefaultChunkSize, cfg.Chunking.ChunkSize)
	assert.Equal(t, chunker.DefaultChunkOverlap, cfg.Chunking.ChunkOverlap)
	assert.Equal(t, services.DefaultSimilarityLimit, cfg.Search.Limit)
	assert.Equal(t, services.DefaultSimilarityCutoff, cfg.Search.Cutoff)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
[embedding]
provider = "openai"
api_key = "sk-test"
model = "text-embedding-3-large"
base_url = "http://localhost:9090/v1"

[storage]
data_dir = "/var/lib/techmatch"

[chunking]
chunk_size = 1024
chunk_overlap = 100

[search]
limit = 5
cutoff = 0.3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Embedding.Provider)
	assert.Equal(t, "sk-test", cfg.Embedding.APIKey)
	assert.Equal(t, "text-embedding-3-large", cfg.Embedding.Model)
	assert.Equal(t, "http://localhost:9090/v1", cfg.Embedding.BaseURL)
	assert.Equal(t, "/var/lib/techmatch", cfg.Storage.DataDir)
	assert.Equal(t, 1024, cfg.Chunking.ChunkSize)
	assert.Equal(t, 100, cfg.Chunking.ChunkOverlap)
	assert.Equal(t, 5, cfg.Search.Limit)
	assert.Equal(t, 0.3, cfg.Search.Cutoff)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
[search]
limit = 10
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Search.Limit)
	assert.Equal(t, services.DefaultSimilarityCutoff, cfg.Search.Cutoff)
	assert.Equal(t, "gemini", cfg.Embedding.Provider)
	assert.Equal(t, chunker.DefaultChunkSize, cfg.Chunking.ChunkSize)
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Chunking, cfg.Chunking)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfig(t, `[embedding`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_APIKeyFromEnvironment(t *testing.T) {
	t.Run("gemini", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "env-gemini-key")

		cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		require.NoError(t, err)
		assert.Equal(t, "env-gemini-key", cfg.Embedding.APIKey)
	})

	t.Run("openai", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "env-openai-key")
		path := writeConfig(t, `
[embedding]
provider = "openai"
`)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "env-openai-key", cfg.Embedding.APIKey)
	})

	t.Run("file key wins over environment", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "env-key")
		path := writeConfig(t, `
[embedding]
api_key = "file-key"
`)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "file-key", cfg.Embedding.APIKey)
	})
}
