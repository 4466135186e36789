// Package ai provides factory functions for creating embedding service
// adapters from configuration.
package ai

import (
	"context"
	"fmt"
	"time"

	geminiembed "github.com/vitrine-labs/techmatch/internal/adapters/driven/embedding/gemini"
	openaiembed "github.com/vitrine-labs/techmatch/internal/adapters/driven/embedding/openai"
	"github.com/vitrine-labs/techmatch/internal/config"
	"github.com/vitrine-labs/techmatch/internal/core/domain"
	"github.com/vitrine-labs/techmatch/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for connectivity validation.
const pingTimeout = 5 * time.Second

// CreateEmbeddingService creates an embedding service for the configured
// provider. An empty provider selects Gemini, the production model.
func CreateEmbeddingService(cfg config.Embedding) (driven.EmbeddingService, error) {
	switch cfg.Provider {
	case "", "gemini":
		return geminiembed.NewEmbeddingService(geminiembed.Config{
			APIKey:            cfg.APIKey,
			BaseURL:           cfg.BaseURL,
			Model:             cfg.Model,
			RequestsPerMinute: cfg.RequestsPerMinute,
		})
	case "openai":
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
	default:
		return nil, fmt.Errorf("%w: unknown embedding provider %q", domain.ErrInvalidInput, cfg.Provider)
	}
}

// CreateAndValidateEmbeddingService creates an embedding service and
// validates connectivity with a lightweight ping before committing to it.
func CreateAndValidateEmbeddingService(cfg config.Embedding) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable: %w", domain.ErrEmbeddingUnavailable, err)
	}

	return svc, nil
}
