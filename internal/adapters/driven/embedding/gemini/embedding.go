// Package gemini provides an embedding service adapter for the Google
// Generative Language API. text-embedding-004 is the production model; its
// 768-dimensional output matches the stored schema.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/vitrine-labs/techmatch/internal/core/domain"
	"github.com/vitrine-labs/techmatch/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "text-embedding-004"
	DefaultTimeout = 60 * time.Second

	// DefaultRequestsPerMinute throttles outbound calls below the API
	// quota. Retrying on 429 is the caller's business, not this layer's.
	DefaultRequestsPerMinute = 100
)

// Config holds configuration for the Gemini embedding service.
type Config struct {
	// APIKey is the Generative Language API key (required).
	APIKey string

	// BaseURL is the API base URL (default: the public v1beta endpoint).
	BaseURL string

	// Model is the embedding model to use (default: text-embedding-004).
	Model string

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration

	// RequestsPerMinute caps the outbound request rate (default: 100).
	RequestsPerMinute int
}

// EmbeddingService generates embeddings using the Gemini API.
type EmbeddingService struct {
	client  *http.Client
	limiter *rate.Limiter
	baseURL string
	apiKey  string
	model   string
}

// content is the Gemini content payload: a list of text parts.
type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// embedRequest is the embedContent request format.
type embedRequest struct {
	Model   string  `json:"model"`
	Content content `json:"content"`
}

// batchEmbedRequest is the batchEmbedContents request format.
type batchEmbedRequest struct {
	Requests []embedRequest `json:"requests"`
}

// embeddingValues holds one returned vector.
type embeddingValues struct {
	Values []float32 `json:"values"`
}

// apiError is the error envelope shared by all endpoints.
type apiError struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

type embedResponse struct {
	Embedding embeddingValues `json:"embedding"`
	apiError
}

type batchEmbedResponse struct {
	Embeddings []embeddingValues `json:"embeddings"`
	apiError
}

// NewEmbeddingService creates a new Gemini embedding service.
func NewEmbeddingService(cfg Config) (*EmbeddingService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = DefaultRequestsPerMinute
	}

	return &EmbeddingService{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), 1),
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}, nil
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	body, err := s.post(ctx, fmt.Sprintf("%s/models/%s:embedContent", s.baseURL, s.model), embedRequest{
		Model:   "models/" + s.model,
		Content: content{Parts: []part{{Text: text}}},
	})
	if err != nil {
		return nil, err
	}

	var resp embedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", domain.ErrEmbeddingUpstream, err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmbeddingUpstream, resp.Error.Message)
	}
	if len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("%w: no embedding returned", domain.ErrEmbeddingUpstream)
	}

	return resp.Embedding.Values, nil
}

// EmbedBatch generates embeddings for multiple texts in one request.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	req := batchEmbedRequest{Requests: make([]embedRequest, len(texts))}
	for i, text := range texts {
		req.Requests[i] = embedRequest{
			Model:   "models/" + s.model,
			Content: content{Parts: []part{{Text: text}}},
		}
	}

	body, err := s.post(ctx, fmt.Sprintf("%s/models/%s:batchEmbedContents", s.baseURL, s.model), req)
	if err != nil {
		return nil, err
	}

	var resp batchEmbedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", domain.ErrEmbeddingUpstream, err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmbeddingUpstream, resp.Error.Message)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts",
			domain.ErrEmbeddingUpstream, len(resp.Embeddings), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for i, e := range resp.Embeddings {
		vectors[i] = e.Values
	}
	return vectors, nil
}

// post sends a JSON request and returns the raw response body. Non-2xx
// statuses are reported as upstream failures; the body is still returned to
// the caller on success for decoding.
func (s *EmbeddingService) post(ctx context.Context, url string, payload any) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUpstream, err)
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", domain.ErrEmbeddingUpstream, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrEmbeddingUpstream, resp.StatusCode, string(body))
	}

	return body, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return domain.EmbeddingDimensions
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return s.model
}

// Ping validates the service is reachable by fetching the model metadata.
// Lightweight: validates the API key without running inference.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	url := fmt.Sprintf("%s/models/%s", s.baseURL, s.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("gemini: create ping request: %w", err)
	}
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("gemini: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("gemini: API returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return fmt.Errorf("gemini: API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
