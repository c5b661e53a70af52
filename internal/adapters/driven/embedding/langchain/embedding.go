// Package langchain provides the embedding service backed by langchaingo,
// talking to either an Ollama server or an OpenAI-compatible API.
package langchain

import (
	"context"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/IQ2i/thot/internal/core/domain"
	"github.com/IQ2i/thot/internal/core/ports/driven"
	"github.com/IQ2i/thot/internal/logger"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Supported providers.
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

// Default configuration values.
const (
	DefaultOllamaURL   = "http://localhost:11434"
	DefaultOllamaModel = "nomic-embed-text"
	DefaultOpenAIModel = "text-embedding-3-small"
)

// Config selects the embedding backend.
type Config struct {
	// Provider is ProviderOllama or ProviderOpenAI.
	Provider string

	// Model is the embedding model; empty selects the provider default.
	Model string

	// BaseURL is the server root; empty selects the provider default.
	BaseURL string

	// APIKey is required by OpenAI.
	APIKey string
}

// EmbeddingService generates embeddings through a langchaingo embedder.
type EmbeddingService struct {
	embedder embeddings.Embedder
	model    string
}

// New creates an embedding service for the configured provider.
func New(cfg Config) (*EmbeddingService, error) {
	switch cfg.Provider {
	case ProviderOllama:
		if cfg.Model == "" {
			cfg.Model = DefaultOllamaModel
		}
		if cfg.BaseURL == "" {
			cfg.BaseURL = DefaultOllamaURL
		}
		llm, err := ollama.New(
			ollama.WithModel(cfg.Model),
			ollama.WithServerURL(cfg.BaseURL),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama client: %w", err)
		}
		return wrap(llm, cfg.Model)

	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: openai api key required", domain.ErrInvalidInput)
		}
		if cfg.Model == "" {
			cfg.Model = DefaultOpenAIModel
		}
		opts := []openai.Option{
			openai.WithToken(cfg.APIKey),
			openai.WithEmbeddingModel(cfg.Model),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		llm, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("create openai client: %w", err)
		}
		return wrap(llm, cfg.Model)

	default:
		return nil, fmt.Errorf("%w: unsupported embedding provider %q", domain.ErrInvalidInput, cfg.Provider)
	}
}

func wrap(client embeddings.EmbedderClient, model string) (*EmbeddingService, error) {
	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}
	return &EmbeddingService{embedder: embedder, model: model}, nil
}

// EmbedBatch generates one embedding per text, in order.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	start := time.Now()
	vectors, err := s.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed batch: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embed batch: got %d vectors for %d texts", len(vectors), len(texts))
	}

	logger.Debug("embedded %d texts with %s in %s", len(texts), s.model, time.Since(start).Round(time.Millisecond))
	return vectors, nil
}

// ModelName returns the embedding model in use.
func (s *EmbeddingService) ModelName() string {
	return s.model
}
