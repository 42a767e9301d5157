// Package llm abstracts the text-generation backend behind a small Client
// interface, with an OpenAI implementation, a deterministic offline mock, and
// a retry decorator for transient provider failures.
package llm

import (
	"context"
	"fmt"

	"github.com/MohammadAbidShah/Resume-builder-ai/internal/config"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/errors"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/logging"
)

// Request carries one completion request. System sets behavior, User carries
// the task payload.
type Request struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// Response is the completion text plus the model that produced it.
type Response struct {
	Content string
	Model   string
}

// Client is the minimal completion surface the generator needs.
type Client interface {
	Complete(ctx context.Context, req Request) (Response, error)
	Model() string
}

// New builds the client named by cfg.LLM.Provider, wrapped with retry.
func New(cfg config.Config, logger logging.Logger) (Client, error) {
	logger = logging.OrNop(logger)

	var inner Client
	switch cfg.LLM.Provider {
	case config.ProviderMock:
		inner = NewMockClient(cfg.LLM.Model)
	case config.ProviderOpenAI:
		client, err := NewOpenAIClient(cfg.LLM)
		if err != nil {
			return nil, err
		}
		inner = client
	default:
		return nil, errors.NewInputError("llm.provider", "unknown provider %q", cfg.LLM.Provider)
	}

	logger.Info("LLM client ready: provider=%s model=%s", cfg.LLM.Provider, inner.Model())
	return WithRetry(inner, errors.DefaultRetryConfig(), logger), nil
}

// retryClient decorates a Client with transient-error retries.
type retryClient struct {
	inner  Client
	config errors.RetryConfig
	logger logging.Logger
}

// WithRetry wraps client so transient failures (rate limits, timeouts,
// overloaded upstreams) are retried with exponential backoff.
func WithRetry(client Client, cfg errors.RetryConfig, logger logging.Logger) Client {
	return &retryClient{inner: client, config: cfg, logger: logging.OrNop(logger)}
}

func (r *retryClient) Complete(ctx context.Context, req Request) (Response, error) {
	resp, err := errors.RetryWithResult(ctx, r.config, func(ctx context.Context) (Response, error) {
		return r.inner.Complete(ctx, req)
	})
	if err != nil {
		return Response{}, fmt.Errorf("llm completion: %w", err)
	}
	return resp, nil
}

func (r *retryClient) Model() string { return r.inner.Model() }
