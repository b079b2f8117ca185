package embedding

import (
	"context"
	"fmt"
)

// Client binds a Provider to one model. It satisfies embedcache.Embedder.
type Client struct {
	provider Provider
	name     string
	model    string
}

// NewProvider builds the provider selected by cfg.Provider.
func NewProvider(cfg *Config) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Provider {
	case ProviderOpenAI:
		return newOpenAIProvider(cfg), nil
	default:
		return newInferenceProvider(cfg)
	}
}

// NewClient constructs a Client from an already-instantiated Provider.
func NewClient(cfg *Config, p Provider) *Client {
	return &Client{provider: p, name: cfg.Provider, model: cfg.Model}
}

// ID identifies the provider and model, e.g. "inference:sentence-transformers/all-MiniLM-L6-v2".
func (c *Client) ID() string {
	return c.name + ":" + c.model
}

// Encode returns one raw, unnormalized vector per text.
func (c *Client) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	vectors, err := c.provider.Embed(ctx, c.model, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding %d texts with %s: %w", len(texts), c.ID(), err)
	}
	return vectors, nil
}
