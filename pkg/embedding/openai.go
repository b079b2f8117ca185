package embedding

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider computes embeddings through the OpenAI SDK. Any
// OpenAI-compatible server can be targeted by setting the endpoint.
type OpenAIProvider struct {
	client *openai.Client
}

func newOpenAIProvider(cfg *Config) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		config.BaseURL = cfg.Endpoint
	}
	return &OpenAIProvider{client: openai.NewClientWithConfig(config)}
}

func (p *OpenAIProvider) Embed(ctx context.Context, model string, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("openai: no texts provided")
	}

	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: openai.EmbeddingModel(model),
	})
	if err != nil {
		return nil, fmt.Errorf("openai: create embeddings: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("openai: got %d embeddings for %d texts", len(resp.Data), len(texts))
	}

	out := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(out) {
			return nil, fmt.Errorf("openai: embedding index %d out of range", d.Index)
		}
		out[d.Index] = d.Embedding
	}
	return out, nil
}
