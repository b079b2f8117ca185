package embedding

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type InferenceProvider struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func newInferenceProvider(cfg *Config) (*InferenceProvider, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("inference: missing EMBEDDING_ENDPOINT")
	}

	timeout := cfg.HTTPTimeoutS
	if timeout <= 0 {
		timeout = 30
	}

	// Remove trailing slash if user added it.
	base := strings.TrimRight(cfg.Endpoint, "/")

	return &InferenceProvider{
		baseURL:    base,
		token:      cfg.APIKey,
		httpClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}, nil
}

// Embed generates embeddings for the given texts using the specified model.
// It uses the OpenAI-compatible /embeddings endpoint.
func (p *InferenceProvider) Embed(ctx context.Context, model string, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("inference: no texts provided")
	}
	if model == "" {
		return nil, fmt.Errorf("inference: model is required")
	}

	reqBody := map[string]any{
		"model": model,
		"input": texts,
	}

	var parsed struct {
		Data []struct {
			Index     int       `json:"index"`
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}

	if err := p.postJSON(ctx, p.baseURL+"/embeddings", reqBody, &parsed); err != nil {
		return nil, err
	}

	if len(parsed.Data) != len(texts) {
		return nil, fmt.Errorf("inference: got %d embeddings for %d texts", len(parsed.Data), len(texts))
	}

	out := make([][]float32, len(texts))
	for _, d := range parsed.Data {
		if d.Index < 0 || d.Index >= len(out) {
			return nil, fmt.Errorf("inference: embedding index %d out of range", d.Index)
		}
		out[d.Index] = d.Embedding
	}
	return out, nil
}

// Close releases idle keep-alive connections.
func (p *InferenceProvider) Close() error {
	p.httpClient.CloseIdleConnections()
	return nil
}
