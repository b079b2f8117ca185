package translation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// ErrMalformedReply is returned when the model does not answer with a JSON
// array of the expected length.
var ErrMalformedReply = errors.New("translation: malformed reply")

// ChatClient is the subset of *openai.Client used for translation.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// BackTranslator round-trips sentences through a pivot language with a chat model.
type BackTranslator struct {
	client    ChatClient
	model     string
	source    string
	pivot     string
	batchSize int
}

// NewChatClient builds an OpenAI SDK client from cfg.
func NewChatClient(cfg *Config) ChatClient {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	return openai.NewClientWithConfig(config)
}

// NewBackTranslator validates cfg and binds it to client.
func NewBackTranslator(cfg *Config, client ChatClient) (*BackTranslator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = 32
	}
	return &BackTranslator{
		client:    client,
		model:     cfg.Model,
		source:    cfg.SourceLanguage,
		pivot:     cfg.PivotLanguage,
		batchSize: batch,
	}, nil
}

// Augment translates sentences to the pivot language and back. The result is
// positionally aligned with the input.
func (b *BackTranslator) Augment(ctx context.Context, sentences []string) ([]string, error) {
	out := make([]string, 0, len(sentences))
	for start := 0; start < len(sentences); start += b.batchSize {
		end := min(start+b.batchSize, len(sentences))

		pivoted, err := b.translate(ctx, sentences[start:end], b.source, b.pivot)
		if err != nil {
			return nil, err
		}
		back, err := b.translate(ctx, pivoted, b.pivot, b.source)
		if err != nil {
			return nil, err
		}
		out = append(out, back...)
	}
	return out, nil
}

func (b *BackTranslator) translate(ctx context.Context, sentences []string, from, to string) ([]string, error) {
	payload, err := json.Marshal(sentences)
	if err != nil {
		return nil, fmt.Errorf("translation: encode sentences: %w", err)
	}

	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       b.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(from, to)},
			{Role: openai.ChatMessageRoleUser, Content: string(payload)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("translation: %s to %s: %w", from, to, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices", ErrMalformedReply)
	}

	translated, err := parseReply(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	if len(translated) != len(sentences) {
		return nil, fmt.Errorf("%w: %d sentences for %d inputs", ErrMalformedReply, len(translated), len(sentences))
	}
	return translated, nil
}

func systemPrompt(from, to string) string {
	return fmt.Sprintf("Translate every string of the JSON array from %s to %s. "+
		"Answer with a JSON array of strings only, with exactly one translation per input, in the same order.", from, to)
}

// parseReply extracts a JSON string array, tolerating a surrounding markdown code fence.
func parseReply(content string) ([]string, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	var out []string
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	return out, nil
}
