package embedding

import "fmt"

const (
	// ProviderInference talks to an OpenAI-compatible /embeddings endpoint with a service token.
	ProviderInference = "inference"
	// ProviderOpenAI uses the OpenAI SDK.
	ProviderOpenAI = "openai"

	// DefaultModel is the sentence-transformers model perturbation rankings were calibrated on.
	DefaultModel = "sentence-transformers/all-MiniLM-L6-v2"
)

type Config struct {
	// Which provider to use: "openai" or "inference"
	Provider string `yaml:"provider" envconfig:"EMBEDDING_PROVIDER" default:"inference"`

	// Endpoint is the API base URL, e.g. http://localhost:8080/v1
	Endpoint string `yaml:"endpoint" envconfig:"EMBEDDING_ENDPOINT"`

	// APIKey is sent as a bearer token. Required by the openai provider.
	APIKey string `yaml:"api_key" envconfig:"EMBEDDING_API_KEY"`

	Model string `yaml:"model" envconfig:"EMBEDDING_MODEL" default:"sentence-transformers/all-MiniLM-L6-v2"`

	// http timeout seconds (default 30)
	HTTPTimeoutS int `yaml:"http_timeout_seconds" envconfig:"EMBEDDING_HTTP_TIMEOUT_SECONDS" default:"30"`
}

func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI:
		if c.APIKey == "" {
			return fmt.Errorf("openai provider requires EMBEDDING_API_KEY")
		}
	case ProviderInference:
		if c.Endpoint == "" {
			return fmt.Errorf("inference provider requires EMBEDDING_ENDPOINT")
		}
	default:
		return fmt.Errorf("unknown embedding provider %q", c.Provider)
	}
	if c.Model == "" {
		return fmt.Errorf("embedding model is required")
	}
	return nil
}
