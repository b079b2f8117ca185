package translation

import "fmt"

// Config configures the back-translator.
type Config struct {
	// APIKey authenticates against the chat completion API.
	APIKey string `yaml:"api_key" envconfig:"TRANSLATION_API_KEY"`

	// BaseURL targets an OpenAI-compatible server. Empty uses api.openai.com.
	BaseURL string `yaml:"base_url" envconfig:"TRANSLATION_BASE_URL"`

	Model string `yaml:"model" envconfig:"TRANSLATION_MODEL" default:"gpt-4o-mini"`

	// SourceLanguage is the language of the documents. Default: English
	SourceLanguage string `yaml:"source_language" envconfig:"TRANSLATION_SOURCE_LANGUAGE" default:"English"`

	// PivotLanguage is the intermediate language of the round trip. Default: Danish
	PivotLanguage string `yaml:"pivot_language" envconfig:"TRANSLATION_PIVOT_LANGUAGE" default:"Danish"`

	// BatchSize caps the number of sentences per completion request.
	BatchSize int `yaml:"batch_size" envconfig:"TRANSLATION_BATCH_SIZE" default:"32"`
}

func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("translation: model is required")
	}
	if c.SourceLanguage == "" || c.PivotLanguage == "" {
		return fmt.Errorf("translation: source and pivot languages are required")
	}
	if c.SourceLanguage == c.PivotLanguage {
		return fmt.Errorf("translation: pivot language must differ from %s", c.SourceLanguage)
	}
	return nil
}
