package schemaregistry

import "time"

// Config holds the registry endpoint and the subject run events are registered under.
type Config struct {
	URL string `yaml:"url" envconfig:"SCHEMA_REGISTRY_URL" default:"http://localhost:8081"`

	// Username and Password enable basic auth when Username is set.
	Username string `yaml:"username" envconfig:"SCHEMA_REGISTRY_USERNAME"`
	Password string `yaml:"password" envconfig:"SCHEMA_REGISTRY_PASSWORD"`

	Timeout time.Duration `yaml:"timeout" envconfig:"SCHEMA_REGISTRY_TIMEOUT" default:"10s"`

	// Subject follows the topic-value naming strategy of the run event topic.
	Subject string `yaml:"subject" envconfig:"SCHEMA_REGISTRY_SUBJECT" default:"open-mds.runs-value"`
}
