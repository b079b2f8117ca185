package qdrant

// Config holds connection and collection settings for the embedding store.
type Config struct {
	// Hostname of the Qdrant server, e.g. "localhost".
	Endpoint string `yaml:"endpoint" envconfig:"QDRANT_ENDPOINT" default:"localhost"`

	// gRPC port of the Qdrant server. Defaults to 6334.
	Port int `yaml:"port" envconfig:"QDRANT_PORT" default:"6334"`

	// Optional authentication token for secured deployments.
	ApiKey string `yaml:"api_key" envconfig:"QDRANT_API_KEY"`

	UseTLS bool `yaml:"use_tls" envconfig:"QDRANT_USE_TLS"`

	// Collection holds one point per (embedder, document).
	Collection string `yaml:"collection" envconfig:"QDRANT_COLLECTION" default:"document_embeddings"`

	// VectorSize must match the embedding model; all-MiniLM-L6-v2 produces 384 dimensions.
	VectorSize uint64 `yaml:"vector_size" envconfig:"QDRANT_VECTOR_SIZE" default:"384"`

	// Whether to perform version compatibility checks between client and server.
	CheckCompatibility bool `yaml:"check_compatibility" envconfig:"QDRANT_CHECK_COMPATIBILITY"`
}
