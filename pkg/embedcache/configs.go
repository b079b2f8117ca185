package embedcache

// Config holds cache settings.
type Config struct {
	// BatchSize is the number of documents per encode call. Zero keeps DefaultBatchSize.
	BatchSize int `yaml:"batch_size" envconfig:"EMBEDDING_CACHE_BATCH_SIZE"`
}
