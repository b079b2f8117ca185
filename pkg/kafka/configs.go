package kafka

import "time"

// Config holds the producer settings for run events.
type Config struct {
	// Brokers is a list of bootstrap addresses, e.g. "localhost:9092".
	Brokers []string `yaml:"brokers" envconfig:"KAFKA_BROKERS" default:"localhost:9092"`

	Topic string `yaml:"topic" envconfig:"KAFKA_TOPIC" default:"open-mds.runs"`

	// RequiredAcks is -1 (all replicas), 0 (none) or 1 (leader only).
	RequiredAcks int `yaml:"required_acks" envconfig:"KAFKA_REQUIRED_ACKS" default:"-1"`

	MaxAttempts  int           `yaml:"max_attempts" envconfig:"KAFKA_MAX_ATTEMPTS" default:"5"`
	WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"KAFKA_WRITE_TIMEOUT" default:"10s"`

	// CompressionCodec is one of "", "gzip", "snappy", "lz4", "zstd".
	CompressionCodec string `yaml:"compression_codec" envconfig:"KAFKA_COMPRESSION_CODEC"`

	AllowAutoTopicCreation bool `yaml:"allow_auto_topic_creation" envconfig:"KAFKA_ALLOW_AUTO_TOPIC_CREATION" default:"true"`
}
