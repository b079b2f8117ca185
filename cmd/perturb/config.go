package main

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/Aleph-Alpha/open-mds/pkg/embedcache"
	"github.com/Aleph-Alpha/open-mds/pkg/embedding"
	"github.com/Aleph-Alpha/open-mds/pkg/kafka"
	"github.com/Aleph-Alpha/open-mds/pkg/logger"
	"github.com/Aleph-Alpha/open-mds/pkg/mariadb"
	"github.com/Aleph-Alpha/open-mds/pkg/metrics"
	"github.com/Aleph-Alpha/open-mds/pkg/minio"
	"github.com/Aleph-Alpha/open-mds/pkg/perturb"
	"github.com/Aleph-Alpha/open-mds/pkg/postgres"
	"github.com/Aleph-Alpha/open-mds/pkg/qdrant"
	"github.com/Aleph-Alpha/open-mds/pkg/rabbit"
	"github.com/Aleph-Alpha/open-mds/pkg/redis"
	"github.com/Aleph-Alpha/open-mds/pkg/schemaregistry"
	"github.com/Aleph-Alpha/open-mds/pkg/tracer"
	"github.com/Aleph-Alpha/open-mds/pkg/translation"
)

// appConfig gathers the configuration of every component the CLI can wire.
type appConfig struct {
	Perturb     perturb.Config        `yaml:"perturb"`
	Logger      logger.Config         `yaml:"logger"`
	Metrics     metrics.Config        `yaml:"metrics"`
	Tracer      tracer.Config         `yaml:"tracer"`
	Embedding   embedding.Config      `yaml:"embedding"`
	Cache       embedcache.Config     `yaml:"embedding_cache"`
	Translation translation.Config    `yaml:"translation"`
	Qdrant      qdrant.Config         `yaml:"qdrant"`
	Redis       redis.Config          `yaml:"redis"`
	Minio       minio.Config          `yaml:"minio"`
	Postgres    postgres.Config       `yaml:"postgres"`
	MariaDB     mariadb.Config        `yaml:"mariadb"`
	Rabbit      rabbit.Config         `yaml:"rabbit"`
	Kafka       kafka.Config          `yaml:"kafka"`
	Registry    schemaregistry.Config `yaml:"schema_registry"`
	Features    features              `yaml:"features"`
}

// features switches the optional infrastructure on.
type features struct {
	// EmbeddingStore persists embeddings across runs: "qdrant", "redis" or empty for none.
	EmbeddingStore string `yaml:"embedding_store" envconfig:"OPEN_MDS_EMBEDDING_STORE"`

	// ObjectStore enables s3:// dataset locations backed by MinIO.
	ObjectStore bool `yaml:"object_store" envconfig:"OPEN_MDS_OBJECT_STORE"`

	// RunLedger records every run in a database: "postgres", "mariadb" or empty for none.
	RunLedger string `yaml:"run_ledger" envconfig:"OPEN_MDS_RUN_LEDGER"`

	// RabbitEvents and KafkaEvents announce every finished run on the respective broker.
	RabbitEvents bool `yaml:"rabbit_events" envconfig:"OPEN_MDS_RABBIT_EVENTS"`
	KafkaEvents  bool `yaml:"kafka_events" envconfig:"OPEN_MDS_KAFKA_EVENTS"`

	// KafkaAvro encodes Kafka events as Avro registered in a schema registry.
	KafkaAvro bool `yaml:"kafka_avro" envconfig:"OPEN_MDS_KAFKA_AVRO"`
}

// loadConfig applies defaults and environment variables, then overlays the
// YAML file at path when one is given. Values in the file win over the environment.
func loadConfig(path string) (appConfig, error) {
	var cfg appConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("reading environment: %w", err)
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

const (
	storeQdrant = "qdrant"
	storeRedis  = "redis"

	ledgerPostgres = "postgres"
	ledgerMariaDB  = "mariadb"
)

func (f features) validate() error {
	if f.KafkaAvro && !f.KafkaEvents {
		return fmt.Errorf("kafka_avro requires kafka_events")
	}
	switch f.RunLedger {
	case "", ledgerPostgres, ledgerMariaDB:
	default:
		return fmt.Errorf("unknown run ledger %q, want %q or %q", f.RunLedger, ledgerPostgres, ledgerMariaDB)
	}
	switch f.EmbeddingStore {
	case "", storeQdrant, storeRedis:
		return nil
	default:
		return fmt.Errorf("unknown embedding store %q, want %q or %q", f.EmbeddingStore, storeQdrant, storeRedis)
	}
}
