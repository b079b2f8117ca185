package redis

import "time"

// Config defines the connection and keyspace settings of the embedding store.
type Config struct {
	// Host is the Redis server hostname or IP address.
	Host string `yaml:"host" envconfig:"REDIS_HOST" default:"localhost"`

	Port int `yaml:"port" envconfig:"REDIS_PORT" default:"6379"`

	// Username is used for ACL authentication (Redis 6.0+). Leave empty otherwise.
	Username string `yaml:"username" envconfig:"REDIS_USERNAME"`
	Password string `yaml:"password" envconfig:"REDIS_PASSWORD"`

	DB int `yaml:"db" envconfig:"REDIS_DB" default:"0"`

	// PoolSize is the maximum number of socket connections. 0 means 10 per CPU.
	PoolSize int `yaml:"pool_size" envconfig:"REDIS_POOL_SIZE"`

	MaxRetries   int           `yaml:"max_retries" envconfig:"REDIS_MAX_RETRIES" default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" envconfig:"REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `yaml:"read_timeout" envconfig:"REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"REDIS_WRITE_TIMEOUT"`

	// KeyPrefix namespaces every key written by the store.
	KeyPrefix string `yaml:"key_prefix" envconfig:"REDIS_KEY_PREFIX" default:"open-mds:emb:"`

	// TTL expires stored vectors. 0 keeps them forever.
	TTL time.Duration `yaml:"ttl" envconfig:"REDIS_TTL" default:"168h"`

	TLS TLSConfig `yaml:"tls"`
}

// TLSConfig contains TLS/SSL configuration parameters.
type TLSConfig struct {
	Enabled bool `yaml:"enabled" envconfig:"REDIS_TLS_ENABLED"`

	// CACertPath is the file path to the CA certificate for verifying the server.
	CACertPath string `yaml:"ca_cert_path" envconfig:"REDIS_TLS_CA_CERT_PATH"`

	ClientCertPath string `yaml:"client_cert_path" envconfig:"REDIS_TLS_CLIENT_CERT_PATH"`
	ClientKeyPath  string `yaml:"client_key_path" envconfig:"REDIS_TLS_CLIENT_KEY_PATH"`

	// InsecureSkipVerify should only be used in testing.
	InsecureSkipVerify bool `yaml:"insecure_skip_verify" envconfig:"REDIS_TLS_INSECURE_SKIP_VERIFY"`
}
