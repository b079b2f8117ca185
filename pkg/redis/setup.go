package redis

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	goredis "github.com/redis/go-redis/v9"
)

// Logger defines the interface for logging operations in the redis package.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// RedisClient wraps a go-redis client together with the store settings.
type RedisClient struct {
	client goredis.UniversalClient
	cfg    Config
	logger Logger
}

// NewClient creates a client for a standalone Redis instance. No connection is
// opened until the first command; use Ping to check reachability.
func NewClient(cfg Config, logger Logger) (*RedisClient, error) {
	if cfg.Host == "" {
		return nil, errors.New("redis: host is required")
	}
	if cfg.Port == 0 {
		cfg.Port = 6379
	}

	var tlsConfig *tls.Config
	if cfg.TLS.Enabled {
		var err error
		tlsConfig, err = createTLSConfig(cfg.TLS, cfg.Host)
		if err != nil {
			return nil, fmt.Errorf("redis: failed to create TLS config: %w", err)
		}
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		TLSConfig:    tlsConfig,
	})

	logger.Info("redis client initialized", nil, map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})
	return &RedisClient{client: client, cfg: cfg, logger: logger}, nil
}

func createTLSConfig(cfg TLSConfig, serverName string) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		ServerName:         serverName,
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	}

	if cfg.CACertPath != "" {
		caCert, err := os.ReadFile(cfg.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caCert) {
			return nil, errors.New("failed to parse CA cert")
		}
		tlsConfig.RootCAs = pool
	}

	if cfg.ClientCertPath != "" && cfg.ClientKeyPath != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCertPath, cfg.ClientKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load client cert: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

// Ping checks that the server answers.
func (r *RedisClient) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}
	return nil
}

// Close releases all pooled connections.
func (r *RedisClient) Close() error {
	if err := r.client.Close(); err != nil && !IsClosedError(err) {
		return err
	}
	return nil
}
