package qdrant

import (
	"context"
	"fmt"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"
)

// Logger defines the interface for logging operations in the qdrant package.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
}

// Client wraps the official Qdrant Go client.
type Client struct {
	api    *qdrant.Client
	cfg    *Config
	logger Logger
}

// NewQdrantClient connects to Qdrant and fails fast when the server is not healthy.
func NewQdrantClient(cfg *Config, logger Logger) (*Client, error) {
	port := cfg.Port
	if port == 0 {
		port = 6334
	}

	logger.Info("connecting to qdrant", nil, map[string]interface{}{
		"endpoint": cfg.Endpoint,
		"port":     port,
	})

	api, err := qdrant.NewClient(&qdrant.Config{
		Host:                   cfg.Endpoint,
		Port:                   port,
		APIKey:                 cfg.ApiKey,
		UseTLS:                 cfg.UseTLS,
		SkipCompatibilityCheck: !cfg.CheckCompatibility,
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant: failed to initialize client: %w", err)
	}

	c := &Client{api: api, cfg: cfg, logger: logger}
	if err := c.healthCheck(); err != nil {
		_ = api.Close()
		return nil, err
	}
	return c, nil
}

func (c *Client) healthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	resp, err := c.api.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("qdrant: health check failed: %w", err)
	}

	c.logger.Debug("qdrant health check passed", nil, map[string]interface{}{
		"title":   resp.GetTitle(),
		"version": resp.GetVersion(),
	})
	return nil
}

// Close closes the underlying gRPC connection.
func (c *Client) Close() error {
	return c.api.Close()
}
