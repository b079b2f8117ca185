package minio

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Logger defines the interface for logging operations within the MinIO client.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Minio wraps the standard MinIO client with the configured bucket.
type Minio struct {
	Client *minio.Client

	cfg    Config
	logger Logger
}

// NewClient creates and validates a new MinIO client.
// It checks connectivity and makes sure the configured bucket exists.
//
//	client, err := minio.NewClient(cfg, log)
//	if err != nil {
//	    return fmt.Errorf("failed to initialize MinIO client: %w", err)
//	}
func NewClient(cfg Config, logger Logger) (*Minio, error) {
	fields := map[string]interface{}{
		"endpoint": cfg.Connection.Endpoint,
		"region":   cfg.Connection.Region,
		"secure":   cfg.Connection.UseSSL,
		"bucket":   cfg.Connection.BucketName,
	}

	client, err := connectToMinio(cfg, logger)
	if err != nil {
		logger.Error("failed to connect to minio", err, fields)
		return nil, err
	}

	m := &Minio{Client: client, cfg: cfg, logger: logger}

	ctx, cancel := context.WithTimeout(context.Background(), validateTimeout)
	defer cancel()
	if err := m.validateConnection(ctx); err != nil {
		logger.Error("failed to validate minio connection", err, fields)
		return nil, err
	}
	if err := m.ensureBucketExists(ctx); err != nil {
		logger.Error("failed to verify bucket", err, fields)
		return nil, err
	}

	return m, nil
}

// Bucket returns the bucket all objects are read from and written to.
func (m *Minio) Bucket() string {
	return m.cfg.Connection.BucketName
}

func connectToMinio(cfg Config, logger Logger) (*minio.Client, error) {
	if cfg.Connection.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint cannot be empty")
	}

	logger.Info("Connecting to MinIO", nil, map[string]interface{}{
		"endpoint": cfg.Connection.Endpoint,
		"region":   cfg.Connection.Region,
		"secure":   cfg.Connection.UseSSL,
	})

	return minio.New(cfg.Connection.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Connection.AccessKeyID, cfg.Connection.SecretAccessKey, ""),
		Secure: cfg.Connection.UseSSL,
		Region: cfg.Connection.Region,
	})
}

// validateConnection lists buckets, which needs only minimal permissions.
func (m *Minio) validateConnection(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := m.Client.ListBuckets(ctx)
	return err
}

func (m *Minio) ensureBucketExists(ctx context.Context) error {
	bucketName := m.cfg.Connection.BucketName
	if bucketName == "" {
		return fmt.Errorf("bucket name is empty")
	}

	exists, err := m.Client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("failed to check if bucket exists, bucket: %v, err: %w", bucketName, err)
	}
	if exists {
		return nil
	}

	m.logger.Info("Bucket does not exist, creating it", nil, map[string]interface{}{
		"bucket": bucketName,
		"region": m.cfg.Connection.Region,
	})
	if err := m.Client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: m.cfg.Connection.Region}); err != nil {
		return err
	}
	m.logger.Info("Successfully created bucket", nil, map[string]interface{}{"bucket": bucketName})
	return nil
}
