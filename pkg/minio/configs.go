package minio

import "time"

const (
	unknownSize int64 = -1

	// validateTimeout bounds the connectivity and bucket checks done at startup.
	validateTimeout = 30 * time.Second
)

// Config defines the configuration for the MinIO client that stores dataset files.
type Config struct {
	Connection ConnectionConfig
	Upload     UploadConfig
}

// ConnectionConfig contains the parameters needed to reach the MinIO server.
type ConnectionConfig struct {
	// MinIO server endpoint, e.g. "localhost:9000"
	Endpoint string `yaml:"endpoint" envconfig:"MINIO_ENDPOINT"`

	AccessKeyID     string `yaml:"access_key_id" envconfig:"MINIO_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" envconfig:"MINIO_SECRET_ACCESS_KEY"`

	// Use SSL (true for "https", false for "http")
	UseSSL bool `yaml:"use_ssl" envconfig:"MINIO_USE_SSL"`

	// Bucket holding input and perturbed datasets. Created if missing.
	BucketName string `yaml:"bucket_name" envconfig:"MINIO_BUCKET_NAME" default:"open-mds"`

	Region string `yaml:"region" envconfig:"MINIO_REGION" default:"us-east-1"`
}

// UploadConfig controls multipart behavior when writing objects.
type UploadConfig struct {
	// Part size for multipart uploads. Zero lets minio-go pick.
	PartSize uint64 `yaml:"part_size" envconfig:"MINIO_UPLOAD_PART_SIZE"`

	ContentType string `yaml:"content_type" envconfig:"MINIO_UPLOAD_CONTENT_TYPE" default:"application/x-ndjson"`
}
