package minio

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// ErrObjectNotFound is returned when the requested key does not exist in the bucket.
var ErrObjectNotFound = errors.New("minio: object not found")

// IsObjectNotFoundError reports whether err is or wraps ErrObjectNotFound.
func IsObjectNotFoundError(err error) bool {
	return errors.Is(err, ErrObjectNotFound)
}

// Put uploads an object to the configured bucket. A size of -1 streams with multipart.
func (m *Minio) Put(ctx context.Context, objectKey string, reader io.Reader, size int64) (int64, error) {
	if size <= 0 {
		size = unknownSize
	}

	info, err := m.Client.PutObject(ctx, m.cfg.Connection.BucketName, objectKey, reader, size, minio.PutObjectOptions{
		PartSize:    m.cfg.Upload.PartSize,
		ContentType: m.cfg.Upload.ContentType,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to put object %q: %w", objectKey, err)
	}

	m.logger.Debug("uploaded object", nil, map[string]interface{}{
		"bucket": m.cfg.Connection.BucketName,
		"key":    objectKey,
		"size":   info.Size,
	})
	return info.Size, nil
}

// Open returns a reader for an object. The caller closes it.
func (m *Minio) Open(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	obj, err := m.Client.GetObject(ctx, m.cfg.Connection.BucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}

	// GetObject is lazy; Stat surfaces a missing key before the caller starts reading.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, objectKey)
		}
		return nil, fmt.Errorf("failed to get object stats: %w", err)
	}
	return obj, nil
}

// Get retrieves an object and returns its contents.
func (m *Minio) Get(ctx context.Context, objectKey string) ([]byte, error) {
	reader, err := m.Open(ctx, objectKey)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := reader.Close(); err != nil {
			m.logger.Warn("failed to close object reader", err, map[string]interface{}{"key": objectKey})
		}
	}()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read object data: %w", err)
	}
	return data, nil
}

// Delete removes an object from the configured bucket.
func (m *Minio) Delete(ctx context.Context, objectKey string) error {
	return m.Client.RemoveObject(ctx, m.cfg.Connection.BucketName, objectKey, minio.RemoveObjectOptions{})
}
