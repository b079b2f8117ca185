package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const objectScheme = "s3://"

// ErrNoObjectStore is returned for s3:// locations when no object store is configured.
var ErrNoObjectStore = errors.New("dataset: no object store configured")

// ObjectStore is the subset of the MinIO client used for dataset files.
type ObjectStore interface {
	Bucket() string
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Put(ctx context.Context, key string, r io.Reader, size int64) (int64, error)
}

// Sources loads and saves datasets from local paths or s3://bucket/key locations.
type Sources struct {
	objects ObjectStore
}

// NewSources returns Sources. objects may be nil, in which case only local paths work.
func NewSources(objects ObjectStore) *Sources {
	return &Sources{objects: objects}
}

// Load reads every example at location.
func (s *Sources) Load(ctx context.Context, location string) ([]Example, error) {
	rc, err := s.open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	examples, err := Read(rc)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", location, err)
	}
	return examples, nil
}

// Save writes examples to location, replacing what is there.
func (s *Sources) Save(ctx context.Context, location string, examples []Example) error {
	if key, ok, err := s.objectKey(location); err != nil {
		return err
	} else if ok {
		var buf bytes.Buffer
		if err := Write(&buf, examples); err != nil {
			return err
		}
		_, err := s.objects.Put(ctx, key, &buf, int64(buf.Len()))
		return err
	}

	if dir := filepath.Dir(location); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("dataset: creating %s: %w", dir, err)
		}
	}
	f, err := os.Create(location)
	if err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	if err := Write(f, examples); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (s *Sources) open(ctx context.Context, location string) (io.ReadCloser, error) {
	key, ok, err := s.objectKey(location)
	if err != nil {
		return nil, err
	}
	if ok {
		return s.objects.Open(ctx, key)
	}
	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	return f, nil
}

// objectKey splits an s3:// location. The bucket must match the configured one.
func (s *Sources) objectKey(location string) (string, bool, error) {
	rest, ok := strings.CutPrefix(location, objectScheme)
	if !ok {
		return "", false, nil
	}
	if s.objects == nil {
		return "", false, fmt.Errorf("%w: %s", ErrNoObjectStore, location)
	}

	bucket, key, _ := strings.Cut(rest, "/")
	if bucket != s.objects.Bucket() {
		return "", false, fmt.Errorf("dataset: location %s is outside bucket %q", location, s.objects.Bucket())
	}
	if key == "" {
		return "", false, fmt.Errorf("dataset: location %s has no object key", location)
	}
	return key, true, nil
}
