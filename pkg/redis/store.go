package redis

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/google/uuid"
)

var keyNamespace = uuid.MustParse("0b6c2d7e-51a4-4f0e-8c3d-9e7a1f2b4c60")

// EmbeddingStore keeps one vector per (embedder, document) under a hashed key.
// It satisfies embedcache.Store and is meant to be shared by concurrent runs.
type EmbeddingStore struct {
	client *RedisClient
}

// NewEmbeddingStore returns a store writing under the configured prefix.
func NewEmbeddingStore(client *RedisClient) *EmbeddingStore {
	return &EmbeddingStore{client: client}
}

// Key returns the Redis key holding the vector of doc under embedderID.
func (s *EmbeddingStore) Key(embedderID, doc string) string {
	return s.client.cfg.KeyPrefix + uuid.NewSHA1(keyNamespace, []byte(embedderID+"\x00"+doc)).String()
}

// Lookup fetches all keys in one MGET. Missing documents are nil in the result.
func (s *EmbeddingStore) Lookup(ctx context.Context, embedderID string, docs []string) ([][]float32, error) {
	out := make([][]float32, len(docs))
	if len(docs) == 0 {
		return out, nil
	}

	keys := make([]string, len(docs))
	for i, doc := range docs {
		keys[i] = s.Key(embedderID, doc)
	}

	values, err := s.client.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: looking up %d vectors: %w", len(keys), err)
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		vec, err := decodeVector([]byte(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: key %s", err, keys[i])
		}
		out[i] = vec
	}
	return out, nil
}

// Save writes all vectors in a single pipeline, each with the configured TTL.
func (s *EmbeddingStore) Save(ctx context.Context, embedderID string, docs []string, vectors [][]float32) error {
	if len(docs) != len(vectors) {
		return fmt.Errorf("redis: %d documents but %d vectors", len(docs), len(vectors))
	}
	if len(docs) == 0 {
		return nil
	}

	pipe := s.client.client.Pipeline()
	for i, doc := range docs {
		pipe.Set(ctx, s.Key(embedderID, doc), encodeVector(vectors[i]), s.client.cfg.TTL)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis: saving %d vectors: %w", len(docs), err)
	}
	return nil
}

// encodeVector packs a vector as little-endian float32 values.
func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, f := range vec {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(f))
	}
	return buf
}

func decodeVector(buf []byte) ([]float32, error) {
	if len(buf)%4 != 0 {
		return nil, ErrCorruptVector
	}
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return vec, nil
}
