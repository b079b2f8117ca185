package embedcache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"
)

// DefaultBatchSize is the number of documents sent to the embedder per encode call.
const DefaultBatchSize = 512

// Embedder computes dense vectors for texts. ID identifies the model behind
// the embedder and is part of every cache key.
type Embedder interface {
	ID() string
	Encode(ctx context.Context, texts []string) ([][]float32, error)
}

// Store is an optional persistent tier holding one vector per (embedder, document).
//
// Lookup returns a slice aligned with docs where missing documents are nil.
type Store interface {
	Lookup(ctx context.Context, embedderID string, docs []string) ([][]float32, error)
	Save(ctx context.Context, embedderID string, docs []string, vectors [][]float32) error
}

// Recorder receives cache hit/miss observations.
type Recorder interface {
	ObserveCacheLookup(hit bool)
}

type entry struct {
	embedderID string
	docs       []string
	vectors    [][]float32
}

// Cache memoizes normalized document embeddings keyed by the ordered document
// tuple and the embedder identity. Entries are never evicted.
//
// Returned vectors are shared between callers and must not be modified.
type Cache struct {
	mu        sync.RWMutex
	entries   map[string]*entry
	group     singleflight.Group
	batchSize int
	store     Store
	recorder  Recorder
}

// Option configures a Cache.
type Option func(*Cache)

// WithBatchSize overrides DefaultBatchSize. Non-positive values are ignored.
func WithBatchSize(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

// WithStore adds a persistent tier consulted before encoding.
func WithStore(s Store) Option {
	return func(c *Cache) { c.store = s }
}

// WithRecorder reports hits and misses to r.
func WithRecorder(r Recorder) Option {
	return func(c *Cache) { c.recorder = r }
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries:   make(map[string]*entry),
		batchSize: DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Len returns the number of cached document tuples.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Embeddings returns one L2-normalized vector per document, in document order.
// Identical document tuples under the same embedder are encoded only once.
func (c *Cache) Embeddings(ctx context.Context, docs []string, e Embedder) ([][]float32, error) {
	if e == nil {
		return nil, fmt.Errorf("embedcache: nil embedder")
	}
	if len(docs) == 0 {
		return nil, nil
	}

	id := e.ID()
	key := cacheKey(id, docs)

	if vectors, ok := c.lookup(key, id, docs); ok {
		c.observe(true)
		return vectors, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// Another caller may have filled the entry while we waited on the group.
		if vectors, ok := c.lookup(key, id, docs); ok {
			return vectors, nil
		}
		c.observe(false)

		vectors, err := c.compute(ctx, docs, e)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = &entry{embedderID: id, docs: slices.Clone(docs), vectors: vectors}
		c.mu.Unlock()
		return vectors, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([][]float32), nil
}

func (c *Cache) lookup(key, id string, docs []string) ([][]float32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ent, ok := c.entries[key]
	if !ok || ent.embedderID != id || !slices.Equal(ent.docs, docs) {
		return nil, false
	}
	return ent.vectors, true
}

func (c *Cache) compute(ctx context.Context, docs []string, e Embedder) ([][]float32, error) {
	vectors := make([][]float32, len(docs))

	missing := make([]int, 0, len(docs))
	if c.store != nil {
		stored, err := c.store.Lookup(ctx, e.ID(), docs)
		if err != nil {
			return nil, fmt.Errorf("embedcache: store lookup: %w", err)
		}
		for i := range docs {
			if i < len(stored) && stored[i] != nil {
				vectors[i] = Normalize(stored[i])
				continue
			}
			missing = append(missing, i)
		}
	} else {
		for i := range docs {
			missing = append(missing, i)
		}
	}

	if len(missing) == 0 {
		return vectors, nil
	}

	texts := make([]string, len(missing))
	for i, j := range missing {
		texts[i] = docs[j]
	}

	encoded, err := c.encode(ctx, texts, e)
	if err != nil {
		return nil, err
	}
	for i, j := range missing {
		vectors[j] = encoded[i]
	}

	if c.store != nil {
		if err := c.store.Save(ctx, e.ID(), texts, encoded); err != nil {
			return nil, fmt.Errorf("embedcache: store save: %w", err)
		}
	}
	return vectors, nil
}

// encode sends texts to the embedder in batches and normalizes the results.
func (c *Cache) encode(ctx context.Context, texts []string, e Embedder) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += c.batchSize {
		end := min(start+c.batchSize, len(texts))
		batch, err := e.Encode(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("embedcache: encode: %w", err)
		}
		if len(batch) != end-start {
			return nil, fmt.Errorf("embedcache: embedder %q returned %d vectors for %d texts", e.ID(), len(batch), end-start)
		}
		for _, v := range batch {
			out = append(out, Normalize(v))
		}
	}
	return out, nil
}

func (c *Cache) observe(hit bool) {
	if c.recorder != nil {
		c.recorder.ObserveCacheLookup(hit)
	}
}

// cacheKey hashes the embedder ID and the length-prefixed documents.
func cacheKey(embedderID string, docs []string) string {
	h := sha256.New()
	var n [8]byte
	write := func(s string) {
		binary.BigEndian.PutUint64(n[:], uint64(len(s)))
		h.Write(n[:])
		h.Write([]byte(s))
	}
	write(embedderID)
	for _, d := range docs {
		write(d)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Normalize returns a copy of v scaled to unit L2 norm. Zero vectors are returned as a zero copy.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	out := make([]float32, len(v))
	if sum == 0 {
		return out
	}
	norm := math.Sqrt(sum)
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

// Dot returns the dot product of a and b over their common length.
// For normalized vectors this is the cosine similarity.
func Dot(a, b []float32) float32 {
	var s float32
	for i := range min(len(a), len(b)) {
		s += a[i] * b[i]
	}
	return s
}
