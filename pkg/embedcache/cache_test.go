package embedcache

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingEmbedder struct {
	id      string
	calls   atomic.Int32
	batches [][]string
	mu      sync.Mutex
	err     error
}

func (e *countingEmbedder) ID() string { return e.id }

func (e *countingEmbedder) Encode(_ context.Context, texts []string) ([][]float32, error) {
	e.calls.Add(1)
	if e.err != nil {
		return nil, e.err
	}
	e.mu.Lock()
	e.batches = append(e.batches, texts)
	e.mu.Unlock()
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = []float32{float32(len(t)), 1}
	}
	return out, nil
}

type memStore struct {
	vectors map[string][]float32
	saved   []string
}

func (s *memStore) Lookup(_ context.Context, id string, docs []string) ([][]float32, error) {
	out := make([][]float32, len(docs))
	for i, d := range docs {
		out[i] = s.vectors[id+"/"+d]
	}
	return out, nil
}

func (s *memStore) Save(_ context.Context, id string, docs []string, vectors [][]float32) error {
	for i, d := range docs {
		s.vectors[id+"/"+d] = vectors[i]
		s.saved = append(s.saved, d)
	}
	return nil
}

type hitRecorder struct{ hits, misses int }

func (r *hitRecorder) ObserveCacheLookup(hit bool) {
	if hit {
		r.hits++
	} else {
		r.misses++
	}
}

func TestEmbeddingsAreNormalized(t *testing.T) {
	c := New()
	vectors, err := c.Embeddings(context.Background(), []string{"abc", ""}, &countingEmbedder{id: "e"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)

	for _, v := range vectors {
		var sum float64
		for _, x := range v {
			sum += float64(x * x)
		}
		assert.InDelta(t, 1, math.Sqrt(sum), 1e-6)
	}
}

func TestEmbeddingsAreMemoized(t *testing.T) {
	rec := &hitRecorder{}
	c := New(WithRecorder(rec))
	e := &countingEmbedder{id: "e"}
	ctx := context.Background()

	first, err := c.Embeddings(ctx, []string{"a", "bb"}, e)
	require.NoError(t, err)
	second, err := c.Embeddings(ctx, []string{"a", "bb"}, e)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, e.calls.Load())
	assert.Equal(t, 1, rec.hits)
	assert.Equal(t, 1, rec.misses)
}

func TestEmbeddingsKeyIncludesOrderAndEmbedder(t *testing.T) {
	c := New()
	e := &countingEmbedder{id: "e"}
	ctx := context.Background()

	_, err := c.Embeddings(ctx, []string{"a", "bb"}, e)
	require.NoError(t, err)
	_, err = c.Embeddings(ctx, []string{"bb", "a"}, e)
	require.NoError(t, err)
	_, err = c.Embeddings(ctx, []string{"a", "bb"}, &countingEmbedder{id: "other"})
	require.NoError(t, err)

	assert.EqualValues(t, 2, e.calls.Load())
	assert.Equal(t, 3, c.Len())
}

func TestEmbeddingsKeyIsUnambiguous(t *testing.T) {
	assert.NotEqual(t, cacheKey("e", []string{"ab", "c"}), cacheKey("e", []string{"a", "bc"}))
	assert.NotEqual(t, cacheKey("e", []string{"a"}), cacheKey("ea", nil))
}

func TestEmbeddingsBatching(t *testing.T) {
	c := New(WithBatchSize(2))
	e := &countingEmbedder{id: "e"}

	vectors, err := c.Embeddings(context.Background(), []string{"a", "b", "c", "d", "e"}, e)
	require.NoError(t, err)
	assert.Len(t, vectors, 5)
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}, {"e"}}, e.batches)
}

func TestEmbeddingsConcurrentMissesEncodeOnce(t *testing.T) {
	c := New()
	e := &countingEmbedder{id: "e"}

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Embeddings(context.Background(), []string{"x", "y"}, e)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1, e.calls.Load())
}

func TestEmbeddingsErrorsAreNotCached(t *testing.T) {
	c := New()
	e := &countingEmbedder{id: "e", err: errors.New("unavailable")}

	_, err := c.Embeddings(context.Background(), []string{"a"}, e)
	require.Error(t, err)

	e.err = nil
	_, err = c.Embeddings(context.Background(), []string{"a"}, e)
	require.NoError(t, err)
	assert.EqualValues(t, 2, e.calls.Load())
}

func TestEmbeddingsUseStore(t *testing.T) {
	store := &memStore{vectors: map[string][]float32{"e/a": {3, 4}}}
	c := New(WithStore(store))
	e := &countingEmbedder{id: "e"}

	vectors, err := c.Embeddings(context.Background(), []string{"a", "bb"}, e)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float32{0.6, 0.8}, vectors[0], 1e-6)
	assert.Equal(t, [][]string{{"bb"}}, e.batches)
	assert.Equal(t, []string{"bb"}, store.saved)
}

func TestEmbeddingsEmpty(t *testing.T) {
	vectors, err := New().Embeddings(context.Background(), nil, &countingEmbedder{id: "e"})
	require.NoError(t, err)
	assert.Empty(t, vectors)

	_, err = New().Embeddings(context.Background(), []string{"a"}, nil)
	assert.Error(t, err)
}

func TestNormalizeAndDot(t *testing.T) {
	assert.InDeltaSlice(t, []float32{0.6, 0.8}, Normalize([]float32{3, 4}), 1e-6)
	assert.Equal(t, []float32{0, 0}, Normalize([]float32{0, 0}))
	assert.InDelta(t, 11, Dot([]float32{1, 2}, []float32{3, 4}), 1e-6)
}
