package qdrant

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	qdrant "github.com/qdrant/go-client/qdrant"
)

// upsertBatchSize bounds the number of points sent per Upsert call.
const upsertBatchSize = 256

// pointNamespace seeds the name-based UUIDs used as point IDs.
var pointNamespace = uuid.MustParse("6f1c8a52-3c1e-4b7a-9d0e-2a5f4c7b8e91")

// VectorStore persists document embeddings in a Qdrant collection. It satisfies
// embedcache.Store so vectors survive across runs and processes.
type VectorStore struct {
	client *Client
}

// NewVectorStore returns a store backed by the configured collection.
func NewVectorStore(client *Client) *VectorStore {
	return &VectorStore{client: client}
}

// PointID derives a stable point identifier for a document under an embedder.
func PointID(embedderID, doc string) string {
	return uuid.NewSHA1(pointNamespace, []byte(embedderID+"\x00"+doc)).String()
}

// EnsureCollection creates the collection with cosine distance when it is missing.
func (s *VectorStore) EnsureCollection(ctx context.Context) error {
	name := s.client.cfg.Collection
	exists, err := s.client.api.CollectionExists(ctx, name)
	if err != nil {
		return fmt.Errorf("qdrant: checking collection %q: %w", name, err)
	}
	if exists {
		return nil
	}

	err = s.client.api.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     s.client.cfg.VectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("qdrant: creating collection %q: %w", name, err)
	}

	s.client.logger.Info("created qdrant collection", nil, map[string]interface{}{
		"collection":  name,
		"vector_size": s.client.cfg.VectorSize,
	})
	return nil
}

// Lookup fetches stored vectors. The result is aligned with docs and holds nil
// for documents that have no point yet.
func (s *VectorStore) Lookup(ctx context.Context, embedderID string, docs []string) ([][]float32, error) {
	out := make([][]float32, len(docs))
	if len(docs) == 0 {
		return out, nil
	}

	positions := make(map[string][]int, len(docs))
	ids := make([]*qdrant.PointId, 0, len(docs))
	for i, doc := range docs {
		id := PointID(embedderID, doc)
		if _, seen := positions[id]; !seen {
			ids = append(ids, qdrant.NewID(id))
		}
		positions[id] = append(positions[id], i)
	}

	points, err := s.client.api.Get(ctx, &qdrant.GetPoints{
		CollectionName: s.client.cfg.Collection,
		Ids:            ids,
		WithVectors:    qdrant.NewWithVectors(true),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant: get points: %w", err)
	}

	for _, p := range points {
		vec := p.GetVectors().GetVector().GetData()
		if len(vec) == 0 {
			continue
		}
		for _, i := range positions[p.GetId().GetUuid()] {
			out[i] = vec
		}
	}

	s.client.logger.Debug("qdrant lookup", nil, map[string]interface{}{
		"requested": len(docs),
		"found":     len(points),
	})
	return out, nil
}

// Save upserts one point per document with the embedder and document text as payload.
func (s *VectorStore) Save(ctx context.Context, embedderID string, docs []string, vectors [][]float32) error {
	if len(docs) != len(vectors) {
		return fmt.Errorf("qdrant: %d documents but %d vectors", len(docs), len(vectors))
	}

	wait := true
	for start := 0; start < len(docs); start += upsertBatchSize {
		end := min(start+upsertBatchSize, len(docs))

		points := make([]*qdrant.PointStruct, 0, end-start)
		for i := start; i < end; i++ {
			points = append(points, &qdrant.PointStruct{
				Id:      qdrant.NewID(PointID(embedderID, docs[i])),
				Vectors: qdrant.NewVectors(vectors[i]...),
				Payload: qdrant.NewValueMap(map[string]any{
					"embedder": embedderID,
					"document": docs[i],
				}),
			})
		}

		if _, err := s.client.api.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: s.client.cfg.Collection,
			Wait:           &wait,
			Points:         points,
		}); err != nil {
			return fmt.Errorf("qdrant: upsert batch at %d: %w", start, err)
		}
	}
	return nil
}
