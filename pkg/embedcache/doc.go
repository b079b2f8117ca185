// Package embedcache memoizes L2-normalized document embeddings.
//
// A Cache is keyed by the ordered tuple of documents and the identity of the
// embedder that encoded them, so the same tuple is only ever sent to a given
// model once per process. Concurrent misses for the same key share a single
// encode call. An optional Store adds a persistent per-document tier that
// survives restarts; pkg/qdrant provides one.
//
//	cache := embedcache.New(embedcache.WithStore(store))
//	vectors, err := cache.Embeddings(ctx, docs, embedder)
package embedcache
