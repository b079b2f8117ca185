// Package qdrant persists document embeddings in a Qdrant collection.
//
// VectorStore implements embedcache.Store. Each point is keyed by a name-based
// UUID derived from the embedder ID and the document text, so the same
// document embedded by the same model always lands on the same point:
//
//	client, err := qdrant.NewQdrantClient(&qdrant.Config{
//		Endpoint:   "localhost",
//		Port:       6334,
//		Collection: "document_embeddings",
//		VectorSize: 384,
//	}, log)
//	if err != nil {
//		return err
//	}
//	store := qdrant.NewVectorStore(client)
//	if err := store.EnsureCollection(ctx); err != nil {
//		return err
//	}
//	cache := embedcache.New(embedcache.WithStore(store))
//
// FXModule does the same wiring and creates the collection on start.
package qdrant
