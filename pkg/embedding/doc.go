// Package embedding provides the sentence-embedding capability used to rank
// documents by similarity.
//
// Two providers are available: "inference" posts to any OpenAI-compatible
// /embeddings endpoint (for example a text-embeddings-inference server hosting
// all-MiniLM-L6-v2), and "openai" goes through the OpenAI SDK. Both return raw
// vectors; normalization and memoization happen in pkg/embedcache.
//
//	cfg := &embedding.Config{Provider: "inference", Endpoint: "http://localhost:8080", Model: embedding.DefaultModel}
//	provider, err := embedding.NewProvider(cfg)
//	client := embedding.NewClient(cfg, provider)
//	vectors, err := client.Encode(ctx, []string{"first document", "second document"})
package embedding
