package qdrant

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/open-mds/pkg/embedcache"
)

// FXModule wires the Qdrant client, the VectorStore and its embedcache.Store binding.
// The collection is created on start if it does not exist.
var FXModule = fx.Module("qdrant",
	fx.Provide(
		NewQdrantClient,
		NewVectorStore,
		func(s *VectorStore) embedcache.Store { return s },
	),
	fx.Invoke(RegisterQdrantLifecycle),
)

// RegisterQdrantLifecycle ensures the collection on start and closes the connection on stop.
func RegisterQdrantLifecycle(lc fx.Lifecycle, client *Client, store *VectorStore) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return store.EnsureCollection(ctx)
		},
		OnStop: func(ctx context.Context) error {
			client.logger.Info("closing qdrant client", nil)
			return client.Close()
		},
	})
}
