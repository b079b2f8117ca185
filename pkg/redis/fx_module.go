package redis

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/open-mds/pkg/embedcache"
)

// FXModule provides the Redis client, the EmbeddingStore and its embedcache.Store binding.
var FXModule = fx.Module("redis",
	fx.Provide(
		NewClient,
		NewEmbeddingStore,
		func(s *EmbeddingStore) embedcache.Store { return s },
	),
	fx.Invoke(RegisterRedisLifecycle),
)

// RegisterRedisLifecycle pings Redis on start and closes the pool on stop.
func RegisterRedisLifecycle(lc fx.Lifecycle, client *RedisClient) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx); err != nil {
				client.logger.Error("redis is not reachable", err)
				return err
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			client.logger.Info("closing redis client", nil)
			return client.Close()
		},
	})
}
