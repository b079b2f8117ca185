package embedding

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/open-mds/pkg/embedcache"
)

// FXModule wires the embedding system into Fx.
//
// It provides:
//   - Provider               (NewProvider, from a *Config in the container)
//   - *Client                (NewClient)
//   - embedcache.Embedder    (the *Client)
//   - Lifecycle hook         (RegisterEmbeddingLifecycle)
var FXModule = fx.Module(
	"embedding",

	fx.Provide(
		NewProvider,
		NewClient,
		func(c *Client) embedcache.Embedder { return c },
	),

	fx.Invoke(RegisterEmbeddingLifecycle),
)

func RegisterEmbeddingLifecycle(lc fx.Lifecycle, p Provider) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if c, ok := p.(interface{ Close() error }); ok {
				return c.Close()
			}
			return nil
		},
	})
}
