package rabbit

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/open-mds/pkg/runs"
)

// FXModule provides a *Rabbit, adds it to the run publisher group and closes it on stop.
var FXModule = fx.Module("rabbit",
	fx.Provide(
		NewClient,
		fx.Annotate(
			func(r *Rabbit) runs.Publisher { return r },
			fx.ResultTags(runs.PublisherGroup),
		),
	),
	fx.Invoke(RegisterRabbitLifecycle),
)

// RegisterRabbitLifecycle closes the channel and connection when the app stops.
func RegisterRabbitLifecycle(lc fx.Lifecycle, client *Rabbit) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			client.logger.Info("closing rabbit client", nil)
			return client.Close()
		},
	})
}
