package tracer

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/open-mds/pkg/perturb"
)

var FXModule = fx.Module("tracer",
	fx.Provide(
		NewClient,
		func(t *Tracer) perturb.Tracer { return t },
	),
	fx.Invoke(RegisterTracerLifecycle),
)

func RegisterTracerLifecycle(lc fx.Lifecycle, tracer *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			tracer.logger.Info("shutting down tracer", nil)
			return tracer.Shutdown(ctx)
		},
	})
}
