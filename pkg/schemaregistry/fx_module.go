package schemaregistry

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/open-mds/pkg/kafka"
)

// FXModule provides the registry client and binds the AvroEncoder as the
// kafka.Encoder. The schema is registered on start so a bad registry fails the run early.
var FXModule = fx.Module("schemaregistry",
	fx.Provide(
		NewClient,
		NewAvroEncoder,
		func(e *AvroEncoder) kafka.Encoder { return e },
	),
	fx.Invoke(RegisterSchemaRegistryLifecycle),
)

// RegisterSchemaRegistryLifecycle registers the run event schema when the app starts.
func RegisterSchemaRegistryLifecycle(lc fx.Lifecycle, e *AvroEncoder) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_, err := e.Register(ctx)
			return err
		},
	})
}
