package embedcache

import "go.uber.org/fx"

// FXModule provides a shared *Cache. A Store and a Recorder are picked up when present.
var FXModule = fx.Module("embedcache",
	fx.Provide(
		NewFromParams,
	),
)

// Params defines the optional dependencies of a Cache.
type Params struct {
	fx.In

	Config   Config   `optional:"true"`
	Store    Store    `optional:"true"`
	Recorder Recorder `optional:"true"`
}

// NewFromParams builds a Cache from fx-injected dependencies.
func NewFromParams(params Params) *Cache {
	opts := []Option{WithBatchSize(params.Config.BatchSize)}
	if params.Store != nil {
		opts = append(opts, WithStore(params.Store))
	}
	if params.Recorder != nil {
		opts = append(opts, WithRecorder(params.Recorder))
	}
	return New(opts...)
}
