package dataset

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/open-mds/pkg/minio"
)

// FXModule provides *Sources, backed by MinIO when a client is in the container.
var FXModule = fx.Module("dataset",
	fx.Provide(
		NewFromParams,
	),
)

// Params defines the optional object store.
type Params struct {
	fx.In

	Minio *minio.Minio `optional:"true"`
}

// NewFromParams builds Sources from fx-injected dependencies.
func NewFromParams(params Params) *Sources {
	if params.Minio == nil {
		return NewSources(nil)
	}
	return NewSources(params.Minio)
}
