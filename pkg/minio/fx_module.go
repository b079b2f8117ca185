package minio

import (
	"go.uber.org/fx"
)

// FXModule provides a *Minio client with its bucket bootstrapped.
var FXModule = fx.Module("minio",
	fx.Provide(
		NewClient,
	),
)
