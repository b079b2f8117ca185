package postgres

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/open-mds/pkg/database"
)

// FXModule provides *Postgres and its *database.Ledger, migrates the ledger
// on start and closes the pool on stop.
var FXModule = fx.Module("postgres",
	fx.Provide(
		NewPostgres,
		(*Postgres).Ledger,
	),
	fx.Invoke(RegisterPostgresLifecycle),
)

// RegisterPostgresLifecycle hooks migration and shutdown into the fx lifecycle.
func RegisterPostgresLifecycle(lifecycle fx.Lifecycle, postgres *Postgres, ledger *database.Ledger) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return ledger.Migrate()
		},
		OnStop: func(ctx context.Context) error {
			postgres.logger.Info("closing postgres connection", nil)
			return postgres.Close()
		},
	})
}
