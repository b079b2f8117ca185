package mariadb

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/open-mds/pkg/database"
)

// FXModule provides *MariaDB and its *database.Ledger, migrates the ledger
// on start and closes the pool on stop.
var FXModule = fx.Module("mariadb",
	fx.Provide(
		NewMariaDB,
		(*MariaDB).Ledger,
	),
	fx.Invoke(RegisterMariaDBLifecycle),
)

// RegisterMariaDBLifecycle hooks migration and shutdown into the fx lifecycle.
func RegisterMariaDBLifecycle(lifecycle fx.Lifecycle, mariadb *MariaDB, ledger *database.Ledger) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return ledger.Migrate()
		},
		OnStop: func(ctx context.Context) error {
			mariadb.logger.Info("closing mariadb connection", nil)
			return mariadb.Close()
		},
	})
}
