// Package postgres opens the PostgreSQL connection behind the run ledger.
//
// The connection is built from Config with gorm's pgx driver and error
// translation enabled, pinged once, and exposed as a *database.Ledger:
//
//	pg, err := postgres.NewPostgres(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	ledger := pg.Ledger()
//	if err := ledger.Migrate(); err != nil {
//	    return err
//	}
package postgres
