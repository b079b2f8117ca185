package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Aleph-Alpha/open-mds/pkg/database"
)

// Logger defines the interface for logging operations in the postgres package.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Postgres holds the gorm handle used by the run ledger.
type Postgres struct {
	Client *gorm.DB
	cfg    Config
	logger Logger
}

// NewPostgres connects to the database and pings it once.
func NewPostgres(cfg Config, logger Logger) (*Postgres, error) {
	conn, err := connectToPostgres(logger, cfg)
	if err != nil {
		logger.Error("error in connecting to postgres", err, map[string]interface{}{
			"host":   cfg.Connection.Host,
			"dbname": cfg.Connection.DbName,
		})
		return nil, err
	}

	p := &Postgres{Client: conn, cfg: cfg, logger: logger}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.healthCheck(ctx); err != nil {
		_ = p.Close()
		return nil, err
	}
	return p, nil
}

func connectToPostgres(logger Logger, cfg Config) (*gorm.DB, error) {
	database, err := gorm.Open(
		postgres.Open(cfg.Connection.DSN()),
		&gorm.Config{
			TranslateError: true,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgresSQL database: %w", err)
	}

	databaseInstance, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get PostgresSQL database instance: %w", err)
	}

	details := cfg.ConnectionDetails
	if details.MaxOpenConns > 0 {
		databaseInstance.SetMaxOpenConns(details.MaxOpenConns)
	}
	if details.MaxIdleConns > 0 {
		databaseInstance.SetMaxIdleConns(details.MaxIdleConns)
	}
	if details.ConnMaxLifetime > 0 {
		databaseInstance.SetConnMaxLifetime(details.ConnMaxLifetime)
	}

	logger.Info("Successfully connected to PostgresSQL database", nil, map[string]interface{}{
		"host":   cfg.Connection.Host,
		"dbname": cfg.Connection.DbName,
	})
	return database, nil
}

func (p *Postgres) healthCheck(ctx context.Context) error {
	db, err := p.Client.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Ledger returns a run ledger on this connection.
func (p *Postgres) Ledger() *database.Ledger {
	return database.NewLedger(p.Client, p.logger)
}

// Close releases the underlying connection pool.
func (p *Postgres) Close() error {
	db, err := p.Client.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
