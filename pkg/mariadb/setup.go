package mariadb

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/Aleph-Alpha/open-mds/pkg/database"
)

// Logger defines the interface for logging operations in the mariadb package.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// MariaDB holds the gorm handle used by the run ledger.
type MariaDB struct {
	Client *gorm.DB
	cfg    Config
	logger Logger
}

// NewMariaDB connects to the database and pings it once.
func NewMariaDB(cfg Config, logger Logger) (*MariaDB, error) {
	conn, err := connectToMariaDB(logger, cfg)
	if err != nil {
		logger.Error("error in connecting to mariadb", err, map[string]interface{}{
			"host":   cfg.Connection.Host,
			"dbname": cfg.Connection.DbName,
		})
		return nil, err
	}

	m := &MariaDB{Client: conn, cfg: cfg, logger: logger}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.healthCheck(ctx); err != nil {
		_ = m.Close()
		return nil, err
	}
	return m, nil
}

func connectToMariaDB(logger Logger, cfg Config) (*gorm.DB, error) {
	database, err := gorm.Open(
		mysql.Open(cfg.Connection.DSN()),
		&gorm.Config{
			TranslateError: true,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MariaDB/MySQL database: %w", err)
	}

	databaseInstance, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get MariaDB/MySQL database instance: %w", err)
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

	logger.Info("Successfully connected to MariaDB/MySQL database", nil, map[string]interface{}{
		"host":   cfg.Connection.Host,
		"dbname": cfg.Connection.DbName,
	})
	return database, nil
}

func (m *MariaDB) healthCheck(ctx context.Context) error {
	db, err := m.Client.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Ledger returns a run ledger on this connection.
func (m *MariaDB) Ledger() *database.Ledger {
	return database.NewLedger(m.Client, m.logger)
}

// Close releases the underlying connection pool.
func (m *MariaDB) Close() error {
	db, err := m.Client.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
