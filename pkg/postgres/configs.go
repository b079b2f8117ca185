package postgres

import "time"

// Config holds connection settings for the run ledger database.
type Config struct {
	Connection        Connection
	ConnectionDetails ConnectionDetails
}

// Connection contains the DSN parts.
type Connection struct {
	Host     string `yaml:"host" envconfig:"POSTGRES_HOST" default:"localhost"`
	Port     string `yaml:"port" envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `yaml:"user" envconfig:"POSTGRES_USER" default:"postgres"`
	Password string `yaml:"password" envconfig:"POSTGRES_PASSWORD"`
	DbName   string `yaml:"db_name" envconfig:"POSTGRES_DB" default:"open_mds"`
	SSLMode  string `yaml:"ssl_mode" envconfig:"POSTGRES_SSL_MODE" default:"disable"`
}

// ConnectionDetails tunes the database/sql pool.
type ConnectionDetails struct {
	MaxOpenConns    int           `yaml:"max_open_conns" envconfig:"POSTGRES_MAX_OPEN_CONNS" default:"4"`
	MaxIdleConns    int           `yaml:"max_idle_conns" envconfig:"POSTGRES_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" envconfig:"POSTGRES_CONN_MAX_LIFETIME" default:"1m"`
}

// DSN renders the keyword/value connection string understood by pgx.
func (c Connection) DSN() string {
	return "host=" + c.Host +
		" port=" + c.Port +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DbName +
		" sslmode=" + c.SSLMode
}
