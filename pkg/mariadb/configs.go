package mariadb

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds connection settings for the run ledger database.
type Config struct {
	Connection        Connection
	ConnectionDetails ConnectionDetails
}

// Connection contains the DSN parts.
type Connection struct {
	Host     string `yaml:"host" envconfig:"MARIADB_HOST" default:"localhost"`
	Port     string `yaml:"port" envconfig:"MARIADB_PORT" default:"3306"`
	User     string `yaml:"user" envconfig:"MARIADB_USER" default:"root"`
	Password string `yaml:"password" envconfig:"MARIADB_PASSWORD"`
	DbName   string `yaml:"db_name" envconfig:"MARIADB_DATABASE" default:"open_mds"`

	Charset string `yaml:"charset" envconfig:"MARIADB_CHARSET" default:"utf8mb4"`

	// Loc is the time zone used to parse DATETIME values.
	Loc string `yaml:"loc" envconfig:"MARIADB_LOC" default:"UTC"`

	// TLS is passed through to the driver: "true", "skip-verify" or a registered config name.
	TLS string `yaml:"tls" envconfig:"MARIADB_TLS"`

	Timeout string `yaml:"timeout" envconfig:"MARIADB_TIMEOUT" default:"10s"`
}

// ConnectionDetails tunes the database/sql pool.
type ConnectionDetails struct {
	MaxOpenConns    int           `yaml:"max_open_conns" envconfig:"MARIADB_MAX_OPEN_CONNS" default:"4"`
	MaxIdleConns    int           `yaml:"max_idle_conns" envconfig:"MARIADB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" envconfig:"MARIADB_CONN_MAX_LIFETIME" default:"1m"`
}

// DSN renders the go-sql-driver/mysql data source name. Times are always parsed.
func (c Connection) DSN() string {
	q := url.Values{}
	q.Set("charset", c.Charset)
	q.Set("parseTime", "True")
	q.Set("loc", c.Loc)
	if c.TLS != "" {
		q.Set("tls", c.TLS)
	}
	if c.Timeout != "" {
		q.Set("timeout", c.Timeout)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", c.User, c.Password, c.Host, c.Port, c.DbName, q.Encode())
}
