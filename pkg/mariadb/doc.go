// Package mariadb opens a MariaDB or MySQL connection for the run ledger,
// as an alternative to PostgreSQL. Only the connection differs; the schema
// and queries come from the database package.
package mariadb
