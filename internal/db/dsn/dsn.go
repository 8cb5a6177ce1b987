// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/GoPowerDNS-Admin/pdns-rrset/internal/config"
)

const (
	defaultMySQLPort    = 3306
	defaultPostgresPort = 5432
)

// MySQL builds a go-sql-driver DSN from the configuration.
func MySQL(cfg config.DB) string {
	port := cfg.Port
	if port == 0 {
		port = defaultMySQLPort
	}

	out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		port,
		cfg.Name,
	)

	if cfg.Extras != "" {
		out += "?" + cfg.Extras
	}

	return out
}

// Postgres builds a key/value pgx DSN from the configuration.
// Extras are appended verbatim, e.g. "sslmode=disable TimeZone=UTC".
func Postgres(cfg config.DB) string {
	port := cfg.Port
	if port == 0 {
		port = defaultPostgresPort
	}

	parts := []string{
		"host=" + cfg.Host,
		"user=" + cfg.User,
		"password=" + cfg.Password,
		"dbname=" + cfg.Name,
		fmt.Sprintf("port=%d", port),
	}

	if cfg.Extras != "" {
		parts = append(parts, cfg.Extras)
	}

	return strings.Join(parts, " ")
}

// SQLite returns the database file, with extras as query parameters.
func SQLite(cfg config.DB) string {
	if cfg.Extras == "" {
		return cfg.Name
	}

	return cfg.Name + "?" + cfg.Extras
}
