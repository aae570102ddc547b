package database

import (
	"database/sql"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	"linkhub/internal/platform/config"
)

// Open connects to the configured store. Local files and :memory: go through
// go-sqlite3; libsql://, https:// and wss:// URLs go to a remote libsql server.
func Open(cfg config.DatabaseConfig) (*sql.DB, error) {
	driver, dsn := resolveDSN(cfg)

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	maxConns := cfg.MaxConnections
	if maxConns < 1 {
		maxConns = 10
	}
	// Each :memory: connection is its own database.
	if driver == "sqlite3" && strings.HasPrefix(dsn, ":memory:") {
		maxConns = 1
	}

	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// IsUniqueViolation reports whether err is a UNIQUE or primary key constraint
// failure. The remote libsql driver only surfaces the server's message.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		return serr.ExtendedCode == sqlite3.ErrConstraintUnique || serr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func resolveDSN(cfg config.DatabaseConfig) (driver, dsn string) {
	raw := cfg.URL
	for _, prefix := range []string{"libsql://", "https://", "wss://"} {
		if strings.HasPrefix(raw, prefix) {
			if cfg.AuthToken == "" {
				return "libsql", raw
			}
			sep := "?"
			if strings.Contains(raw, "?") {
				sep = "&"
			}
			return "libsql", raw + sep + "authToken=" + url.QueryEscape(cfg.AuthToken)
		}
	}

	dsn = strings.TrimPrefix(raw, "file:")
	if dsn == "" {
		dsn = ":memory:"
	}
	if !strings.Contains(dsn, "?") {
		dsn += "?_foreign_keys=on&_busy_timeout=5000"
	}
	return "sqlite3", dsn
}
