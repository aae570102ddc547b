// Package dbtest opens migrated in-memory databases for repository tests.
package dbtest

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"linkhub/internal/platform/database"
	"linkhub/migrations"
)

func New(t testing.TB) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("Failed to open db: %v", err)
	}
	db.SetMaxOpenConns(1)

	if err := database.Migrate(context.Background(), db, migrations.FS); err != nil {
		t.Fatalf("Failed to migrate db: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// CreateUser inserts a bare user row so owner-scoped rows satisfy their foreign keys.
func CreateUser(t testing.TB, db *sql.DB, id, username string) {
	t.Helper()

	now := time.Now().Unix()
	_, err := db.Exec(`
		INSERT INTO users (id, name, username, email, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, username, username, username+"@example.com", "x", now, now)
	if err != nil {
		t.Fatalf("Failed to create user %s: %v", id, err)
	}
}

// CreateLink inserts a link at the given position.
func CreateLink(t testing.TB, db *sql.DB, id, userID, title string, position int) {
	t.Helper()

	now := time.Now().Unix()
	_, err := db.Exec(`
		INSERT INTO links (id, user_id, title, url, is_active, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, 1, ?, ?, ?)
	`, id, userID, title, "https://example.com/"+id, position, now, now)
	if err != nil {
		t.Fatalf("Failed to create link %s: %v", id, err)
	}
}
