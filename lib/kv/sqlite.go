package kv

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

type SqliteStore struct {
	db *sql.DB
}

// wraps an already-opened database, creating the schema if needed
func NewSqliteStore(db *sql.DB) (SqliteStore, error) {
	_, err := db.Exec(Schema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		return SqliteStore{}, err
	}
	return SqliteStore{db: db}, nil
}

// opens a store from a locator: a libsql/remote url uses the libsql
// driver, anything else is treated as a local sqlite file path
// (":memory:" included)
func Open(locator string) (SqliteStore, error) {
	driver := "sqlite"
	if strings.HasPrefix(locator, "libsql://") ||
		strings.HasPrefix(locator, "https://") ||
		strings.HasPrefix(locator, "http://") {
		driver = "libsql"
	}
	db, err := sql.Open(driver, locator)
	if err != nil {
		return SqliteStore{}, fmt.Errorf("open %s: %w", locator, err)
	}
	return NewSqliteStore(db)
}

func (s SqliteStore) Get(ctx context.Context, key string) (string, bool, error) {
	row := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key)

	var value string
	err := row.Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s SqliteStore) Put(ctx context.Context, key string, value string) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s SqliteStore) Close() error {
	return s.db.Close()
}
