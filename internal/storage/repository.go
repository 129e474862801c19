package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Repository is a durable key-value store. Writers from different processes
// race with last-write-wins; each row records the session that wrote it.
type Repository struct {
	db     *sql.DB
	writer string
}

func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	writer, err := uuid.NewV7()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("generate writer id: %w", err)
	}
	return &Repository{db: db, writer: writer.String()}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Writer returns the session id stamped on rows written by this repository.
func (r *Repository) Writer() string {
	return r.writer
}

func (r *Repository) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS kv (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  writer TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// CheckWritable performs a throwaway write inside a transaction that is always
// rolled back.
func (r *Repository) CheckWritable(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
INSERT INTO kv (key, value, writer, updated_at) VALUES ('__probe__', '', ?, ?)
ON CONFLICT(key) DO UPDATE SET updated_at=excluded.updated_at
`, r.writer, time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("write probe row: %w", err)
	}
	return nil
}

// Get returns the value stored under key. found is false when no row exists.
func (r *Repository) Get(ctx context.Context, key string) (value string, found bool, err error) {
	err = r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read key %q: %w", key, err)
	}
	return value, true, nil
}

func (r *Repository) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO kv (key, value, writer, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
  value=excluded.value,
  writer=excluded.writer,
  updated_at=excluded.updated_at
`, key, value, r.writer, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("write key %q: %w", key, err)
	}
	return nil
}

// LastWriter returns the session id that last wrote key.
func (r *Repository) LastWriter(ctx context.Context, key string) (string, error) {
	var writer string
	err := r.db.QueryRowContext(ctx, `SELECT writer FROM kv WHERE key = ?`, key).Scan(&writer)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read writer of %q: %w", key, err)
	}
	return writer, nil
}
