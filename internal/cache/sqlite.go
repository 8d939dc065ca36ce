package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the cache database.
// Use ":memory:" for an in-memory cache, or a file path for a persistent one.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// Each connection to :memory: is its own database.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS rendered_pages (
		cache_key TEXT PRIMARY KEY,
		fingerprint TEXT NOT NULL,
		html BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_fingerprint ON rendered_pages(fingerprint);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Get returns the cached page for key.
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var html []byte
	err := s.db.QueryRowContext(ctx, "SELECT html FROM rendered_pages WHERE cache_key = ?", key).Scan(&html)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query rendered page: %w", err)
	}
	return html, true, nil
}

// Put stores html under key, replacing any previous entry.
func (s *SQLiteStore) Put(ctx context.Context, key, fingerprint string, html []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO rendered_pages (cache_key, fingerprint, html, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET fingerprint = excluded.fingerprint, html = excluded.html, updated_at = excluded.updated_at`,
		key, fingerprint, html, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("upsert rendered page: %w", err)
	}
	return nil
}

// Len returns the number of cached pages.
func (s *SQLiteStore) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM rendered_pages").Scan(&n); err != nil {
		return 0, fmt.Errorf("count rendered pages: %w", err)
	}
	return n, nil
}

// Prune deletes entries not written since before.
func (s *SQLiteStore) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM rendered_pages WHERE updated_at < ?", before.Unix())
	if err != nil {
		return 0, fmt.Errorf("prune rendered pages: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
