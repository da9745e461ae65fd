// Package sqlite persists GitHub API responses in a local SQLite database
// so repeated report runs against the same pull request avoid re-fetching.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultTTL is how long cached responses stay fresh. Pull request data is
// mostly append-only, so a short TTL is enough to catch late edits.
const DefaultTTL = 24 * time.Hour

// Cache implements a URL-keyed response cache backed by SQLite.
type Cache struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// NewCache opens (or creates) the cache database at the given path.
// Use ":memory:" for an in-memory database (useful for testing).
func NewCache(dbPath string, ttl time.Duration) (*Cache, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	c := &Cache{db: db, ttl: ttl, now: time.Now}

	if err := c.createSchema(); err != nil {
		return nil, fmt.Errorf("create cache schema: %w", err)
	}

	return c, nil
}

// createSchema creates the responses table if it doesn't exist.
func (c *Cache) createSchema() error {
	schema := `
	-- Cached GET response bodies keyed by request URL
	CREATE TABLE IF NOT EXISTS responses (
		url TEXT PRIMARY KEY,
		body BLOB NOT NULL,
		fetched_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_responses_fetched_at ON responses(fetched_at);
	`

	_, err := c.db.Exec(schema)
	return err
}

// Get returns the cached body for url if present and not expired.
func (c *Cache) Get(ctx context.Context, url string) ([]byte, bool, error) {
	query := `SELECT body, fetched_at FROM responses WHERE url = ?`

	var body []byte
	var fetchedAt int64
	err := c.db.QueryRowContext(ctx, query, url).Scan(&body, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cache entry: %w", err)
	}

	if c.now().Sub(time.Unix(fetchedAt, 0)) > c.ttl {
		return nil, false, nil
	}

	return body, true, nil
}

// Put stores or replaces the cached body for url.
func (c *Cache) Put(ctx context.Context, url string, body []byte) error {
	query := `
		INSERT INTO responses (url, body, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at
	`

	if _, err := c.db.ExecContext(ctx, query, url, body, c.now().Unix()); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// Prune deletes expired entries.
func (c *Cache) Prune(ctx context.Context) (int64, error) {
	cutoff := c.now().Add(-c.ttl).Unix()

	result, err := c.db.ExecContext(ctx, `DELETE FROM responses WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune cache: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune cache: affected rows: %w", err)
	}
	return rows, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// SetNowFunc overrides the clock (for testing expiry).
func (c *Cache) SetNowFunc(now func() time.Time) {
	c.now = now
}
