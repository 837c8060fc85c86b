package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/kakudump"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ kakudump.PageCache = (*PageCache)(nil)

// PageCache implements kakudump.PageCache using SQLite.
type PageCache struct {
	db *DB
}

// NewPageCache creates a new PageCache.
func NewPageCache(db *DB) *PageCache {
	return &PageCache{db: db}
}

// hashContent computes xxHash of content and returns it as a hex string.
func hashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// FindPage returns the cached body for url.
func (c *PageCache) FindPage(ctx context.Context, url string) (string, error) {
	var body string
	err := c.db.QueryRowContext(ctx, `
		SELECT body FROM pages WHERE url = ?
	`, url).Scan(&body)

	if errors.Is(err, sql.ErrNoRows) {
		return "", kakudump.Errorf(kakudump.ENOTFOUND, "page not cached: %s", url)
	}
	if err != nil {
		return "", err
	}
	return body, nil
}

// SavePage stores body for url. An existing entry is only rewritten when
// its content changed, so updated_at tracks the last change.
func (c *PageCache) SavePage(ctx context.Context, url string, body string) error {
	if url == "" {
		return kakudump.Errorf(kakudump.EINVALID, "page URL required")
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO pages (id, url, body, content_hash, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			body = excluded.body,
			content_hash = excluded.content_hash,
			updated_at = excluded.updated_at
		WHERE pages.content_hash != excluded.content_hash
	`, uuid.New().String(), url, body, hashContent(body), time.Now().UTC().Format(time.RFC3339))

	return err
}
