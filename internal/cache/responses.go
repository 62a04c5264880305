// Package cache provides a SQLite-backed read-through cache for live-mode
// backend responses. It never holds run history: only (scan payload,
// jurisdiction) → response entries, keyed by content hash.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/segmentio/encoding/json"

	_ "modernc.org/sqlite"

	"github.com/labelwise-ai/labelwise/harness/pkg/types"
)

// ResponseCache is a size-bounded SQLite cache of structured responses.
type ResponseCache struct {
	db         *sql.DB
	maxEntries int
}

// CacheStats reports current usage of the response cache.
type CacheStats struct {
	Entries    int
	TotalBytes int64
}

// ContentHash returns the cache key for a scan payload and jurisdiction.
func ContentHash(scanData []byte, jurisdiction string) string {
	h := sha256.New()
	h.Write(scanData)
	h.Write([]byte{0})
	h.Write([]byte(jurisdiction))
	return hex.EncodeToString(h.Sum(nil))
}

// NewResponseCache opens (or creates) a response cache at dbPath.
// maxEntries bounds the cache; the least recently accessed entries are
// evicted once the bound is exceeded.
func NewResponseCache(dbPath string, maxEntries int) (*ResponseCache, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS responses (
			content_hash TEXT PRIMARY KEY,
			response     BLOB NOT NULL,
			created_at   INTEGER NOT NULL,
			accessed_at  INTEGER NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_responses_accessed ON responses(accessed_at)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &ResponseCache{db: db, maxEntries: maxEntries}, nil
}

// Get returns the cached response for key, or nil on a miss. A hit bumps
// the entry's accessed_at so eviction stays LRU-ordered.
func (c *ResponseCache) Get(key string) (*types.StructuredResponse, error) {
	var raw []byte
	err := c.db.QueryRow(`SELECT response FROM responses WHERE content_hash = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	if _, err := c.db.Exec(`UPDATE responses SET accessed_at = ? WHERE content_hash = ?`,
		time.Now().UnixNano(), key); err != nil {
		return nil, fmt.Errorf("cache touch: %w", err)
	}

	var resp types.StructuredResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &resp, nil
}

// Put stores resp under key, then evicts least recently accessed entries
// beyond the configured bound.
func (c *ResponseCache) Put(key string, resp *types.StructuredResponse) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}

	now := time.Now().UnixNano()
	if _, err := c.db.Exec(`
		INSERT INTO responses (content_hash, response, created_at, accessed_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(content_hash) DO UPDATE SET response = excluded.response, accessed_at = excluded.accessed_at
	`, key, raw, now, now); err != nil {
		return fmt.Errorf("cache put: %w", err)
	}

	return c.evict()
}

// evict removes the least recently accessed rows beyond maxEntries.
func (c *ResponseCache) evict() error {
	if c.maxEntries <= 0 {
		return nil
	}
	if _, err := c.db.Exec(`
		DELETE FROM responses WHERE content_hash IN (
			SELECT content_hash FROM responses
			ORDER BY accessed_at DESC
			LIMIT -1 OFFSET ?
		)
	`, c.maxEntries); err != nil {
		return fmt.Errorf("cache evict: %w", err)
	}
	return nil
}

// Stats returns entry count and total stored bytes.
func (c *ResponseCache) Stats() (CacheStats, error) {
	var s CacheStats
	err := c.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(LENGTH(response)), 0) FROM responses`).
		Scan(&s.Entries, &s.TotalBytes)
	if err != nil {
		return CacheStats{}, fmt.Errorf("cache stats: %w", err)
	}
	return s, nil
}

// Clear removes all cached responses.
func (c *ResponseCache) Clear() error {
	if _, err := c.db.Exec(`DELETE FROM responses`); err != nil {
		return fmt.Errorf("cache clear: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (c *ResponseCache) Close() error {
	return c.db.Close()
}
