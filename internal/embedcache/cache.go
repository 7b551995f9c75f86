// Package embedcache is the side store for transient embedding vectors,
// keyed by entry id. Keeping vectors out of the MemoryEntry type makes
// "never serialized into the event log" a structural guarantee instead of a
// field annotation.
package embedcache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Cache is a SQLite-backed embedding cache. Vectors are recomputed or
// re-cached on demand; losing this file never loses memory content.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)")
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	c := &Cache{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate cache: %w", err)
	}
	return c, nil
}

func (c *Cache) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS embeddings (
		entry_id   TEXT PRIMARY KEY,
		vector     TEXT NOT NULL,
		dims       INTEGER NOT NULL,
		updated_at TEXT NOT NULL
	);`
	_, err := c.db.Exec(schema)
	return err
}

// Put stores or replaces the vector for an entry.
func (c *Cache) Put(ctx context.Context, entryID uuid.UUID, vector []float32) error {
	encoded, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("encode vector: %w", err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO embeddings (entry_id, vector, dims, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(entry_id) DO UPDATE SET
			vector = excluded.vector,
			dims = excluded.dims,
			updated_at = excluded.updated_at`,
		entryID.String(), string(encoded), len(vector), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("put embedding: %w", err)
	}
	return nil
}

// Get returns the cached vector for an entry, or ok=false when absent.
func (c *Cache) Get(ctx context.Context, entryID uuid.UUID) ([]float32, bool, error) {
	var encoded string
	err := c.db.QueryRowContext(ctx,
		`SELECT vector FROM embeddings WHERE entry_id = ?`, entryID.String()).Scan(&encoded)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get embedding: %w", err)
	}

	var vector []float32
	if err := json.Unmarshal([]byte(encoded), &vector); err != nil {
		return nil, false, fmt.Errorf("decode vector: %w", err)
	}
	return vector, true, nil
}

// Delete removes the vector for an entry. Deleting an absent id is not an
// error.
func (c *Cache) Delete(ctx context.Context, entryID uuid.UUID) error {
	if _, err := c.db.ExecContext(ctx,
		`DELETE FROM embeddings WHERE entry_id = ?`, entryID.String()); err != nil {
		return fmt.Errorf("delete embedding: %w", err)
	}
	return nil
}

// Prune drops cached vectors whose entry id is not in keep, e.g. after a
// compaction removed entries from the log.
func (c *Cache) Prune(ctx context.Context, keep map[uuid.UUID]bool) (int, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT entry_id FROM embeddings`)
	if err != nil {
		return 0, fmt.Errorf("scan embeddings: %w", err)
	}
	defer rows.Close()

	var stale []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("scan embedding id: %w", err)
		}
		parsed, err := uuid.Parse(id)
		if err != nil || !keep[parsed] {
			stale = append(stale, id)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("scan embeddings: %w", err)
	}

	for _, id := range stale {
		if _, err := c.db.ExecContext(ctx,
			`DELETE FROM embeddings WHERE entry_id = ?`, id); err != nil {
			return 0, fmt.Errorf("prune embedding: %w", err)
		}
	}
	return len(stale), nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}
