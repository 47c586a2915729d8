// ABOUTME: Key-value access to the SQLite kv table
// ABOUTME: Backs both the local state cache and the sync server's key store
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/outreach/store"
)

// StateKey is the kv row holding the local state cache.
const StateKey = "state"

// KV reads and writes rows of the kv table. Missing keys yield
// store.ErrNotFound.
type KV struct {
	db  *sql.DB
	now func() time.Time
}

func NewKV(db *sql.DB) *KV {
	return &KV{db: db, now: time.Now}
}

func (k *KV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := k.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return value, nil
}

func (k *KV) Put(ctx context.Context, key string, value []byte) error {
	_, err := k.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, k.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

func (k *KV) Delete(ctx context.Context, key string) error {
	if _, err := k.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// Cache is the local store.Backend: the state blob lives in one kv row.
type Cache struct {
	kv  *KV
	key string
}

func NewCache(db *sql.DB) *Cache {
	return &Cache{kv: NewKV(db), key: StateKey}
}

func (c *Cache) Load(ctx context.Context) ([]byte, error) {
	return c.kv.Get(ctx, c.key)
}

func (c *Cache) Save(ctx context.Context, data []byte) error {
	return c.kv.Put(ctx, c.key, data)
}
