// Package metadata persists client-side key/value settings in SQLite.
package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/diradmin/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository binds the repository to a *sql.DB or a *sql.Tx.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) (Item, error) {
	item := Item{Key: key}
	var updated int64
	err := r.db.QueryRowContext(ctx,
		`SELECT value, updated_at FROM metadata WHERE key = ?`, key).Scan(&item.Value, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Item{}, ErrNotFound
	}
	if err != nil {
		return Item{}, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	item.UpdatedAt = time.Unix(updated, 0)
	return item, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value, updated_at) VALUES (?, ?, CAST(strftime('%s', 'now') AS INTEGER))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

// Delete removes the given keys. Missing keys are not an error.
func (r *SQLiteRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM metadata WHERE key IN (`+placeholders+`)`, args...)
	if err != nil {
		return fmt.Errorf("failed to delete metadata%v: %w", keys, err)
	}
	return nil
}
