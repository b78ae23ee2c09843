package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/diradmin/internal/dbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key        TEXT PRIMARY KEY,
  value      TEXT NOT NULL,
  updated_at INTEGER NOT NULL DEFAULT 0
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "auth_token", "QpwL5tke4Pnpja7X4"))

	item, err := r.Get(ctx, "auth_token")
	require.NoError(t, err)
	assert.Equal(t, "auth_token", item.Key)
	assert.Equal(t, "QpwL5tke4Pnpja7X4", item.Value)
	assert.False(t, item.UpdatedAt.IsZero())
}

func TestGet_Missing(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	_, err := r.Get(context.Background(), "absent")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSet_Upserts(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", "old"))
	require.NoError(t, r.Set(ctx, "k", "new"))

	item, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "new", item.Value)
}

func TestDelete_ManyAndIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", "1"))
	require.NoError(t, r.Set(ctx, "b", "2"))
	require.NoError(t, r.Set(ctx, "c", "3"))

	require.NoError(t, r.Delete(ctx, "a", "b", "missing"))
	require.NoError(t, r.Delete(ctx))

	_, err := r.Get(ctx, "a")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = r.Get(ctx, "b")
	require.ErrorIs(t, err, ErrNotFound)
	item, err := r.Get(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, "3", item.Value)
}

func TestRepository_InsideTransaction(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return NewSQLiteRepository(tx).Set(ctx, "k", "v")
	})
	require.NoError(t, err)

	item, err := NewSQLiteRepository(db).Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", item.Value)
}

func TestErrorsAreWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get metadata[k]")

	err = r.Set(ctx, "k", "v")
	require.ErrorContains(t, err, "failed to set metadata[k]")

	err = r.Delete(ctx, "k")
	require.ErrorContains(t, err, "failed to delete metadata")
}
