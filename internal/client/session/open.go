package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/diradmin/internal/client/config"
	"github.com/dmitrijs2005/diradmin/internal/client/storage"
)

// Open builds the store named by cfg.TokenStore. The returned close func
// releases whatever the backend opened and is never nil.
func Open(ctx context.Context, cfg *config.Config) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.TokenStore {
	case config.StoreMemory, "":
		return NewMemoryStore(), noop, nil
	case config.StoreKeyring:
		return NewKeyringStore(KeyringService), noop, nil
	case config.StoreSQLite:
		db, err := initDatabase(ctx, cfg.DatabasePath)
		if err != nil {
			return nil, noop, fmt.Errorf("open session database: %w", err)
		}
		return NewSQLiteStore(db), db.Close, nil
	default:
		return nil, noop, fmt.Errorf("%w: %q", ErrUnknownStore, cfg.TokenStore)
	}
}

// initDatabase is a seam for tests.
var initDatabase = func(ctx context.Context, dsn string) (*sql.DB, error) {
	return storage.InitDatabase(ctx, dsn)
}
