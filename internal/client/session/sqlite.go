package session

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/diradmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/diradmin/internal/dbx"
)

// SQLiteStore keeps the session in the metadata table of the local
// database, so it survives restarts of the client.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Get(ctx context.Context) (Session, error) {
	repo := metadata.NewSQLiteRepository(s.db)

	token, err := repo.Get(ctx, TokenKey)
	if errors.Is(err, metadata.ErrNotFound) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, err
	}

	email, err := repo.Get(ctx, emailKey)
	if err != nil && !errors.Is(err, metadata.ErrNotFound) {
		return Session{}, err
	}
	return Session{Token: token.Value, Email: email.Value}, nil
}

// Set writes token and email together; a stale email never outlives the
// token it belonged to.
func (s *SQLiteStore) Set(ctx context.Context, sess Session) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, TokenKey, sess.Token); err != nil {
			return err
		}
		if sess.Email == "" {
			return repo.Delete(ctx, emailKey)
		}
		return repo.Set(ctx, emailKey, sess.Email)
	})
}

func (s *SQLiteStore) Remove(ctx context.Context) error {
	return metadata.NewSQLiteRepository(s.db).Delete(ctx, TokenKey, emailKey)
}
