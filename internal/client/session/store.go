// Package session keeps the client's authentication state: the bearer token
// the service issued at login and the email it was issued for.
//
// Views and the API client reach the token only through Store, so the
// backing medium (process memory, the local SQLite database, the OS keyring)
// is a wiring decision made in main.
package session

import (
	"context"
	"errors"
	"fmt"
)

// TokenKey is the fixed key the token is stored under.
const TokenKey = "auth_token"

// emailKey holds the account the token belongs to.
const emailKey = "auth_email"

// ErrUnknownStore is returned by Open for an unsupported backend name.
var ErrUnknownStore = errors.New("unknown token store")

// Session is what a successful login leaves behind.
type Session struct {
	Token string
	Email string
}

// Authenticated reports whether a token is present. Presence is the only
// check; the token is never verified against the service.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Store gets, sets and removes the session. Get returns a zero Session when
// nothing is stored.
type Store interface {
	Get(ctx context.Context) (Session, error)
	Set(ctx context.Context, s Session) error
	Remove(ctx context.Context) error
}

// Token is a convenience for callers that only need the bearer token.
func Token(ctx context.Context, st Store) (string, error) {
	s, err := st.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("read session: %w", err)
	}
	return s.Token, nil
}
