package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// KeyringService is the service name entries are filed under in the OS
// keyring.
const KeyringService = "diradmin"

// KeyringStore keeps the session in the operating system's credential store
// (Keychain, Secret Service, Windows Credential Manager).
type KeyringStore struct {
	service string
	user    string
}

// NewKeyringStore files the session under service/TokenKey. An empty service
// means KeyringService.
func NewKeyringStore(service string) *KeyringStore {
	if service == "" {
		service = KeyringService
	}
	return &KeyringStore{service: service, user: TokenKey}
}

type keyringEntry struct {
	Token string `json:"token"`
	Email string `json:"email,omitempty"`
}

func (k *KeyringStore) Get(_ context.Context) (Session, error) {
	secret, err := keyring.Get(k.service, k.user)
	if errors.Is(err, keyring.ErrNotFound) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("keyring get: %w", err)
	}

	var e keyringEntry
	if err := json.Unmarshal([]byte(secret), &e); err != nil {
		// entries written by hand hold the bare token
		return Session{Token: secret}, nil
	}
	return Session{Token: e.Token, Email: e.Email}, nil
}

func (k *KeyringStore) Set(_ context.Context, s Session) error {
	b, err := json.Marshal(keyringEntry{Token: s.Token, Email: s.Email})
	if err != nil {
		return err
	}
	if err := keyring.Set(k.service, k.user, string(b)); err != nil {
		return fmt.Errorf("keyring set: %w", err)
	}
	return nil
}

func (k *KeyringStore) Remove(_ context.Context) error {
	err := keyring.Delete(k.service, k.user)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("keyring delete: %w", err)
	}
	return nil
}
