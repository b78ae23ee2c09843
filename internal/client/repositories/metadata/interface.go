package metadata

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get for a missing key.
var ErrNotFound = errors.New("metadata key not found")

// Item is one stored key/value pair.
type Item struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Repository is a small key/value store kept in the local database.
type Repository interface {
	Get(ctx context.Context, key string) (Item, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}
