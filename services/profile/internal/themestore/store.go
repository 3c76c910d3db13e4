// Package themestore persists each user's AI-generated custom theme and
// business card behind a small key-value interface with a schema version on
// every entry.
package themestore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("themestore: not found")

// Store is a byte-oriented key-value backend.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
