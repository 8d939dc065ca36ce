// Package cache stores rendered pages keyed by content fingerprint and render settings.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Store is a rendered-page cache. Implementations are safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key, fingerprint string, html []byte) error
	Close() error
}

// Key derives the cache key for a page fingerprint rendered in mode under the
// given render settings.
func Key(fingerprint, mode, renderKey string) string {
	sum := sha256.Sum256([]byte(strings.Join([]string{fingerprint, mode, renderKey}, "\x00")))
	return hex.EncodeToString(sum[:])
}

// NoopStore never hits.
type NoopStore struct{}

func (NoopStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (NoopStore) Put(context.Context, string, string, []byte) error { return nil }
func (NoopStore) Close() error                                      { return nil }
