// Package cache holds reference data (catalog snapshots, student profiles)
// that is read far more often than it changes. Values are stored as JSON in
// every backend so a cached value is always a private copy.
package cache

import (
	"context"
	"time"
)

// Cache is a keyed store with per-entry expiry.
type Cache interface {
	// Get decodes the value stored at key into dest. It reports false when
	// the key is absent or expired.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// DeletePrefix drops every key starting with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
}

// NoopCache never stores anything.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string, any) (bool, error)         { return false, nil }
func (NoopCache) Set(context.Context, string, any, time.Duration) error { return nil }
func (NoopCache) Delete(context.Context, string) error                  { return nil }
func (NoopCache) DeletePrefix(context.Context, string) error            { return nil }
