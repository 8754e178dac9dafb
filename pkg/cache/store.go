// Package cache provides the session-scoped stores backing result and
// catalog caching: a fingerprint-keyed result cache over an abstract
// key-value store, and a single-slot list cache for catalog reads.
package cache

import "context"

// Store is a session-scoped string key-value store. Implementations are
// best-effort; callers above the cache boundary never see storage errors.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	// Keys returns every stored key starting with prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)
}
