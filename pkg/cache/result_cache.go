package cache

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/flowform/flowform-go/pkg/log"
	"github.com/flowform/flowform-go/pkg/models"
)

// ResultCache maps fingerprint keys to execution results. Writes are
// best-effort: storage failures are logged and absorbed, never returned.
type ResultCache struct {
	store  Store
	logger *slog.Logger
}

// NewResultCache builds a cache over the given store.
func NewResultCache(store Store) *ResultCache {
	return &ResultCache{
		store:  store,
		logger: log.WithModule("result_cache"),
	}
}

// Get returns the cached result for key, or nil when absent or unreadable.
func (c *ResultCache) Get(ctx context.Context, key string) *models.ExecutionResult {
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.WarnContext(ctx, "Cache read failed", "key", key, "error", err)
		return nil
	}

	if !ok {
		return nil
	}

	var result models.ExecutionResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		c.logger.WarnContext(ctx, "Cache entry is not a valid result, dropping", "key", key, "error", err)

		if err := c.store.Delete(ctx, key); err != nil {
			c.logger.WarnContext(ctx, "Cache delete failed", "key", key, "error", err)
		}

		return nil
	}

	return &result
}

// Put stores result under key. Failures are swallowed.
func (c *ResultCache) Put(ctx context.Context, key string, result *models.ExecutionResult) {
	raw, err := json.Marshal(result)
	if err != nil {
		c.logger.WarnContext(ctx, "Cache serialization failed", "key", key, "error", err)
		return
	}

	if err := c.store.Set(ctx, key, string(raw)); err != nil {
		c.logger.WarnContext(ctx, "Cache write failed", "key", key, "error", err)
	}
}

// Invalidate removes the single entry for (operationID, payload).
func (c *ResultCache) Invalidate(ctx context.Context, operationID string, payload any) {
	c.deleteKeys(ctx, Fingerprint(operationID, payload))
}

// InvalidateOperation removes every entry for one operation.
func (c *ResultCache) InvalidateOperation(ctx context.Context, operationID string) {
	c.deleteByPrefix(ctx, operationPrefix(operationID))
}

// Clear removes every entry under this library's namespace.
func (c *ResultCache) Clear(ctx context.Context) {
	c.deleteByPrefix(ctx, namespace)
}

func (c *ResultCache) deleteByPrefix(ctx context.Context, prefix string) {
	keys, err := c.store.Keys(ctx, prefix)
	if err != nil {
		c.logger.WarnContext(ctx, "Cache key scan failed", "prefix", prefix, "error", err)
		return
	}

	c.deleteKeys(ctx, keys...)
}

func (c *ResultCache) deleteKeys(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}

	if err := c.store.Delete(ctx, keys...); err != nil {
		c.logger.WarnContext(ctx, "Cache delete failed", "error", err)
	}
}
