// Package cache provides get-or-refresh memoization on top of a
// ports.CacheService, with single-flight de-duplication of misses.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nulzo/autorouter/internal/core/ports"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Memo de-duplicates concurrent refreshes of the same key.
type Memo struct {
	store  ports.CacheService
	group  singleflight.Group
	logger *zap.Logger
}

func NewMemo(store ports.CacheService, logger *zap.Logger) *Memo {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Memo{store: store, logger: logger}
}

// Invalidate drops a cached value so the next read refreshes it.
func (m *Memo) Invalidate(ctx context.Context, key string) error {
	m.group.Forget(key)
	return m.store.Delete(ctx, key)
}

// GetOrRefresh returns the cached value for key, or runs loader once for all
// concurrent callers and caches its result for ttl. Loader errors are
// returned to every waiting caller and are not cached.
func GetOrRefresh[T any](ctx context.Context, m *Memo, key string, ttl time.Duration, loader func(context.Context) (T, error)) (T, error) {
	var zero T

	if v, ok := lookup[T](ctx, m, key); ok {
		return v, nil
	}

	ch := m.group.DoChan(key, func() (interface{}, error) {
		// a flight that finished between our lookup and DoChan may have filled the cache
		if v, ok := lookup[T](ctx, m, key); ok {
			return v, nil
		}

		// the flight outlives any single caller
		val, err := loader(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		if err := m.store.Set(context.WithoutCancel(ctx), key, val, ttl); err != nil {
			m.logger.Warn("Failed to store cache entry", zap.String("key", key), zap.Error(err))
		}
		return val, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		v, ok := res.Val.(T)
		if !ok {
			return zero, fmt.Errorf("cache entry %s has unexpected type %T", key, res.Val)
		}
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

func lookup[T any](ctx context.Context, m *Memo, key string) (T, bool) {
	var v T
	err := m.store.Get(ctx, key, &v)
	if err == nil {
		return v, true
	}
	if !errors.Is(err, ports.ErrCacheMiss) {
		m.logger.Warn("Cache read failed, refreshing", zap.String("key", key), zap.Error(err))
	}
	var zero T
	return zero, false
}
