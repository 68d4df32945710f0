package cacheapi

import (
	"context"
	"errors"
)

var (
	ErrCacheKeyNotExist = errors.New("cache key not exist")
)

type ICacheGetter[K comparable, V any] interface {
	Get(ctx context.Context, k K) (V, error)
}

type ICacheSetter[K comparable, V any] interface {
	Set(ctx context.Context, k K, v V) error
}

type ICacheDeleter[K comparable] interface {
	Del(ctx context.Context, k K) error
}

type ICache[K comparable, V any] interface {
	ICacheGetter[K, V]
	ICacheSetter[K, V]
	ICacheDeleter[K]
}

type LoadFunc[K comparable, V any] func(ctx context.Context, k K) (V, error)

// GetOrLoad reads k from c, falling back to cb on a miss and storing the
// loaded value. Cache write failures are ignored, the loaded value is
// returned either way.
func GetOrLoad[K comparable, V any](ctx context.Context, c ICache[K, V], k K, cb LoadFunc[K, V]) (V, error) {
	v, err := c.Get(ctx, k)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, ErrCacheKeyNotExist) {
		var zero V
		return zero, err
	}
	v, err = cb(ctx, k)
	if err != nil {
		var zero V
		return zero, err
	}
	_ = c.Set(ctx, k, v)
	return v, nil
}
