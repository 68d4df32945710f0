package cachewrap

import (
	"context"

	hlru "github.com/hnlq715/golang-lru"
	"github.com/xxxsen/davfs/cacheapi"
)

// expireLruCacheAdaptor bridges the non-generic expiring lru to the typed
// cache interface. Values of a foreign type count as a miss.
type expireLruCacheAdaptor[K comparable, V any] struct {
	c *hlru.Cache
}

func (e *expireLruCacheAdaptor[K, V]) Get(ctx context.Context, k K) (V, error) {
	var zero V
	raw, ok := e.c.Get(k)
	if !ok {
		return zero, cacheapi.ErrCacheKeyNotExist
	}
	v, ok := raw.(V)
	if !ok {
		return zero, cacheapi.ErrCacheKeyNotExist
	}
	return v, nil
}

func (e *expireLruCacheAdaptor[K, V]) Set(ctx context.Context, k K, v V) error {
	_ = e.c.Add(k, v)
	return nil
}

func (e *expireLruCacheAdaptor[K, V]) Del(ctx context.Context, k K) error {
	e.c.Remove(k)
	return nil
}

func WrapExpireLruCache[K comparable, V any](in *hlru.Cache) cacheapi.ICache[K, V] {
	return &expireLruCacheAdaptor[K, V]{c: in}
}
