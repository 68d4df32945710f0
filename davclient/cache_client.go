package davclient

import (
	"context"
	"io"
	"strconv"

	"github.com/cespare/xxhash/v2"
	explru "github.com/hashicorp/golang-lru/v2/expirable"
	hlru "github.com/hnlq715/golang-lru"
	"github.com/xxxsen/davfs/cacheapi"
	cachewrap "github.com/xxxsen/davfs/cacheapi/adaptor"
	"github.com/xxxsen/davfs/errs"
	"github.com/xxxsen/davfs/utils"
	"golang.org/x/sync/singleflight"
)

// cacheClient decorates IClient with a ttl bounded read-through cache for
// stat, listing and small file reads. Every mutating call drops the entries
// of the touched path and its parent listing. The cache belongs to one
// client instance, values handed out are treated as plain data and never
// written back.
type cacheClient struct {
	IClient
	c         *config
	statCache cacheapi.ICache[uint64, *Entry]
	listCache cacheapi.ICache[uint64, []*Entry]
	readCache cacheapi.ICache[uint64, []byte]
	sf        singleflight.Group
}

func cacheKey(op, p string) uint64 {
	return xxhash.Sum64String(op + "#" + p)
}

func newCacheClient(inner IClient, c *config) IClient {
	cc := &cacheClient{
		IClient:   inner,
		c:         c,
		statCache: cachewrap.WrapExpirableLruCache(explru.NewLRU[uint64, *Entry](c.cacheSize, nil, c.cacheTTL)),
		listCache: cachewrap.WrapExpirableLruCache(explru.NewLRU[uint64, []*Entry](c.cacheSize, nil, c.cacheTTL)),
	}
	if rc, err := hlru.NewWithExpire(c.cacheSize, c.cacheTTL); err == nil {
		cc.readCache = cachewrap.WrapExpireLruCache[uint64, []byte](rc)
	}
	return cc
}

func (c *cacheClient) invalidate(ctx context.Context, paths ...string) {
	for _, p := range paths {
		p = utils.Normalize(p)
		_ = c.statCache.Del(ctx, cacheKey("stat", p))
		_ = c.listCache.Del(ctx, cacheKey("list", p))
		_ = c.listCache.Del(ctx, cacheKey("list", utils.ParentOf(p)))
		if c.readCache != nil {
			_ = c.readCache.Del(ctx, cacheKey("read", p))
		}
	}
}

func (c *cacheClient) invalidateChain(ctx context.Context, p string) {
	p = utils.Normalize(p)
	for {
		c.invalidate(ctx, p)
		if p == "/" {
			return
		}
		p = utils.ParentOf(p)
	}
}

func (c *cacheClient) Stat(ctx context.Context, p string) (*Entry, error) {
	p = utils.Normalize(p)
	key := cacheKey("stat", p)
	v, err, _ := c.sf.Do(strconv.FormatUint(key, 10), func() (interface{}, error) {
		return cacheapi.GetOrLoad(ctx, c.statCache, key, func(ctx context.Context, _ uint64) (*Entry, error) {
			return c.IClient.Stat(ctx, p)
		})
	})
	if err != nil {
		return nil, err
	}
	return v.(*Entry), nil
}

func (c *cacheClient) Exists(ctx context.Context, p string) (bool, error) {
	if _, err := c.Stat(ctx, p); err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ReadDir caches only the plain depth-1 listing, option-bearing calls go
// straight through.
func (c *cacheClient) ReadDir(ctx context.Context, dir string, opts ...ReadDirOption) ([]*Entry, error) {
	if len(opts) != 0 {
		return c.IClient.ReadDir(ctx, dir, opts...)
	}
	dir = utils.Normalize(dir)
	key := cacheKey("list", dir)
	v, err, _ := c.sf.Do(strconv.FormatUint(key, 10), func() (interface{}, error) {
		return cacheapi.GetOrLoad(ctx, c.listCache, key, func(ctx context.Context, _ uint64) ([]*Entry, error) {
			return c.IClient.ReadDir(ctx, dir)
		})
	})
	if err != nil {
		return nil, err
	}
	return v.([]*Entry), nil
}

func (c *cacheClient) ReadFile(ctx context.Context, p string) ([]byte, error) {
	p = utils.Normalize(p)
	if c.readCache == nil {
		return c.IClient.ReadFile(ctx, p)
	}
	key := cacheKey("read", p)
	if data, err := c.readCache.Get(ctx, key); err == nil {
		return data, nil
	}
	data, err := c.IClient.ReadFile(ctx, p)
	if err != nil {
		return nil, err
	}
	// oversized bodies stay uncached
	if len(data) <= c.c.readCacheLimit {
		_ = c.readCache.Set(ctx, key, data)
	}
	return data, nil
}

func (c *cacheClient) WriteFile(ctx context.Context, p string, data []byte, opts ...WriteOption) error {
	defer c.invalidate(ctx, p)
	return c.IClient.WriteFile(ctx, p, data, opts...)
}

func (c *cacheClient) WriteStream(ctx context.Context, p string) (io.WriteCloser, error) {
	// commit through the decorator so the close-time put invalidates
	return newWriteStream(ctx, utils.Normalize(p), c.WriteFile), nil
}

func (c *cacheClient) AppendFile(ctx context.Context, p string, data []byte) error {
	defer c.invalidate(ctx, p)
	return c.IClient.AppendFile(ctx, p, data)
}

func (c *cacheClient) DeleteFile(ctx context.Context, p string) error {
	defer c.invalidate(ctx, p)
	return c.IClient.DeleteFile(ctx, p)
}

func (c *cacheClient) Mkdir(ctx context.Context, dir string) error {
	defer c.invalidate(ctx, dir)
	return c.IClient.Mkdir(ctx, dir)
}

func (c *cacheClient) MkdirAll(ctx context.Context, dir string) error {
	// every ancestor may have been created
	defer c.invalidateChain(ctx, dir)
	return c.IClient.MkdirAll(ctx, dir)
}

func (c *cacheClient) Remove(ctx context.Context, p string) error {
	defer c.invalidate(ctx, p)
	return c.IClient.Remove(ctx, p)
}

// RemoveAll drops the root of the removed subtree, cached descendants age
// out via ttl.
func (c *cacheClient) RemoveAll(ctx context.Context, p string) error {
	defer c.invalidate(ctx, p)
	return c.IClient.RemoveAll(ctx, p)
}

func (c *cacheClient) Copy(ctx context.Context, src, dst string, overwrite bool, opts ...CopyOption) error {
	defer c.invalidate(ctx, dst)
	return c.IClient.Copy(ctx, src, dst, overwrite, opts...)
}

func (c *cacheClient) Move(ctx context.Context, src, dst string, overwrite bool) error {
	defer c.invalidate(ctx, src, dst)
	return c.IClient.Move(ctx, src, dst, overwrite)
}

func (c *cacheClient) Rename(ctx context.Context, p, newName string) error {
	dst := utils.Normalize(utils.ParentOf(utils.Normalize(p)) + "/" + newName)
	defer c.invalidate(ctx, p, dst)
	return c.IClient.Rename(ctx, p, newName)
}

func (c *cacheClient) SetProps(ctx context.Context, p string, props map[string]string) error {
	defer c.invalidate(ctx, p)
	return c.IClient.SetProps(ctx, p, props)
}

