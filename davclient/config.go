package davclient

import (
	"net/http"
	"time"
)

const (
	defaultTimeout        = 30 * time.Second
	defaultCacheTTL       = 5 * time.Minute
	defaultCacheSize      = 4096
	defaultReadCacheLimit = 512 * 1024
)

type config struct {
	endpoint       string
	username       string
	password       string
	token          string
	headers        map[string]string
	timeout        time.Duration
	client         *http.Client
	enableCache    bool
	cacheTTL       time.Duration
	cacheSize      int
	readCacheLimit int
}

type Option func(c *config)

// WithBasicAuth sets basic credentials. A bearer token configured via
// WithToken wins when both are present.
func WithBasicAuth(username, password string) Option {
	return func(c *config) {
		c.username = username
		c.password = password
	}
}

func WithToken(token string) Option {
	return func(c *config) {
		c.token = token
	}
}

// WithHeader adds a default header to every request. Auth headers are
// injected after these, so they cannot be overridden here.
func WithHeader(k, v string) Option {
	return func(c *config) {
		c.headers[k] = v
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) {
		c.client = hc
	}
}

// WithCache enables the read-through cache with the given ttl, 0 keeps the
// default of 5 minutes.
func WithCache(ttl time.Duration) Option {
	return func(c *config) {
		c.enableCache = true
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

func WithCacheSize(entries int) Option {
	return func(c *config) {
		if entries > 0 {
			c.cacheSize = entries
		}
	}
}

func applyOpts(opts ...Option) *config {
	c := &config{
		headers:        make(map[string]string),
		timeout:        defaultTimeout,
		cacheTTL:       defaultCacheTTL,
		cacheSize:      defaultCacheSize,
		readCacheLimit: defaultReadCacheLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
