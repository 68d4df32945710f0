package server

import (
	"github.com/xxxsen/davfs/davclient"
)

type config struct {
	userMap       map[string]string
	cli           davclient.IClient
	staticEnable  bool
	maxUploadSize int64
	statCacheSize int64
}

type Option func(c *config)

func WithUser(m map[string]string) Option {
	return func(c *config) {
		c.userMap = m
	}
}

func WithClient(cli davclient.IClient) Option {
	return func(c *config) {
		c.cli = cli
	}
}

func WithEnableStatic(v bool) Option {
	return func(c *config) {
		c.staticEnable = v
	}
}

func WithMaxUploadSize(sz int64) Option {
	return func(c *config) {
		if sz > 0 {
			c.maxUploadSize = sz
		}
	}
}

func WithStatCacheSize(sz int64) Option {
	return func(c *config) {
		if sz > 0 {
			c.statCacheSize = sz
		}
	}
}

func applyOpts(opts ...Option) *config {
	c := &config{
		maxUploadSize: 64 * 1024 * 1024,
		statCacheSize: 4096,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
