package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type WebdavConfig struct {
	Endpoint   string `json:"endpoint"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	Token      string `json:"token"`
	TimeoutSec int64  `json:"timeout_sec"`
}

type CacheConfig struct {
	Enable bool  `json:"enable"`
	TTLSec int64 `json:"ttl_sec"`
	Size   int   `json:"size"`
}

type StaticConfig struct {
	Enable bool `json:"enable"`
}

type Config struct {
	Bind          string            `json:"bind"`
	LogInfo       logger.LogConfig  `json:"log_info"`
	Webdav        WebdavConfig      `json:"webdav"`
	Cache         CacheConfig       `json:"cache"`
	Static        StaticConfig      `json:"static"`
	UserInfo      map[string]string `json:"user_info"`
	MaxUploadSize int64             `json:"max_upload_size"`
}

func Parse(f string) (*Config, error) {
	raw, err := os.ReadFile(f)
	if err != nil {
		return nil, fmt.Errorf("read file:%w", err)
	}
	c := &Config{
		Bind: ":9100",
		Webdav: WebdavConfig{
			TimeoutSec: 30,
		},
		Cache: CacheConfig{
			TTLSec: 300,
			Size:   4096,
		},
		MaxUploadSize: 64 * 1024 * 1024,
	}
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("decode json failed, err:%w", err)
	}
	if len(c.Webdav.Endpoint) == 0 {
		return nil, fmt.Errorf("no webdav endpoint in config")
	}
	return c, nil
}
