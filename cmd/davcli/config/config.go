package config

import (
	"encoding/json"
	"fmt"
	"os"
)

type Config struct {
	Endpoint string `json:"endpoint"`
	Username string `json:"username"`
	Password string `json:"password"`
	Token    string `json:"token"`
	LogLevel string `json:"log_level"`
	Timeout  int64  `json:"timeout"`
}

func Parse(f string) (*Config, error) {
	raw, err := os.ReadFile(f)
	if err != nil {
		return nil, fmt.Errorf("read file:%w", err)
	}
	c := &Config{
		LogLevel: "info",
		Timeout:  600,
	}
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("unmarshal file:%w", err)
	}
	if len(c.Endpoint) == 0 {
		return nil, fmt.Errorf("no endpoint in config")
	}
	return c, nil
}
