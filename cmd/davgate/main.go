package main

import (
	"flag"
	"time"

	_ "github.com/xxxsen/common/webapi/auth"
	"github.com/xxxsen/davfs/config"
	"github.com/xxxsen/davfs/davclient"
	"github.com/xxxsen/davfs/server"

	"github.com/dustin/go-humanize"
	"github.com/xxxsen/common/logger"
	"go.uber.org/zap"
)

var file = flag.String("config", "./config.json", "config file path")

func main() {
	flag.Parse()

	c, err := config.Parse(*file)
	if err != nil {
		panic(err)
	}
	logitem := c.LogInfo
	logger := logger.Init(logitem.File, logitem.Level, int(logitem.FileCount), int(logitem.FileSize), int(logitem.KeepDays), logitem.Console)
	logger.Info("recv config", zap.Any("config", c))
	logger.Info("current upstream", zap.String("endpoint", c.Webdav.Endpoint))
	logger.Info("current gateway feature")
	logger.Info("-- static feature", zap.Bool("enable", c.Static.Enable))
	logger.Info("-- client cache", zap.Bool("enable", c.Cache.Enable),
		zap.Int("size", c.Cache.Size), zap.Int64("ttl_sec", c.Cache.TTLSec))
	logger.Info("-- max upload size", zap.String("limit", humanize.IBytes(uint64(c.MaxUploadSize))))
	cli, err := buildClient(c)
	if err != nil {
		logger.Fatal("init webdav client fail", zap.Error(err))
	}
	svr, err := server.New(c.Bind,
		server.WithClient(cli),
		server.WithUser(c.UserInfo),
		server.WithEnableStatic(c.Static.Enable),
		server.WithMaxUploadSize(c.MaxUploadSize),
		server.WithStatCacheSize(int64(c.Cache.Size)),
	)
	if err != nil {
		logger.Fatal("init server fail", zap.Error(err))
	}
	logger.Info("init server succ, start it...")
	if err := svr.Run(); err != nil {
		logger.Fatal("run server fail", zap.Error(err))
	}
}

func buildClient(c *config.Config) (davclient.IClient, error) {
	opts := make([]davclient.Option, 0, 4)
	if len(c.Webdav.Token) != 0 {
		opts = append(opts, davclient.WithToken(c.Webdav.Token))
	} else if len(c.Webdav.Username) != 0 {
		opts = append(opts, davclient.WithBasicAuth(c.Webdav.Username, c.Webdav.Password))
	}
	if c.Webdav.TimeoutSec > 0 {
		opts = append(opts, davclient.WithTimeout(time.Duration(c.Webdav.TimeoutSec)*time.Second))
	}
	if c.Cache.Enable {
		opts = append(opts,
			davclient.WithCache(time.Duration(c.Cache.TTLSec)*time.Second),
			davclient.WithCacheSize(c.Cache.Size),
		)
	}
	return davclient.New(c.Webdav.Endpoint, opts...)
}
