package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/davfs/cmd/davcli/config"
	"github.com/xxxsen/davfs/davclient"
)

const (
	defaultConfigFileEnv = "DAVCLI_CONFIG"
)

var cmds []CreateFunc

type Context struct {
	Cli    davclient.IClient
	Config *config.Config
}

type CreateFunc func(ctx *Context) *cobra.Command

func register(cr CreateFunc) {
	cmds = append(cmds, cr)
}

func initContext(ctx *Context, cfgs []string) error {
	var c *config.Config
	var err error
	for _, cfg := range cfgs {
		if len(cfg) == 0 {
			continue
		}
		c, err = config.Parse(cfg)
		if err != nil {
			continue
		}
		break
	}
	if c == nil {
		return fmt.Errorf("no valid config file found, last err:%w", err)
	}
	ctx.Config = c
	logger.Init("", c.LogLevel, 0, 0, 0, true)
	opts := make([]davclient.Option, 0, 2)
	if len(c.Token) != 0 {
		opts = append(opts, davclient.WithToken(c.Token))
	} else if len(c.Username) != 0 {
		opts = append(opts, davclient.WithBasicAuth(c.Username, c.Password))
	}
	if c.Timeout > 0 {
		opts = append(opts, davclient.WithTimeout(time.Duration(c.Timeout)*time.Second))
	}
	cli, err := davclient.New(c.Endpoint, opts...)
	if err != nil {
		return err
	}
	ctx.Cli = cli
	return nil
}

func NewRoot() *cobra.Command {
	var configFile string
	ctx := &Context{}
	var rootCmd = &cobra.Command{
		Use:   "davcli",
		Short: "WebDAV CLI tool",
	}
	for _, cr := range cmds {
		rootCmd.AddCommand(cr(ctx))
	}
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		envConfigFile, _ := os.LookupEnv(defaultConfigFileEnv)
		return initContext(ctx, []string{configFile, "/etc/davcli/davcli_config.json", "C:/davcli/davcli_config.json", envConfigFile})
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file")
	return rootCmd
}
