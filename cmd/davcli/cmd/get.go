package cmd

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/davfs/utils"
	"go.uber.org/zap"
)

type getArgs struct {
	remote string
	output string
}

func NewGetCmd(c *Context) *cobra.Command {
	args := &getArgs{}
	ctx := context.Background()
	subc := &cobra.Command{
		Use:   "get",
		Short: "Download a remote file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return onRunGet(ctx, c, args)
		},
	}
	subc.PersistentFlags().StringVarP(&args.remote, "remote", "r", "", "remote file")
	subc.PersistentFlags().StringVarP(&args.output, "output", "o", "", "local target, defaults to the remote basename")
	return subc
}

func onRunGet(ctx context.Context, c *Context, args *getArgs) error {
	if len(args.remote) == 0 {
		return fmt.Errorf("no remote file found")
	}
	output := args.output
	if len(output) == 0 {
		output = path.Base(args.remote)
	}
	start := time.Now()
	stream, err := c.Cli.ReadStream(ctx, args.remote)
	if err != nil {
		return fmt.Errorf("open remote stream failed, err:%w", err)
	}
	defer stream.Close()
	if err := utils.SafeSaveIOToFile(output, stream); err != nil {
		return fmt.Errorf("save file failed, err:%w", err)
	}
	logutil.GetLogger(ctx).Info("download file succ", zap.String("remote", args.remote),
		zap.String("local", output), zap.Duration("cost", time.Since(start)))
	return nil
}

func init() {
	register(NewGetCmd)
}
