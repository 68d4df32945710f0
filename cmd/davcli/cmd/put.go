package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/davfs/utils"
	"go.uber.org/zap"
)

type putArgs struct {
	file   string
	remote string
}

func NewPutCmd(c *Context) *cobra.Command {
	args := &putArgs{}
	ctx := context.Background()
	subc := &cobra.Command{
		Use:   "put",
		Short: "Upload a local file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return onRunPut(ctx, c, args)
		},
	}
	subc.PersistentFlags().StringVarP(&args.file, "file", "f", "", "local file to upload")
	subc.PersistentFlags().StringVarP(&args.remote, "remote", "r", "", "remote target, defaults to /<basename>")
	return subc
}

func onRunPut(ctx context.Context, c *Context, args *putArgs) error {
	if len(args.file) == 0 {
		return fmt.Errorf("no upload file found")
	}
	remote := args.remote
	if len(remote) == 0 {
		remote = utils.Normalize("/" + path.Base(args.file))
	}
	f, err := os.Open(args.file)
	if err != nil {
		return fmt.Errorf("open local file failed, err:%w", err)
	}
	defer f.Close()
	start := time.Now()
	stream, err := c.Cli.WriteStream(ctx, remote)
	if err != nil {
		return fmt.Errorf("open remote stream failed, err:%w", err)
	}
	if _, err := io.Copy(stream, f); err != nil {
		return fmt.Errorf("copy stream failed, err:%w", err)
	}
	if err := stream.Close(); err != nil {
		return fmt.Errorf("commit upload failed, err:%w", err)
	}
	logutil.GetLogger(ctx).Info("upload file succ", zap.String("local", args.file),
		zap.String("remote", remote), zap.Duration("cost", time.Since(start)))
	return nil
}

func init() {
	register(NewPutCmd)
}
