package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

type catArgs struct {
	path string
}

func NewCatCmd(c *Context) *cobra.Command {
	args := &catArgs{}
	ctx := context.Background()
	subc := &cobra.Command{
		Use:   "cat",
		Short: "Print a remote file to stdout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return onRunCat(ctx, c, args)
		},
	}
	subc.PersistentFlags().StringVarP(&args.path, "path", "p", "", "remote file")
	return subc
}

func onRunCat(ctx context.Context, c *Context, args *catArgs) error {
	if len(args.path) == 0 {
		return fmt.Errorf("no cat path found")
	}
	stream, err := c.Cli.ReadStream(ctx, args.path)
	if err != nil {
		return fmt.Errorf("open remote stream failed, err:%w", err)
	}
	defer stream.Close()
	if _, err := io.Copy(os.Stdout, stream); err != nil {
		return fmt.Errorf("copy stream failed, err:%w", err)
	}
	return nil
}

func init() {
	register(NewCatCmd)
}
