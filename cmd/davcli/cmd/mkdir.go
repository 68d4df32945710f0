package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type mkdirArgs struct {
	path string
}

func NewMkdirCmd(c *Context) *cobra.Command {
	args := &mkdirArgs{}
	ctx := context.Background()
	subc := &cobra.Command{
		Use:   "mkdir",
		Short: "Create a remote directory, missing parents included",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return onRunMkdir(ctx, c, args)
		},
	}
	subc.PersistentFlags().StringVarP(&args.path, "path", "p", "", "remote directory")
	return subc
}

func onRunMkdir(ctx context.Context, c *Context, args *mkdirArgs) error {
	if len(args.path) == 0 {
		return fmt.Errorf("no mkdir path found")
	}
	if err := c.Cli.MkdirAll(ctx, args.path); err != nil {
		return fmt.Errorf("mkdir failed, err:%w", err)
	}
	return nil
}

func init() {
	register(NewMkdirCmd)
}
