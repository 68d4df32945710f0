package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type mvArgs struct {
	src       string
	dst       string
	overwrite bool
}

func NewMvCmd(c *Context) *cobra.Command {
	args := &mvArgs{}
	ctx := context.Background()
	subc := &cobra.Command{
		Use:   "mv",
		Short: "Move a remote entry server side",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return onRunMv(ctx, c, args)
		},
	}
	subc.PersistentFlags().StringVarP(&args.src, "src", "s", "", "source path")
	subc.PersistentFlags().StringVarP(&args.dst, "dst", "d", "", "target path")
	subc.PersistentFlags().BoolVarP(&args.overwrite, "force", "f", false, "overwrite existing target")
	return subc
}

func onRunMv(ctx context.Context, c *Context, args *mvArgs) error {
	if len(args.src) == 0 || len(args.dst) == 0 {
		return fmt.Errorf("both src and dst are required")
	}
	if err := c.Cli.Move(ctx, args.src, args.dst, args.overwrite); err != nil {
		return fmt.Errorf("move failed, err:%w", err)
	}
	return nil
}

func init() {
	register(NewMvCmd)
}
