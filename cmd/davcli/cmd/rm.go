package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type rmArgs struct {
	path      string
	recursive bool
}

func NewRmCmd(c *Context) *cobra.Command {
	args := &rmArgs{}
	ctx := context.Background()
	subc := &cobra.Command{
		Use:   "rm",
		Short: "Remove a remote entry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return onRunRm(ctx, c, args)
		},
	}
	subc.PersistentFlags().StringVarP(&args.path, "path", "p", "", "remote path")
	subc.PersistentFlags().BoolVarP(&args.recursive, "recursive", "r", false, "remove the whole subtree")
	return subc
}

func onRunRm(ctx context.Context, c *Context, args *rmArgs) error {
	if len(args.path) == 0 {
		return fmt.Errorf("no remove path found")
	}
	if args.recursive {
		if err := c.Cli.RemoveAll(ctx, args.path); err != nil {
			return fmt.Errorf("remove subtree failed, err:%w", err)
		}
		return nil
	}
	if err := c.Cli.Remove(ctx, args.path); err != nil {
		return fmt.Errorf("remove entry failed, err:%w", err)
	}
	return nil
}

func init() {
	register(NewRmCmd)
}
