package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/xxxsen/davfs/davclient"
)

type lsArgs struct {
	path      string
	hidden    bool
	recursive bool
}

func NewLsCmd(c *Context) *cobra.Command {
	args := &lsArgs{}
	ctx := context.Background()
	subc := &cobra.Command{
		Use:   "ls",
		Short: "List a remote directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return onRunLs(ctx, c, args)
		},
	}
	subc.PersistentFlags().StringVarP(&args.path, "path", "p", "/", "remote directory")
	subc.PersistentFlags().BoolVarP(&args.hidden, "all", "a", false, "include hidden entries")
	subc.PersistentFlags().BoolVarP(&args.recursive, "recursive", "R", false, "list the whole subtree")
	return subc
}

func onRunLs(ctx context.Context, c *Context, args *lsArgs) error {
	opts := make([]davclient.ReadDirOption, 0, 2)
	if args.hidden {
		opts = append(opts, davclient.WithHidden())
	}
	if args.recursive {
		opts = append(opts, davclient.WithRecursive())
	}
	ents, err := c.Cli.ReadDir(ctx, args.path, opts...)
	if err != nil {
		return fmt.Errorf("list dir failed, err:%w", err)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, ent := range ents {
		kind := "-"
		size := humanize.IBytes(uint64(ent.Size))
		if ent.IsDir {
			kind = "d"
			size = "-"
		}
		mtime := "-"
		if !ent.Mtime.IsZero() {
			mtime = ent.Mtime.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", kind, size, mtime, ent.Path)
	}
	return w.Flush()
}

func init() {
	register(NewLsCmd)
}
