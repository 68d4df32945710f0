package cmd

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

type statArgs struct {
	path string
}

func NewStatCmd(c *Context) *cobra.Command {
	args := &statArgs{}
	ctx := context.Background()
	subc := &cobra.Command{
		Use:   "stat",
		Short: "Show metadata of a remote entry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return onRunStat(ctx, c, args)
		},
	}
	subc.PersistentFlags().StringVarP(&args.path, "path", "p", "", "remote path")
	return subc
}

func onRunStat(ctx context.Context, c *Context, args *statArgs) error {
	if len(args.path) == 0 {
		return fmt.Errorf("no stat path found")
	}
	ent, err := c.Cli.Stat(ctx, args.path)
	if err != nil {
		return fmt.Errorf("stat failed, err:%w", err)
	}
	fmt.Printf("name: %s\n", ent.Name)
	fmt.Printf("path: %s\n", ent.Path)
	fmt.Printf("is_dir: %v\n", ent.IsDir)
	if !ent.IsDir {
		fmt.Printf("size: %s (%d)\n", humanize.IBytes(uint64(ent.Size)), ent.Size)
	}
	if !ent.Mtime.IsZero() {
		fmt.Printf("mtime: %s\n", ent.Mtime.Format("2006-01-02 15:04:05"))
	}
	if !ent.Ctime.IsZero() {
		fmt.Printf("ctime: %s\n", ent.Ctime.Format("2006-01-02 15:04:05"))
	}
	if len(ent.ContentType) != 0 {
		fmt.Printf("content_type: %s\n", ent.ContentType)
	}
	if len(ent.ETag) != 0 {
		fmt.Printf("etag: %s\n", ent.ETag)
	}
	return nil
}

func init() {
	register(NewStatCmd)
}
