package davclient

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/xxxsen/davfs/errs"
)

// Entry describes one remote filesystem entry. Mtime/Ctime stay zero when
// the server omits the matching property.
type Entry struct {
	Name        string
	Path        string
	Size        int64
	IsDir       bool
	Mtime       time.Time
	Ctime       time.Time
	ContentType string
	ETag        string
}

func (e *Entry) IsFile() bool {
	return !e.IsDir
}

type writeOptions struct {
	overwrite   bool
	contentType string
}

type WriteOption func(o *writeOptions)

// WithOverwrite(false) makes WriteFile fail with an already-exists error
// when the target is present. The existence probe is a separate request, a
// concurrent writer can still slip in between.
func WithOverwrite(v bool) WriteOption {
	return func(o *writeOptions) {
		o.overwrite = v
	}
}

func WithContentType(ct string) WriteOption {
	return func(o *writeOptions) {
		o.contentType = ct
	}
}

type readDirOptions struct {
	recursive     bool
	includeHidden bool
}

type ReadDirOption func(o *readDirOptions)

// WithRecursive lists the full subtree (Depth: infinity) instead of the
// direct children.
func WithRecursive() ReadDirOption {
	return func(o *readDirOptions) {
		o.recursive = true
	}
}

// WithHidden keeps dot-prefixed names in listings.
func WithHidden() ReadDirOption {
	return func(o *readDirOptions) {
		o.includeHidden = true
	}
}

type copyOptions struct {
	depth string
}

type CopyOption func(o *copyOptions)

// WithShallowCopy copies only the collection itself (Depth: 0) instead of
// the full subtree.
func WithShallowCopy() CopyOption {
	return func(o *copyOptions) {
		o.depth = "0"
	}
}

// IClient is the filesystem shaped view of one webdav endpoint. All
// composite operations walk sequentially, the first failing step aborts the
// walk and surfaces its error.
type IClient interface {
	Connect(ctx context.Context) error
	Stat(ctx context.Context, path string) (*Entry, error)
	Exists(ctx context.Context, path string) (bool, error)
	ReadFile(ctx context.Context, path string) ([]byte, error)
	ReadStream(ctx context.Context, path string) (io.ReadCloser, error)
	WriteFile(ctx context.Context, path string, data []byte, opts ...WriteOption) error
	WriteStream(ctx context.Context, path string) (io.WriteCloser, error)
	AppendFile(ctx context.Context, path string, data []byte) error
	DeleteFile(ctx context.Context, path string) error
	Mkdir(ctx context.Context, dir string) error
	MkdirAll(ctx context.Context, dir string) error
	Remove(ctx context.Context, path string) error
	RemoveAll(ctx context.Context, path string) error
	ReadDir(ctx context.Context, dir string, opts ...ReadDirOption) ([]*Entry, error)
	Copy(ctx context.Context, src, dst string, overwrite bool, opts ...CopyOption) error
	Move(ctx context.Context, src, dst string, overwrite bool) error
	Rename(ctx context.Context, path, newName string) error
	SetProps(ctx context.Context, path string, props map[string]string) error
}

// New builds a client for the given endpoint. The endpoint must be an
// absolute http(s) url, its path component is treated as the mount prefix of
// every request.
func New(endpoint string, opts ...Option) (IClient, error) {
	c := applyOpts(opts...)
	if len(endpoint) == 0 {
		return nil, errs.InvalidArgument("no endpoint found")
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errs.InvalidArgument("endpoint is not an absolute url")
	}
	c.endpoint = endpoint
	cli := newDefaultClient(c, u)
	if !c.enableCache {
		return cli, nil
	}
	return newCacheClient(cli, c), nil
}
