package davclient

import (
	"bytes"
	"context"

	"github.com/xxxsen/davfs/errs"
)

type commitFunc func(ctx context.Context, path string, data []byte, opts ...WriteOption) error

// writeStream buffers writes and commits the whole body as one put on Close.
// WebDAV has no partial-write verb, so the upload happens atomically at
// close time.
type writeStream struct {
	ctx    context.Context
	path   string
	buf    bytes.Buffer
	commit commitFunc
	closed bool
}

func newWriteStream(ctx context.Context, path string, commit commitFunc) *writeStream {
	return &writeStream{ctx: ctx, path: path, commit: commit}
}

func (w *writeStream) Write(p []byte) (int, error) {
	if w.closed {
		return 0, errs.InvalidArgument("write on closed stream")
	}
	return w.buf.Write(p)
}

func (w *writeStream) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.commit(w.ctx, w.path, w.buf.Bytes())
}
