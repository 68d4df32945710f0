package davclient

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/xxxsen/davfs/errs"
)

type fileSystemWrap struct {
	ctx context.Context
	cli IClient
}

// ToFileSystem exposes the remote tree as an fs.FS, usable with http.FS and
// the fs helpers. Paths are rebuilt to start with "/".
func ToFileSystem(ctx context.Context, cli IClient) fs.FS {
	return &fileSystemWrap{ctx: ctx, cli: cli}
}

func rebuildFsName(name string) string {
	// fs names are relative, "." is the root; dot-prefixed entries keep
	// their name
	if name == "." {
		return "/"
	}
	name = strings.TrimPrefix(name, "./")
	if !strings.HasPrefix(name, "/") {
		name = "/" + name
	}
	return name
}

func (f *fileSystemWrap) Open(name string) (fs.File, error) {
	name = rebuildFsName(name)
	ent, err := f.cli.Stat(f.ctx, name)
	if err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
		}
		return nil, err
	}
	if ent.IsDir {
		return newFsDirEntry(f.ctx, f.cli, name, ent), nil
	}
	return newFsFileEntry(f.ctx, f.cli, name, ent), nil
}

func (f *fileSystemWrap) ReadDir(name string) ([]fs.DirEntry, error) {
	return internalReadDir(f.ctx, f.cli, rebuildFsName(name))
}

func internalReadDir(ctx context.Context, cli IClient, dir string) ([]fs.DirEntry, error) {
	ents, err := cli.ReadDir(ctx, dir, WithHidden())
	if err != nil {
		return nil, err
	}
	rs := make([]fs.DirEntry, 0, len(ents))
	for _, ent := range ents {
		if ent.IsDir {
			rs = append(rs, newFsDirEntry(ctx, cli, ent.Path, ent))
			continue
		}
		rs = append(rs, newFsFileEntry(ctx, cli, ent.Path, ent))
	}
	return rs, nil
}

// entryInfo bridges Entry to fs.FileInfo.
type entryInfo struct {
	ent *Entry
}

func (e *entryInfo) Name() string {
	return e.ent.Name
}

func (e *entryInfo) Size() int64 {
	return e.ent.Size
}

func (e *entryInfo) Mode() fs.FileMode {
	if e.ent.IsDir {
		return fs.ModeDir | 0755
	}
	return 0644
}

func (e *entryInfo) ModTime() time.Time {
	return e.ent.Mtime
}

func (e *entryInfo) IsDir() bool {
	return e.ent.IsDir
}

func (e *entryInfo) Sys() interface{} {
	return nil
}

type fsFileEntry struct {
	stream         io.ReadCloser
	initErr        error
	streamInitOnce sync.Once
	ctx            context.Context
	cli            IClient
	fullName       string
	ent            *Entry
}

func newFsFileEntry(ctx context.Context, cli IClient, fullName string, ent *Entry) *fsFileEntry {
	return &fsFileEntry{ctx: ctx, cli: cli, fullName: fullName, ent: ent}
}

func (f *fsFileEntry) tryInitStream() {
	f.streamInitOnce.Do(func() {
		f.stream, f.initErr = f.cli.ReadStream(f.ctx, f.fullName)
	})
}

func (f *fsFileEntry) Read(p []byte) (int, error) {
	f.tryInitStream()
	if f.initErr != nil {
		return 0, f.initErr
	}
	return f.stream.Read(p)
}

func (f *fsFileEntry) Close() error {
	if f.stream == nil {
		return nil
	}
	return f.stream.Close()
}

func (f *fsFileEntry) Stat() (fs.FileInfo, error) {
	return &entryInfo{ent: f.ent}, nil
}

func (f *fsFileEntry) Name() string {
	return f.ent.Name
}

func (f *fsFileEntry) IsDir() bool {
	return false
}

func (f *fsFileEntry) Type() fs.FileMode {
	return 0
}

func (f *fsFileEntry) Info() (fs.FileInfo, error) {
	return f.Stat()
}

type fsDirEntry struct {
	ctx      context.Context
	cli      IClient
	fullName string
	ent      *Entry
	ents     []fs.DirEntry
	listed   bool
	offset   int
}

func newFsDirEntry(ctx context.Context, cli IClient, fullName string, ent *Entry) *fsDirEntry {
	return &fsDirEntry{ctx: ctx, cli: cli, fullName: fullName, ent: ent}
}

// ReadDir lists once and pages through the snapshot, successive positive-n
// calls advance until io.EOF.
func (f *fsDirEntry) ReadDir(n int) ([]fs.DirEntry, error) {
	if !f.listed {
		ents, err := internalReadDir(f.ctx, f.cli, f.fullName)
		if err != nil {
			return nil, err
		}
		f.ents = ents
		f.listed = true
	}
	rest := f.ents[f.offset:]
	if n <= 0 {
		f.offset = len(f.ents)
		return rest, nil
	}
	if len(rest) == 0 {
		return nil, io.EOF
	}
	if len(rest) > n {
		rest = rest[:n]
	}
	f.offset += len(rest)
	return rest, nil
}

func (f *fsDirEntry) Read(p []byte) (int, error) {
	return 0, fmt.Errorf("cant read on dir")
}

func (f *fsDirEntry) Close() error {
	return nil
}

func (f *fsDirEntry) Stat() (fs.FileInfo, error) {
	return &entryInfo{ent: f.ent}, nil
}

func (f *fsDirEntry) Name() string {
	return f.ent.Name
}

func (f *fsDirEntry) IsDir() bool {
	return true
}

func (f *fsDirEntry) Type() fs.FileMode {
	return fs.ModeDir
}

func (f *fsDirEntry) Info() (fs.FileInfo, error) {
	return f.Stat()
}
