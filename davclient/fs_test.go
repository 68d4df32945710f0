package davclient

import (
	"context"
	"io"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFS(t *testing.T) (IClient, fs.FS) {
	cli, _ := newTestClient(t)
	ctx := context.Background()
	require.NoError(t, cli.Mkdir(ctx, "/docs"))
	require.NoError(t, cli.WriteFile(ctx, "/docs/readme.txt", []byte("hello fs")))
	require.NoError(t, cli.WriteFile(ctx, "/top.txt", []byte("top")))
	return cli, ToFileSystem(ctx, cli)
}

func TestFsReadFile(t *testing.T) {
	_, fsys := newTestFS(t)
	data, err := fs.ReadFile(fsys, "docs/readme.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello fs", string(data))
}

func TestFsOpenMissing(t *testing.T) {
	_, fsys := newTestFS(t)
	_, err := fsys.Open("docs/nope.txt")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFsReadDir(t *testing.T) {
	_, fsys := newTestFS(t)
	ents, err := fs.ReadDir(fsys, "docs")
	require.NoError(t, err)
	require.Len(t, ents, 1)
	assert.Equal(t, "readme.txt", ents[0].Name())
	assert.False(t, ents[0].IsDir())
	info, err := ents[0].Info()
	require.NoError(t, err)
	assert.Equal(t, int64(len("hello fs")), info.Size())
}

func TestFsStatAndRead(t *testing.T) {
	_, fsys := newTestFS(t)
	f, err := fsys.Open("top.txt")
	require.NoError(t, err)
	defer f.Close()
	info, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, "top.txt", info.Name())
	assert.False(t, info.IsDir())
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "top", string(data))
}

func TestFsOpenHidden(t *testing.T) {
	cli, _ := newTestClient(t)
	ctx := context.Background()
	require.NoError(t, cli.WriteFile(ctx, "/.hidden", []byte("dot")))
	fsys := ToFileSystem(ctx, cli)
	data, err := fs.ReadFile(fsys, ".hidden")
	require.NoError(t, err)
	assert.Equal(t, "dot", string(data))
}

func TestFsDirPagination(t *testing.T) {
	cli, _ := newTestClient(t)
	ctx := context.Background()
	require.NoError(t, cli.Mkdir(ctx, "/page"))
	require.NoError(t, cli.WriteFile(ctx, "/page/a", []byte("a")))
	require.NoError(t, cli.WriteFile(ctx, "/page/b", []byte("b")))
	require.NoError(t, cli.WriteFile(ctx, "/page/c", []byte("c")))
	fsys := ToFileSystem(ctx, cli)
	f, err := fsys.Open("page")
	require.NoError(t, err)
	defer f.Close()
	dir, ok := f.(fs.ReadDirFile)
	require.True(t, ok)

	seen := make(map[string]bool)
	first, err := dir.ReadDir(2)
	require.NoError(t, err)
	require.Len(t, first, 2)
	for _, ent := range first {
		seen[ent.Name()] = true
	}
	second, err := dir.ReadDir(2)
	require.NoError(t, err)
	require.Len(t, second, 1)
	seen[second[0].Name()] = true
	assert.Len(t, seen, 3)

	_, err = dir.ReadDir(2)
	assert.ErrorIs(t, err, io.EOF)
}

func TestFsOpenDir(t *testing.T) {
	_, fsys := newTestFS(t)
	f, err := fsys.Open("docs")
	require.NoError(t, err)
	defer f.Close()
	info, err := f.Stat()
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	dir, ok := f.(fs.ReadDirFile)
	require.True(t, ok)
	ents, err := dir.ReadDir(-1)
	require.NoError(t, err)
	assert.Len(t, ents, 1)
	_, err = f.Read(make([]byte, 1))
	assert.Error(t, err)
}
