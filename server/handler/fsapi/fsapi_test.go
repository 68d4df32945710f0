package fsapi

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/davfs/davclient"
	"github.com/xxxsen/davfs/errs"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeClient struct {
	davclient.IClient
	entries   map[string]*davclient.Entry
	content   map[string][]byte
	listing   map[string][]*davclient.Entry
	lastWrite string
	lastData  []byte
	removed   string
	recursive bool
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		entries: make(map[string]*davclient.Entry),
		content: make(map[string][]byte),
		listing: make(map[string][]*davclient.Entry),
	}
}

func (f *fakeClient) Stat(ctx context.Context, p string) (*davclient.Entry, error) {
	ent, ok := f.entries[p]
	if !ok {
		return nil, errs.NotFound(p)
	}
	return ent, nil
}

func (f *fakeClient) ReadDir(ctx context.Context, dir string, opts ...davclient.ReadDirOption) ([]*davclient.Entry, error) {
	ents, ok := f.listing[dir]
	if !ok {
		return nil, errs.NotFound(dir)
	}
	return ents, nil
}

func (f *fakeClient) ReadStream(ctx context.Context, p string) (io.ReadCloser, error) {
	data, ok := f.content[p]
	if !ok {
		return nil, errs.NotFound(p)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeClient) WriteFile(ctx context.Context, p string, data []byte, opts ...davclient.WriteOption) error {
	f.lastWrite = p
	f.lastData = data
	return nil
}

func (f *fakeClient) Remove(ctx context.Context, p string) error {
	f.removed = p
	f.recursive = false
	return nil
}

func (f *fakeClient) RemoveAll(ctx context.Context, p string) error {
	f.removed = p
	f.recursive = true
	return nil
}

func (f *fakeClient) Move(ctx context.Context, src, dst string, overwrite bool) error {
	if _, ok := f.entries[src]; !ok {
		return errs.NotFound(src)
	}
	return nil
}

func newTestCtx(method, target string, body io.Reader) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, body)
	return c, w
}

func TestDownload(t *testing.T) {
	fake := newFakeClient()
	fake.entries["/f.txt"] = &davclient.Entry{Name: "f.txt", Path: "/f.txt", Size: 5}
	fake.content["/f.txt"] = []byte("hello")
	h := NewFsHandler(fake, nil)

	c, w := newTestCtx(http.MethodGet, "/api/fs/download/f.txt", nil)
	c.Params = gin.Params{{Key: "path", Value: "/f.txt"}}
	h.Download(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("Content-Type"))
}

func TestDownloadDirRefused(t *testing.T) {
	fake := newFakeClient()
	fake.entries["/dir"] = &davclient.Entry{Name: "dir", Path: "/dir", IsDir: true}
	h := NewFsHandler(fake, nil)

	c, w := newTestCtx(http.MethodGet, "/api/fs/download/dir", nil)
	c.Params = gin.Params{{Key: "path", Value: "/dir"}}
	h.Download(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDownloadMissing(t *testing.T) {
	fake := newFakeClient()
	h := NewFsHandler(fake, nil)

	c, w := newTestCtx(http.MethodGet, "/api/fs/download/nope", nil)
	c.Params = gin.Params{{Key: "path", Value: "/nope"}}
	h.Download(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestList(t *testing.T) {
	fake := newFakeClient()
	fake.listing["/dir"] = []*davclient.Entry{
		{Name: "a.txt", Path: "/dir/a.txt", Size: 1},
		{Name: "sub", Path: "/dir/sub", IsDir: true},
	}
	h := NewFsHandler(fake, nil)

	c, w := newTestCtx(http.MethodGet, "/api/fs/list?path=/dir", nil)
	h.List(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "a.txt")
	assert.Contains(t, w.Body.String(), "sub")
}

func TestListBadRequest(t *testing.T) {
	fake := newFakeClient()
	h := NewFsHandler(fake, nil)
	c, w := newTestCtx(http.MethodGet, "/api/fs/list", nil)
	h.List(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatMissingReportsNotExist(t *testing.T) {
	fake := newFakeClient()
	h := NewFsHandler(fake, nil)
	c, w := newTestCtx(http.MethodGet, "/api/fs/stat?path=/gone", nil)
	h.Stat(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "false")
}

func TestUpload(t *testing.T) {
	fake := newFakeClient()
	h := NewFsHandler(fake, nil)
	c, w := newTestCtx(http.MethodPut, "/api/fs/upload/up.txt", bytes.NewReader([]byte("payload")))
	c.Params = gin.Params{{Key: "path", Value: "/up.txt"}}
	h.Upload(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/up.txt", fake.lastWrite)
	assert.Equal(t, "payload", string(fake.lastData))
}

func TestDeleteRecursiveRouting(t *testing.T) {
	fake := newFakeClient()
	h := NewFsHandler(fake, nil)

	c, w := newTestCtx(http.MethodPost, "/api/fs/delete", bytes.NewReader([]byte(`{"path":"/d","recursive":true}`)))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Delete(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/d", fake.removed)
	assert.True(t, fake.recursive)

	c, w = newTestCtx(http.MethodPost, "/api/fs/delete", bytes.NewReader([]byte(`{"path":"/f"}`)))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Delete(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/f", fake.removed)
	assert.False(t, fake.recursive)
}

func TestMoveMissingSource(t *testing.T) {
	fake := newFakeClient()
	h := NewFsHandler(fake, nil)
	c, w := newTestCtx(http.MethodPost, "/api/fs/move", bytes.NewReader([]byte(`{"src":"/a","dst":"/b"}`)))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Move(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
