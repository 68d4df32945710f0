package davclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/davfs/errs"
)

func newEchoTransport(t *testing.T, h http.HandlerFunc, opts ...Option) *transport {
	svr := httptest.NewServer(h)
	t.Cleanup(svr.Close)
	c := applyOpts(append([]Option{}, opts...)...)
	c.endpoint = svr.URL
	return newTransport(c)
}

func TestAuthTokenWinsOverBasic(t *testing.T) {
	var got string
	tr := newEchoTransport(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
	}, WithBasicAuth("user", "pass"), WithToken("sekrit"))
	_, err := tr.doDiscard(context.Background(), http.MethodGet, "/", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer sekrit", got)
}

func TestAuthBasic(t *testing.T) {
	var user, pass string
	var ok bool
	tr := newEchoTransport(t, func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok = r.BasicAuth()
	}, WithBasicAuth("alice", "wonder"))
	_, err := tr.doDiscard(context.Background(), http.MethodGet, "/", nil, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "alice", user)
	assert.Equal(t, "wonder", pass)
}

func TestHeaderMerge(t *testing.T) {
	var agent, depth string
	tr := newEchoTransport(t, func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
		depth = r.Header.Get("Depth")
	}, WithHeader("User-Agent", "davfs-test"))
	_, err := tr.doDiscard(context.Background(), "PROPFIND", "/x", map[string]string{"Depth": "0"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "davfs-test", agent)
	assert.Equal(t, "0", depth)
}

func TestStatusMapping(t *testing.T) {
	for status, kind := range map[int]errs.Kind{
		http.StatusUnauthorized: errs.KindAuthFailed,
		http.StatusForbidden:    errs.KindPermissionDenied,
		http.StatusNotFound:     errs.KindNotFound,
		http.StatusConflict:     errs.KindAlreadyExists,
		http.StatusLocked:       errs.KindLocked,
		http.StatusBadGateway:   errs.KindServer,
	} {
		tr := newEchoTransport(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})
		_, err := tr.doDiscard(context.Background(), http.MethodGet, "/f", nil, nil)
		assert.True(t, errs.IsKind(err, kind), "status:%d", status)
	}
}

func TestTimeout(t *testing.T) {
	tr := newEchoTransport(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}, WithTimeout(30*time.Millisecond))
	_, err := tr.doDiscard(context.Background(), http.MethodGet, "/slow", nil, nil)
	assert.True(t, errs.IsKind(err, errs.KindTimeout))
}

func TestNetworkFailure(t *testing.T) {
	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := applyOpts()
	c.endpoint = svr.URL
	svr.Close()
	tr := newTransport(c)
	_, err := tr.doDiscard(context.Background(), http.MethodGet, "/", nil, nil)
	assert.True(t, errs.IsKind(err, errs.KindNetwork))
}

func TestStreamNotBoundByTimeout(t *testing.T) {
	tr := newEchoTransport(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(120 * time.Millisecond)
		_, _ = w.Write([]byte("slow body"))
	}, WithTimeout(30*time.Millisecond))
	rsp, err := tr.doStream(context.Background(), http.MethodGet, "/slow", nil)
	require.NoError(t, err)
	defer rsp.body.Close()
	buf := make([]byte, 32)
	n, _ := rsp.body.Read(buf)
	assert.Equal(t, "slow body", string(buf[:n]))
}

func TestStreamCancelledByContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	tr := newEchoTransport(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	})
	_, err := tr.doStream(ctx, http.MethodGet, "/slow", nil)
	assert.True(t, errs.IsKind(err, errs.KindTimeout))
}
