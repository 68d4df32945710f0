package davclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/xxxsen/davfs/errs"
	"github.com/xxxsen/davfs/utils"
)

var defaultHttpClient = &http.Client{
	Transport: &http.Transport{
		IdleConnTimeout:     20 * time.Second,
		MaxIdleConns:        5,
		MaxIdleConnsPerHost: 2,
	},
}

// transport issues one http request per call, resolves the target url
// against the configured endpoint, merges default and per-call headers with
// the auth header injected last, and converts every failure into a typed
// error. No retries.
type transport struct {
	c  *config
	hc *http.Client
}

type response struct {
	status int
	header http.Header
	body   io.ReadCloser
}

func newTransport(c *config) *transport {
	hc := c.client
	if hc == nil {
		hc = defaultHttpClient
	}
	return &transport{c: c, hc: hc}
}

func (t *transport) applyAuth(req *http.Request) {
	if len(t.c.token) != 0 {
		req.Header.Set("Authorization", "Bearer "+t.c.token)
		return
	}
	if len(t.c.username) != 0 {
		req.SetBasicAuth(t.c.username, t.c.password)
	}
}

func (t *transport) buildRequest(ctx context.Context, method, p string, hdr map[string]string, body io.Reader) (*http.Request, error) {
	target := utils.JoinURL(t.c.endpoint, p)
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, errs.Protocol("build request failed", 0, err)
	}
	for k, v := range t.c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	t.applyAuth(req)
	return req, nil
}

// do runs one request bounded by the configured timeout, which covers the
// full exchange including the body read. The response body is fully buffered.
func (t *transport) do(ctx context.Context, method, p string, hdr map[string]string, body io.Reader) (*response, error) {
	rctx, cancel := context.WithTimeout(ctx, t.c.timeout)
	defer cancel()
	req, err := t.buildRequest(rctx, method, p, hdr, body)
	if err != nil {
		return nil, err
	}
	rsp, err := t.hc.Do(req)
	if err != nil {
		return nil, errs.FromTransport(err, p)
	}
	defer rsp.Body.Close()
	if rsp.StatusCode >= http.StatusBadRequest {
		_, _ = io.Copy(io.Discard, rsp.Body)
		return nil, errs.FromStatus(rsp.StatusCode, p)
	}
	raw, err := io.ReadAll(rsp.Body)
	if err != nil {
		return nil, errs.FromTransport(err, p)
	}
	return &response{status: rsp.StatusCode, header: rsp.Header, body: io.NopCloser(bytes.NewReader(raw))}, nil
}

func (t *transport) doRead(ctx context.Context, method, p string, hdr map[string]string, body io.Reader) ([]byte, error) {
	rsp, err := t.do(ctx, method, p, hdr, body)
	if err != nil {
		return nil, err
	}
	defer rsp.body.Close()
	return io.ReadAll(rsp.body)
}

func (t *transport) doDiscard(ctx context.Context, method, p string, hdr map[string]string, body io.Reader) (int, error) {
	rsp, err := t.do(ctx, method, p, hdr, body)
	if err != nil {
		return 0, err
	}
	_ = rsp.body.Close()
	return rsp.status, nil
}

// doStream runs one request without the transport timeout, so a large body
// can be consumed at the caller's pace. Cancellation comes from ctx, failure
// mapping matches do.
func (t *transport) doStream(ctx context.Context, method, p string, hdr map[string]string) (*response, error) {
	req, err := t.buildRequest(ctx, method, p, hdr, nil)
	if err != nil {
		return nil, err
	}
	rsp, err := t.hc.Do(req)
	if err != nil {
		return nil, errs.FromTransport(err, p)
	}
	if rsp.StatusCode >= http.StatusBadRequest {
		_, _ = io.Copy(io.Discard, rsp.Body)
		_ = rsp.Body.Close()
		return nil, errs.FromStatus(rsp.StatusCode, p)
	}
	return &response{status: rsp.StatusCode, header: rsp.Header, body: rsp.Body}, nil
}
