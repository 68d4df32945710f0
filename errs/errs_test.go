package errs

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromStatus(t *testing.T) {
	assert.Equal(t, KindAuthFailed, FromStatus(http.StatusUnauthorized, "/a").Kind)
	assert.Equal(t, KindPermissionDenied, FromStatus(http.StatusForbidden, "/a").Kind)
	assert.Equal(t, KindNotFound, FromStatus(http.StatusNotFound, "/a").Kind)
	assert.Equal(t, KindAlreadyExists, FromStatus(http.StatusConflict, "/a").Kind)
	assert.Equal(t, KindAlreadyExists, FromStatus(http.StatusPreconditionFailed, "/a").Kind)
	assert.Equal(t, KindLocked, FromStatus(http.StatusLocked, "/a").Kind)
	assert.Equal(t, KindServer, FromStatus(http.StatusInternalServerError, "/a").Kind)
	assert.Equal(t, http.StatusBadGateway, FromStatus(http.StatusBadGateway, "/a").Status)
}

func TestConstructorStatus(t *testing.T) {
	// locally built errors carry the matching http status
	assert.Equal(t, http.StatusConflict, AlreadyExists("/x").Status)
	assert.Equal(t, http.StatusUnauthorized, AuthFailed().Status)
	assert.Equal(t, http.StatusLocked, Locked("/x").Status)
	// the precondition-failed origin survives FromStatus
	assert.Equal(t, http.StatusPreconditionFailed, FromStatus(http.StatusPreconditionFailed, "/a").Status)
}

func TestFromTransport(t *testing.T) {
	assert.Equal(t, KindTimeout, FromTransport(context.DeadlineExceeded, "/a").Kind)
	assert.Equal(t, KindNetwork, FromTransport(fmt.Errorf("conn refused"), "/a").Kind)
	// already typed errors pass through, even wrapped
	orig := NotFound("/b")
	wrapped := fmt.Errorf("stat failed: %w", orig)
	assert.Equal(t, orig, FromTransport(wrapped, "/a"))
}

func TestIsKindThroughWrap(t *testing.T) {
	err := fmt.Errorf("read dir failed: %w", NotFound("/x"))
	assert.True(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(err, KindTimeout))
	assert.Equal(t, http.StatusNotFound, StatusOf(err))
	assert.False(t, IsKind(fmt.Errorf("plain"), KindNotFound))
	assert.Equal(t, 0, StatusOf(fmt.Errorf("plain")))
}

func TestErrorMessage(t *testing.T) {
	e := NotFound("/data/file.txt")
	assert.Contains(t, e.Error(), "path:/data/file.txt")
	assert.Contains(t, e.Error(), "status:404")
}
