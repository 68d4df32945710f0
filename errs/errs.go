package errs

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
)

// Kind classifies a webdav failure. Callers branch on the kind instead of
// matching error strings or concrete types.
type Kind int

const (
	KindProtocol Kind = iota
	KindNotFound
	KindAuthFailed
	KindPermissionDenied
	KindAlreadyExists
	KindLocked
	KindTimeout
	KindNetwork
	KindServer
	KindInvalidArgument
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindAuthFailed:
		return "auth_failed"
	case KindPermissionDenied:
		return "permission_denied"
	case KindAlreadyExists:
		return "already_exists"
	case KindLocked:
		return "locked"
	case KindTimeout:
		return "timeout"
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	case KindInvalidArgument:
		return "invalid_argument"
	default:
		return "protocol"
	}
}

// Error is the single failure type of the client. Kind discriminates, Status
// carries the originating http status when there is one, Cause the wrapped
// transport error.
type Error struct {
	Kind    Kind
	Path    string
	Status  int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	s := fmt.Sprintf("webdav: %s", msg)
	if e.Path != "" {
		s += fmt.Sprintf(", path:%s", e.Path)
	}
	if e.Status != 0 {
		s += fmt.Sprintf(", status:%d", e.Status)
	}
	if e.Cause != nil {
		s += fmt.Sprintf(", err:%v", e.Cause)
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func NotFound(path string) *Error {
	return &Error{Kind: KindNotFound, Path: path, Status: http.StatusNotFound, Message: "resource not found"}
}

func AuthFailed() *Error {
	return &Error{Kind: KindAuthFailed, Status: http.StatusUnauthorized, Message: "authentication failed"}
}

func PermissionDenied(path string) *Error {
	return &Error{Kind: KindPermissionDenied, Path: path, Status: http.StatusForbidden, Message: "permission denied"}
}

func AlreadyExists(path string) *Error {
	return &Error{Kind: KindAlreadyExists, Path: path, Status: http.StatusConflict, Message: "resource already exists"}
}

func Locked(path string) *Error {
	return &Error{Kind: KindLocked, Path: path, Status: http.StatusLocked, Message: "resource locked"}
}

func Timeout(cause error) *Error {
	return &Error{Kind: KindTimeout, Message: "request timeout", Cause: cause}
}

func Network(cause error) *Error {
	return &Error{Kind: KindNetwork, Message: "network error", Cause: cause}
}

func Server(status int) *Error {
	return &Error{Kind: KindServer, Status: status, Message: "server error"}
}

func InvalidArgument(msg string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: msg}
}

func Protocol(msg string, status int, cause error) *Error {
	return &Error{Kind: KindProtocol, Status: status, Message: msg, Cause: cause}
}

// FromStatus maps a non-2xx http status to a typed error.
func FromStatus(status int, path string) *Error {
	switch status {
	case http.StatusUnauthorized:
		return AuthFailed()
	case http.StatusForbidden:
		return PermissionDenied(path)
	case http.StatusNotFound:
		return NotFound(path)
	case http.StatusConflict, http.StatusPreconditionFailed:
		e := AlreadyExists(path)
		e.Status = status
		return e
	case http.StatusLocked:
		return Locked(path)
	default:
		e := Server(status)
		e.Path = path
		return e
	}
}

// FromTransport maps a transport failure to a typed error. Already typed
// errors pass through unchanged, cancellation and deadline expiry become
// KindTimeout, anything else KindNetwork.
func FromTransport(err error, path string) *Error {
	var te *Error
	if errors.As(err, &te) {
		return te
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		e := Timeout(err)
		e.Path = path
		return e
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		e := Timeout(err)
		e.Path = path
		return e
	}
	if errors.Is(err, os.ErrDeadlineExceeded) {
		e := Timeout(err)
		e.Path = path
		return e
	}
	e := Network(err)
	e.Path = path
	return e
}

// IsKind reports whether err or any error it wraps is a *Error of kind k.
func IsKind(err error, k Kind) bool {
	var te *Error
	if !errors.As(err, &te) {
		return false
	}
	return te.Kind == k
}

// StatusOf extracts the http status carried by err, 0 if none.
func StatusOf(err error) int {
	var te *Error
	if !errors.As(err, &te) {
		return 0
	}
	return te.Status
}
