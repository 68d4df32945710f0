package fsapi

import (
	"net/http"
	"time"

	"github.com/xxxsen/davfs/cacheapi"
	"github.com/xxxsen/davfs/davclient"
	"github.com/xxxsen/davfs/errs"
	"github.com/xxxsen/davfs/server/model"
)

type FsHandler struct {
	cli   davclient.IClient
	statc cacheapi.ICache[string, *davclient.Entry]
}

func NewFsHandler(cli davclient.IClient, statc cacheapi.ICache[string, *davclient.Entry]) *FsHandler {
	return &FsHandler{
		cli:   cli,
		statc: statc,
	}
}

// httpStatusOf maps a client error to the status the gateway replies with.
func httpStatusOf(err error) int {
	switch {
	case errs.IsKind(err, errs.KindNotFound):
		return http.StatusNotFound
	case errs.IsKind(err, errs.KindAlreadyExists):
		return http.StatusConflict
	case errs.IsKind(err, errs.KindInvalidArgument):
		return http.StatusBadRequest
	case errs.IsKind(err, errs.KindAuthFailed):
		return http.StatusUnauthorized
	case errs.IsKind(err, errs.KindPermissionDenied):
		return http.StatusForbidden
	case errs.IsKind(err, errs.KindLocked):
		return http.StatusLocked
	case errs.IsKind(err, errs.KindTimeout):
		return http.StatusGatewayTimeout
	case errs.IsKind(err, errs.KindNetwork), errs.IsKind(err, errs.KindServer):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func toEntryItem(ent *davclient.Entry) *model.EntryItem {
	return &model.EntryItem{
		Name:        ent.Name,
		Path:        ent.Path,
		Size:        ent.Size,
		IsDir:       ent.IsDir,
		Ctime:       toUnixMilli(ent.Ctime),
		Mtime:       toUnixMilli(ent.Mtime),
		ContentType: ent.ContentType,
		ETag:        ent.ETag,
	}
}

func toUnixMilli(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
