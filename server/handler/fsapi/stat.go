package fsapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/webapi/proxyutil"
	"github.com/xxxsen/davfs/cacheapi"
	"github.com/xxxsen/davfs/davclient"
	"github.com/xxxsen/davfs/errs"
	"github.com/xxxsen/davfs/server/model"
)

func (h *FsHandler) Stat(c *gin.Context) {
	ctx := c.Request.Context()
	req := &model.StatRequest{}
	if err := c.ShouldBindQuery(req); err != nil {
		proxyutil.FailJson(c, http.StatusBadRequest, fmt.Errorf("bind stat request failed, err:%w", err))
		return
	}
	ent, err := h.statEntry(ctx, req.Path)
	if err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			proxyutil.SuccessJson(c, &model.StatResponse{Exist: false})
			return
		}
		proxyutil.FailJson(c, httpStatusOf(err), fmt.Errorf("stat failed, path:%s, err:%w", req.Path, err))
		return
	}
	proxyutil.SuccessJson(c, &model.StatResponse{
		Exist: true,
		Item:  toEntryItem(ent),
	})
}

func (h *FsHandler) statEntry(ctx context.Context, p string) (*davclient.Entry, error) {
	if h.statc == nil {
		return h.cli.Stat(ctx, p)
	}
	return cacheapi.GetOrLoad(ctx, h.statc, p, func(ctx context.Context, k string) (*davclient.Entry, error) {
		return h.cli.Stat(ctx, k)
	})
}

func (h *FsHandler) dropStatEntry(ctx context.Context, paths ...string) {
	if h.statc == nil {
		return
	}
	for _, p := range paths {
		_ = h.statc.Del(ctx, p)
	}
}
