package fsapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/webapi/proxyutil"
	"github.com/xxxsen/davfs/davclient"
	"github.com/xxxsen/davfs/server/model"
)

func (h *FsHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	req := &model.ListRequest{}
	if err := c.ShouldBindQuery(req); err != nil {
		proxyutil.FailJson(c, http.StatusBadRequest, fmt.Errorf("bind list request failed, err:%w", err))
		return
	}
	opts := make([]davclient.ReadDirOption, 0, 2)
	if req.Recursive {
		opts = append(opts, davclient.WithRecursive())
	}
	if req.Hidden {
		opts = append(opts, davclient.WithHidden())
	}
	ents, err := h.cli.ReadDir(ctx, req.Path, opts...)
	if err != nil {
		proxyutil.FailJson(c, httpStatusOf(err), fmt.Errorf("list dir failed, path:%s, err:%w", req.Path, err))
		return
	}
	items := make([]*model.EntryItem, 0, len(ents))
	for _, ent := range ents {
		items = append(items, toEntryItem(ent))
	}
	proxyutil.SuccessJson(c, &model.ListResponse{Items: items})
}
