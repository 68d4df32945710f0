package fsapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/webapi/proxyutil"
	"github.com/xxxsen/davfs/server/model"
)

func (h *FsHandler) Mkdir(c *gin.Context) {
	ctx := c.Request.Context()
	req := &model.MkdirRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		proxyutil.FailJson(c, http.StatusBadRequest, fmt.Errorf("bind mkdir request failed, err:%w", err))
		return
	}
	if err := h.cli.MkdirAll(ctx, req.Path); err != nil {
		proxyutil.FailJson(c, httpStatusOf(err), fmt.Errorf("mkdir failed, path:%s, err:%w", req.Path, err))
		return
	}
	h.dropStatEntry(ctx, req.Path)
	proxyutil.SuccessJson(c, gin.H{})
}
