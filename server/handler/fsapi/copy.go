package fsapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/webapi/proxyutil"
	"github.com/xxxsen/davfs/server/model"
)

func (h *FsHandler) Copy(c *gin.Context) {
	ctx := c.Request.Context()
	req := &model.CopyRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		proxyutil.FailJson(c, http.StatusBadRequest, fmt.Errorf("bind copy request failed, err:%w", err))
		return
	}
	if err := h.cli.Copy(ctx, req.Src, req.Dst, req.Overwrite); err != nil {
		proxyutil.FailJson(c, httpStatusOf(err), fmt.Errorf("copy failed, src:%s, dst:%s, err:%w", req.Src, req.Dst, err))
		return
	}
	h.dropStatEntry(ctx, req.Dst)
	proxyutil.SuccessJson(c, gin.H{})
}
