package fsapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi/proxyutil"
	"github.com/xxxsen/davfs/server/model"
	"go.uber.org/zap"
)

func (h *FsHandler) Move(c *gin.Context) {
	ctx := c.Request.Context()
	req := &model.MoveRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		proxyutil.FailJson(c, http.StatusBadRequest, fmt.Errorf("bind move request failed, err:%w", err))
		return
	}
	if err := h.cli.Move(ctx, req.Src, req.Dst, req.Overwrite); err != nil {
		proxyutil.FailJson(c, httpStatusOf(err), fmt.Errorf("move failed, src:%s, dst:%s, err:%w", req.Src, req.Dst, err))
		return
	}
	h.dropStatEntry(ctx, req.Src, req.Dst)
	logutil.GetLogger(ctx).Info("move entry", zap.String("src", req.Src), zap.String("dst", req.Dst))
	proxyutil.SuccessJson(c, gin.H{})
}
