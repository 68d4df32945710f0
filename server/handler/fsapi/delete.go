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

func (h *FsHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	req := &model.DeleteRequest{}
	if err := c.ShouldBindJSON(req); err != nil {
		proxyutil.FailJson(c, http.StatusBadRequest, fmt.Errorf("bind delete request failed, err:%w", err))
		return
	}
	var err error
	if req.Recursive {
		err = h.cli.RemoveAll(ctx, req.Path)
	} else {
		err = h.cli.Remove(ctx, req.Path)
	}
	if err != nil {
		proxyutil.FailJson(c, httpStatusOf(err), fmt.Errorf("delete failed, path:%s, err:%w", req.Path, err))
		return
	}
	h.dropStatEntry(ctx, req.Path)
	logutil.GetLogger(ctx).Info("delete entry", zap.String("path", req.Path), zap.Bool("recursive", req.Recursive))
	proxyutil.SuccessJson(c, gin.H{})
}
