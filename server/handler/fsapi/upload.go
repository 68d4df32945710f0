package fsapi

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi/proxyutil"
	"github.com/xxxsen/davfs/davclient"
	"github.com/xxxsen/davfs/server/model"
	"go.uber.org/zap"
)

func (h *FsHandler) Upload(c *gin.Context) {
	ctx := c.Request.Context()
	path := c.Param("path")
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		proxyutil.FailJson(c, http.StatusBadRequest, fmt.Errorf("read upload body failed, err:%w", err))
		return
	}
	opts := make([]davclient.WriteOption, 0, 1)
	if ct := c.ContentType(); ct != "" {
		opts = append(opts, davclient.WithContentType(ct))
	}
	if err := h.cli.WriteFile(ctx, path, data, opts...); err != nil {
		proxyutil.FailJson(c, httpStatusOf(err), fmt.Errorf("upload file failed, path:%s, err:%w", path, err))
		return
	}
	h.dropStatEntry(ctx, path)
	logutil.GetLogger(ctx).Info("upload file", zap.String("path", path), zap.Int("size", len(data)))
	proxyutil.SuccessJson(c, &model.UploadResponse{
		Path: path,
		Size: int64(len(data)),
	})
}
