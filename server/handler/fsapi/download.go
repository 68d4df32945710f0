package fsapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/webapi/proxyutil"
	"github.com/xxxsen/davfs/server/httpkit"
)

func (h *FsHandler) Download(c *gin.Context) {
	ctx := c.Request.Context()
	path := c.Param("path")
	ent, err := h.statEntry(ctx, path)
	if err != nil {
		proxyutil.FailJson(c, httpStatusOf(err), fmt.Errorf("stat download target failed, path:%s, err:%w", path, err))
		return
	}
	if ent.IsDir {
		proxyutil.FailJson(c, http.StatusBadRequest, fmt.Errorf("cant download a directory, path:%s", path))
		return
	}
	stream, err := h.cli.ReadStream(ctx, path)
	if err != nil {
		proxyutil.FailJson(c, httpStatusOf(err), fmt.Errorf("open download stream failed, path:%s, err:%w", path, err))
		return
	}
	defer stream.Close()
	httpkit.SetDefaultDownloadHeader(c, ent)
	c.DataFromReader(http.StatusOK, ent.Size, c.Writer.Header().Get("Content-Type"), stream, nil)
}
