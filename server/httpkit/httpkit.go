package httpkit

import (
	"github.com/gin-gonic/gin"
	"github.com/xxxsen/davfs/davclient"
	"github.com/xxxsen/davfs/utils"
)

func SetDefaultDownloadHeader(c *gin.Context, ent *davclient.Entry) {
	ct := ent.ContentType
	if ct == "" {
		ct = utils.ContentTypeFor(ent.Name)
	}
	c.Writer.Header().Set("Content-Type", ct)
	c.Writer.Header().Set("Cache-Control", "public, max-age=604800")
	if ent.ETag != "" {
		c.Writer.Header().Set("ETag", ent.ETag)
	}
}
