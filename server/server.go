package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/xxxsen/common/webapi"
	"github.com/xxxsen/common/webapi/auth"
	commonmw "github.com/xxxsen/common/webapi/middleware"
	"github.com/xxxsen/davfs/cacheapi"
	cachewrap "github.com/xxxsen/davfs/cacheapi/adaptor"
	"github.com/xxxsen/davfs/davclient"
	"github.com/xxxsen/davfs/server/handler/fsapi"
	"github.com/xxxsen/davfs/server/middleware"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

type Server struct {
	c      *config
	engine webapi.IWebEngine
}

func New(bind string, opts ...Option) (*Server, error) {
	c := applyOpts(opts...)
	if c.cli == nil {
		return nil, fmt.Errorf("no webdav client for server")
	}
	svr := &Server{c: c}
	var err error
	svr.engine, err = webapi.NewEngine("/", bind, webapi.WithAuth(auth.MapUserMatch(c.userMap)), webapi.WithRegister(svr.initAPI))
	if err != nil {
		return nil, err
	}
	return svr, nil
}

func buildStatCache(sz int64) (cacheapi.ICache[string, *davclient.Entry], error) {
	rc, err := ristretto.NewCache(&ristretto.Config[string, *davclient.Entry]{
		NumCounters: sz * 10,
		MaxCost:     sz,
		BufferItems: 64,
		Cost: func(v *davclient.Entry) int64 {
			return 1
		},
	})
	if err != nil {
		return nil, err
	}
	return cachewrap.WrapRistrettoCache(rc), nil
}

func (s *Server) initAPI(router *gin.RouterGroup) {
	mustAuthMiddleware := commonmw.MustAuthMiddleware()

	statc, err := buildStatCache(s.c.statCacheSize)
	if err != nil {
		// the gateway still works without the stat cache
		statc = nil
	}
	fsHandler := fsapi.NewFsHandler(s.c.cli, statc)

	fsRouter := router.Group("/api/fs")
	{
		fsRouter.GET("/list", fsHandler.List)
		fsRouter.GET("/stat", fsHandler.Stat)
		fsRouter.GET("/download/*path", fsHandler.Download)
		fsRouter.PUT("/upload/*path", mustAuthMiddleware, middleware.BodyLimitMiddleware(s.c.maxUploadSize), fsHandler.Upload)
		fsRouter.POST("/delete", mustAuthMiddleware, fsHandler.Delete)
		fsRouter.POST("/mkdir", mustAuthMiddleware, fsHandler.Mkdir)
		fsRouter.POST("/move", mustAuthMiddleware, fsHandler.Move)
		fsRouter.POST("/copy", mustAuthMiddleware, fsHandler.Copy)
	}
	if s.c.staticEnable {
		staticRouter := router.Group("/static", mustAuthMiddleware)
		{
			staticRouter.StaticFS("", http.FS(davclient.ToFileSystem(context.Background(), s.c.cli)))
		}
	}
}

func (s *Server) Run() error {
	return s.engine.Run()
}
