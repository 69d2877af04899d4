package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/snehapuri/formula-builder/internal/api"
	"github.com/snehapuri/formula-builder/internal/config"
	"github.com/snehapuri/formula-builder/internal/middleware"
	"github.com/snehapuri/formula-builder/internal/service/excel"
	"github.com/snehapuri/formula-builder/internal/service/pricing"
)

// Server HTTP服务器
type Server struct {
	router  *gin.Engine
	handler *api.Handler
	http    *http.Server
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	svc := pricing.NewService(pricing.Options{
		Read: excel.ReadOptions{Comma: cfg.Upload.Comma()},
	})

	s := &Server{
		router:  gin.New(),
		handler: api.NewHandler(svc, api.Options{MaxUploadBytes: cfg.Upload.MaxBytes}),
	}
	// multipart 解析时超过此值的部分落盘
	s.router.MaxMultipartMemory = cfg.Upload.MaxBytes

	s.setupRoutes(cfg)

	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// setupRoutes 设置中间件与路由
func (s *Server) setupRoutes(cfg *config.AppConfig) {
	s.router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.RequestLogger(),
		middleware.CORS(cfg.Server.AllowedOrigins),
	)

	s.handler.RegisterRoutes(s.router)

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found", "error": "not_found"})
	})
}

// Handler 返回 HTTP 处理器（用于测试）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 启动服务器，阻塞直到关闭
func (s *Server) Run() error {
	slog.Info("server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 优雅关闭
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
