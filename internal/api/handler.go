package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snehapuri/formula-builder/internal/service/excel"
	"github.com/snehapuri/formula-builder/internal/service/pricing"
)

// DefaultMaxUploadBytes 上传文件大小上限默认值（20 MiB）
const DefaultMaxUploadBytes int64 = 20 << 20

// Options API 选项
type Options struct {
	MaxUploadBytes int64
}

// Handler API 处理器
type Handler struct {
	svc       *pricing.Service
	exporter  *excel.Exporter
	maxUpload int64
}

// NewHandler 创建 API 处理器
func NewHandler(svc *pricing.Service, opts Options) *Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	return &Handler{
		svc:       svc,
		exporter:  excel.NewExporter(),
		maxUpload: opts.MaxUploadBytes,
	}
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(router gin.IRouter) {
	// 健康检查
	router.GET("/", h.Root)

	api := router.Group("/api")
	{
		// 数据上传与查询
		api.GET("/data", h.GetData)
		api.POST("/upload", h.Upload)
		api.GET("/template", h.Template)

		// 公式
		api.POST("/formulas", h.CreateFormula)
		api.GET("/formulas", h.ListFormulas)

		// 计算
		api.POST("/calculate", h.Calculate)

		// 报表
		api.GET("/reports", h.Reports)
		api.GET("/reports/export", h.ExportReports)
	}
}

// Root 服务存活
// GET /
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Formula Builder API is running"})
}
