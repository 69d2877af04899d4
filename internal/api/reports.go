package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/snehapuri/formula-builder/internal/service/pricing"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Reports 计算历史
// GET /api/reports?start_date=&end_date=
func (h *Handler) Reports(c *gin.Context) {
	r, err := pricing.ParseDateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.svc.History(r))
}

// ExportReports 导出计算历史为 xlsx
// GET /api/reports/export
func (h *Handler) ExportReports(c *gin.Context) {
	r, err := pricing.ParseDateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		writeError(c, err)
		return
	}

	file, err := h.exporter.HistoryWorkbook(h.svc.History(r).Calculations)
	if err != nil {
		writeError(c, err)
		return
	}
	defer file.Close()

	buf, err := file.WriteToBuffer()
	if err != nil {
		writeError(c, err)
		return
	}

	filename := fmt.Sprintf("calculation-history-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Template 上传模板
// GET /api/template?format=csv|xlsx
func (h *Handler) Template(c *gin.Context) {
	switch strings.ToLower(c.DefaultQuery("format", "csv")) {
	case "csv":
		data, err := h.exporter.TemplateCSV()
		if err != nil {
			writeError(c, err)
			return
		}
		c.Header("Content-Disposition", "attachment; filename=\"drug_sales_template.csv\"")
		c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
	case "xlsx":
		file, err := h.exporter.TemplateWorkbook()
		if err != nil {
			writeError(c, err)
			return
		}
		defer file.Close()

		var buf bytes.Buffer
		if err := file.Write(&buf); err != nil {
			writeError(c, err)
			return
		}
		c.Header("Content-Disposition", "attachment; filename=\"drug_sales_template.xlsx\"")
		c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
	default:
		writeError(c, fmt.Errorf("%w: format must be csv or xlsx", errInvalidRequest))
	}
}
