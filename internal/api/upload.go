package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Upload 上传销售数据文件
// POST /api/upload
func (h *Handler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload+(1<<20))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeError(c, errFileTooLarge)
		case errors.Is(err, http.ErrMissingFile):
			writeError(c, errMissingFile)
		default:
			writeError(c, fmt.Errorf("%w: %v", errInvalidRequest, err))
		}
		return
	}
	if fileHeader.Size > h.maxUpload {
		writeError(c, errFileTooLarge)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		writeError(c, err)
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, h.maxUpload+1))
	if err != nil {
		writeError(c, err)
		return
	}
	if int64(len(raw)) > h.maxUpload {
		writeError(c, errFileTooLarge)
		return
	}

	res, err := h.svc.Ingest(c.Request.Context(), fileHeader.Filename, raw)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":            "File processed successfully",
		"dataset_id":         res.DatasetID,
		"rows":               res.RowCount,
		"skipped_rows":       res.SkippedRows,
		"data":               res.Rows,
		"validation_summary": res.Summary,
	})
}

// GetData 当前数据集
// GET /api/data
func (h *Handler) GetData(c *gin.Context) {
	table := h.svc.CurrentTable()
	c.JSON(http.StatusOK, gin.H{
		"data":               table.Rows,
		"validation_summary": table.Summary,
	})
}
