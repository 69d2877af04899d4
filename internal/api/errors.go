package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snehapuri/formula-builder/internal/logger"
	"github.com/snehapuri/formula-builder/internal/parser"
	"github.com/snehapuri/formula-builder/internal/service/calculator"
	"github.com/snehapuri/formula-builder/internal/service/pricing"
)

var (
	errFileTooLarge   = errors.New("uploaded file exceeds the size limit")
	errMissingFile    = errors.New("no file uploaded")
	errInvalidRequest = errors.New("invalid request body")
)

// apiError 错误响应
type apiError struct {
	status int
	code   string
	detail string
}

// classify 将领域错误映射为 HTTP 状态、错误码与描述
func classify(err error) apiError {
	var missing *parser.MissingColumnsError
	var parseErr *parser.FileParseError

	switch {
	case errors.As(err, &missing):
		return apiError{http.StatusBadRequest, "missing_required_columns", missing.Error()}
	case errors.As(err, &parseErr):
		return apiError{http.StatusBadRequest, "file_parse_error", parseErr.Error()}
	case errors.Is(err, parser.ErrUnsupportedFileType):
		return apiError{http.StatusBadRequest, "unsupported_file_type", "Invalid file format. Please upload a CSV, XLS, or XLSX file."}
	case errors.Is(err, parser.ErrNoValidRows):
		return apiError{http.StatusBadRequest, "no_valid_rows", "No valid data could be processed from the file"}
	case errors.Is(err, calculator.ErrFormulaNotFound):
		return apiError{http.StatusNotFound, "formula_not_found", "Formula not found"}
	case errors.Is(err, calculator.ErrNoCalculableRows):
		return apiError{http.StatusBadRequest, "no_calculable_rows", "No calculations could be performed"}
	case errors.Is(err, pricing.ErrInvalidDateRange):
		return apiError{http.StatusBadRequest, "invalid_date_range", err.Error()}
	case errors.Is(err, errFileTooLarge):
		return apiError{http.StatusBadRequest, "file_too_large", "File too large"}
	case errors.Is(err, errMissingFile):
		return apiError{http.StatusBadRequest, "missing_file", "No file uploaded"}
	case errors.Is(err, errInvalidRequest):
		return apiError{http.StatusBadRequest, "invalid_request", err.Error()}
	default:
		return apiError{http.StatusInternalServerError, "internal_error", "Internal server error"}
	}
}

// writeError 统一错误输出
func writeError(c *gin.Context, err error) {
	e := classify(err)
	log := logger.WithContext(c.Request.Context())
	if e.status >= http.StatusInternalServerError {
		log.Error("request failed", "path", c.Request.URL.Path, "error", err)
	} else {
		log.Debug("request rejected", "path", c.Request.URL.Path, "code", e.code, "error", err)
	}
	c.AbortWithStatusJSON(e.status, gin.H{"detail": e.detail, "error": e.code})
}
