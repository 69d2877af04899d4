package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snehapuri/formula-builder/internal/model"
)

// CreateFormulaRequest 创建公式请求
type CreateFormulaRequest struct {
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	FormulaString string `json:"formula_string" binding:"required"`
}

// formulaIndex 按登记顺序输出 id → 公式 的 JSON 对象
type formulaIndex []model.Formula

// MarshalJSON 保持插入顺序
func (fi formulaIndex) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fi {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.ID)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// CreateFormula 登记公式
// POST /api/formulas
func (h *Handler) CreateFormula(c *gin.Context) {
	var req CreateFormulaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: %v", errInvalidRequest, err))
		return
	}

	f := h.svc.CreateFormula(c.Request.Context(), req.Name, req.Description, req.FormulaString)
	c.JSON(http.StatusOK, f)
}

// ListFormulas 公式列表
// GET /api/formulas
func (h *Handler) ListFormulas(c *gin.Context) {
	c.JSON(http.StatusOK, formulaIndex(h.svc.ListFormulas()))
}
