package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/snehapuri/formula-builder/internal/model"
	"github.com/snehapuri/formula-builder/internal/service/calculator"
)

// formulaRef 公式 id，兼容字符串与数字
type formulaRef string

// UnmarshalJSON 接受 "1" 或 1
func (r *formulaRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = formulaRef(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("formula_id must be a string or number")
	}
	*r = formulaRef(n.String())
	return nil
}

// CalculateRequest 计算请求；data 省略时对当前数据集计算
type CalculateRequest struct {
	FormulaID formulaRef          `json:"formula_id"`
	Data      []map[string]any    `json:"data"`
	Filters   *calculator.Filters `json:"filters"`
}

// Calculate 计算折后价与合规结论
// POST /api/calculate
func (h *Handler) Calculate(c *gin.Context) {
	var req CalculateRequest
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		writeError(c, fmt.Errorf("%w: %v", errInvalidRequest, err))
		return
	}
	id := strings.TrimSpace(string(req.FormulaID))
	if id == "" {
		writeError(c, fmt.Errorf("%w: formula_id is required", errInvalidRequest))
		return
	}

	var filters calculator.Filters
	if req.Filters != nil {
		filters = *req.Filters
	}

	var (
		out *model.CalculationOutcome
		err error
	)
	if req.Data == nil {
		out, err = h.svc.CalculateCurrent(c.Request.Context(), id, filters)
	} else {
		out, err = h.svc.Calculate(c.Request.Context(), id, req.Data, filters)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
