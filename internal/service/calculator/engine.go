package calculator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/snehapuri/formula-builder/internal/logger"
	"github.com/snehapuri/formula-builder/internal/model"
	"github.com/snehapuri/formula-builder/internal/service/store"
)

var (
	ErrFormulaNotFound  = errors.New("formula not found")
	ErrNoCalculableRows = errors.New("no calculations could be performed")
)

// Filters 计算前的行筛选（大小写不敏感的子串匹配，空值不限）
type Filters struct {
	Product         string `json:"product"`
	Date            string `json:"date"`
	Customer        string `json:"customer"`
	TransactionType string `json:"transaction_type"`
}

// Match 判断记录是否满足筛选条件
func (f Filters) Match(rec map[string]any) bool {
	return matchField(rec[model.FieldProduct], f.Product) &&
		matchField(rec[model.FieldDate], f.Date) &&
		matchField(rec[model.FieldCustomer], f.Customer) &&
		matchField(rec[model.FieldTransactionType], f.TransactionType)
}

func matchField(v any, want string) bool {
	want = strings.TrimSpace(want)
	if want == "" {
		return true
	}
	if v == nil {
		return false
	}
	return strings.Contains(strings.ToLower(fmt.Sprint(v)), strings.ToLower(want))
}

// Engine 合规计算引擎
type Engine struct {
	formulas *store.FormulaStore
	history  *store.HistoryStore
	now      func() time.Time
}

// NewEngine 创建计算引擎
func NewEngine(formulas *store.FormulaStore, history *store.HistoryStore) *Engine {
	return &Engine{
		formulas: formulas,
		history:  history,
		now:      time.Now,
	}
}

// Calculate 对传入记录逐行计算折后价与合规结论，成功后追加历史
func (e *Engine) Calculate(ctx context.Context, formulaID string, rows []map[string]any, filters Filters) (*model.CalculationOutcome, error) {
	log := logger.WithContext(ctx).With("formula_id", formulaID)

	formula, ok := e.formulas.Get(formulaID)
	if !ok {
		return nil, ErrFormulaNotFound
	}

	outcome := &model.CalculationOutcome{
		Results: make([]model.CalculationResult, 0, len(rows)),
		Summary: model.CalculationSummary{
			FormulaUsed: formula.FormulaString,
			FormulaName: formula.Name,
		},
	}

	for i, rec := range rows {
		if !filters.Match(rec) {
			continue
		}
		result, err := EvaluateRow(rec, formula.FormulaString)
		if err != nil {
			outcome.Summary.SkippedRows++
			log.Warn("row skipped", "index", i, "error", err)
			continue
		}
		outcome.Results = append(outcome.Results, result)
		if result.ComplianceStatus == model.StatusCompliant {
			outcome.Summary.CompliantCount++
		} else {
			outcome.Summary.NonCompliantCount++
		}
	}

	if len(outcome.Results) == 0 {
		return nil, ErrNoCalculableRows
	}
	outcome.Summary.TotalProcessed = len(outcome.Results)

	e.history.Append(model.CalculationRecord{
		Timestamp:         e.now(),
		FormulaID:         formulaID,
		FormulaName:       formula.Name,
		RowsProcessed:     outcome.Summary.TotalProcessed,
		CompliantCount:    outcome.Summary.CompliantCount,
		NonCompliantCount: outcome.Summary.NonCompliantCount,
	})

	log.Info("calculation completed",
		"processed", outcome.Summary.TotalProcessed,
		"compliant", outcome.Summary.CompliantCount,
		"non_compliant", outcome.Summary.NonCompliantCount,
		"skipped", outcome.Summary.SkippedRows,
		"history_size", e.history.Count(),
	)
	return outcome, nil
}

// CalculateTable 对统一口径记录计算（当前数据集等）
func (e *Engine) CalculateTable(ctx context.Context, formulaID string, rows []model.CanonicalRow, filters Filters) (*model.CalculationOutcome, error) {
	records := make([]map[string]any, len(rows))
	for i, r := range rows {
		records[i] = r.Record()
	}
	return e.Calculate(ctx, formulaID, records, filters)
}
