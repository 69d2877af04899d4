package pricing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/snehapuri/formula-builder/internal/importer"
	"github.com/snehapuri/formula-builder/internal/logger"
	"github.com/snehapuri/formula-builder/internal/model"
	"github.com/snehapuri/formula-builder/internal/service/calculator"
	"github.com/snehapuri/formula-builder/internal/service/excel"
	"github.com/snehapuri/formula-builder/internal/service/store"
)

// ErrInvalidDateRange 报表日期参数无法解析或起止颠倒
var ErrInvalidDateRange = errors.New("invalid date range")

// IngestResult 上传结果
type IngestResult struct {
	DatasetID   string                  `json:"dataset_id"`
	Filename    string                  `json:"filename"`
	RowCount    int                     `json:"row_count"`
	SkippedRows int                     `json:"skipped_rows"`
	Rows        []model.CanonicalRow    `json:"data"`
	Summary     model.ValidationSummary `json:"validation_summary"`
}

// DateRange 报表时间区间（闭区间，零值不限）
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Service 定价合规服务：串联导入、公式登记、计算与历史
type Service struct {
	tables   *store.TableStore
	formulas *store.FormulaStore
	history  *store.HistoryStore

	importer *importer.Coordinator
	engine   *calculator.Engine
}

// Options 服务选项
type Options struct {
	Read excel.ReadOptions
}

// NewService 创建服务，三个存储均为进程内
func NewService(opts Options) *Service {
	tables := store.NewTableStore()
	formulas := store.NewFormulaStore()
	history := store.NewHistoryStore()

	return &Service{
		tables:   tables,
		formulas: formulas,
		history:  history,
		importer: importer.NewCoordinator(tables, opts.Read),
		engine:   calculator.NewEngine(formulas, history),
	}
}

// Ingest 导入上传文件并替换当前数据集
func (s *Service) Ingest(ctx context.Context, filename string, raw []byte) (*IngestResult, error) {
	table, err := s.importer.Import(ctx, filename, raw)
	if err != nil {
		return nil, err
	}
	return &IngestResult{
		DatasetID:   table.ID,
		Filename:    table.Filename,
		RowCount:    len(table.Rows),
		SkippedRows: table.SkippedRows,
		Rows:        table.Rows,
		Summary:     table.Summary,
	}, nil
}

// CurrentTable 当前数据集
func (s *Service) CurrentTable() *model.UploadedTable {
	return s.tables.Current()
}

// CreateFormula 登记公式
func (s *Service) CreateFormula(ctx context.Context, name, description, formulaString string) model.Formula {
	f := s.formulas.Create(name, description, formulaString)
	logger.WithContext(ctx).Info("formula created", "formula_id", f.ID, "name", f.Name)
	return f
}

// ListFormulas 按登记顺序返回公式
func (s *Service) ListFormulas() []model.Formula {
	return s.formulas.List()
}

// Calculate 对调用方提供的记录计算
func (s *Service) Calculate(ctx context.Context, formulaID string, rows []map[string]any, filters calculator.Filters) (*model.CalculationOutcome, error) {
	return s.engine.Calculate(ctx, formulaID, rows, filters)
}

// CalculateCurrent 对当前数据集计算
func (s *Service) CalculateCurrent(ctx context.Context, formulaID string, filters calculator.Filters) (*model.CalculationOutcome, error) {
	return s.engine.CalculateTable(ctx, formulaID, s.tables.Current().Rows, filters)
}

// History 历史报表；汇总只覆盖区间内记录
func (s *Service) History(r DateRange) model.HistoryReport {
	records := s.history.Between(r.Start, r.End)
	report := model.HistoryReport{
		Calculations: records,
		Summary: model.HistorySummary{
			TotalCalculations: len(records),
		},
	}
	if n := len(records); n > 0 {
		latest := records[n-1]
		report.Summary.LatestCalculation = &latest
	}
	return report
}

// ParseDateRange 解析 start/end 参数，支持 YYYY-MM-DD 与 RFC 3339；仅日期的结束值包含当天
func ParseDateRange(start, end string) (DateRange, error) {
	var r DateRange
	var err error
	if r.Start, err = parseBound(start, false); err != nil {
		return DateRange{}, fmt.Errorf("%w: start_date %q", ErrInvalidDateRange, start)
	}
	if r.End, err = parseBound(end, true); err != nil {
		return DateRange{}, fmt.Errorf("%w: end_date %q", ErrInvalidDateRange, end)
	}
	if !r.Start.IsZero() && !r.End.IsZero() && r.End.Before(r.Start) {
		return DateRange{}, fmt.Errorf("%w: end_date before start_date", ErrInvalidDateRange)
	}
	return r, nil
}

func parseBound(v string, endOfDay bool) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", v, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
