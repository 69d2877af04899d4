package importer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/snehapuri/formula-builder/internal/logger"
	"github.com/snehapuri/formula-builder/internal/model"
	"github.com/snehapuri/formula-builder/internal/parser"
	"github.com/snehapuri/formula-builder/internal/service/excel"
	"github.com/snehapuri/formula-builder/internal/service/store"
)

// Coordinator 导入协调器：读取 → 列映射 → 行规范化 → 质量汇总 → 替换当前数据集
type Coordinator struct {
	tables *store.TableStore
	reader *excel.Parser
	now    func() time.Time
}

// NewCoordinator 创建导入协调器
func NewCoordinator(tables *store.TableStore, opts excel.ReadOptions) *Coordinator {
	return &Coordinator{
		tables: tables,
		reader: excel.NewParser(opts),
		now:    time.Now,
	}
}

// Import 导入上传文件；失败时保留原数据集
func (c *Coordinator) Import(ctx context.Context, filename string, data []byte) (*model.UploadedTable, error) {
	log := logger.WithContext(ctx).With("filename", filename)
	log.Info("processing upload", "size", len(data))

	format, err := parser.DetectFormat(filename)
	if err != nil {
		return nil, err
	}

	table, err := c.reader.Read(format, data)
	if err != nil {
		log.Warn("failed to read file", "error", err)
		return nil, &parser.FileParseError{Filename: filename, Err: err}
	}
	log.Debug("table read", "columns", table.Headers, "rows", len(table.Rows), "encoding", table.Encoding, "sheet", table.Sheet)

	mapping := parser.MapColumns(table.Headers)
	if err := mapping.Validate(); err != nil {
		log.Warn("required columns missing", "missing", mapping.Missing)
		return nil, err
	}

	rows, skipped := NormalizeRows(table.Rows, mapping)
	for _, rowErr := range skipped {
		log.Warn("row skipped", "row", rowErr.Number, "column", rowErr.Column, "error", rowErr.Err)
	}
	if len(rows) == 0 {
		return nil, parser.ErrNoValidRows
	}

	uploaded := &model.UploadedTable{
		ID:          uuid.New().String(),
		Filename:    filename,
		UploadedAt:  c.now(),
		Rows:        rows,
		SkippedRows: len(skipped),
		Summary:     Summarize(rows, mapping),
	}
	c.tables.Replace(uploaded)

	log.Info("upload processed", "dataset_id", uploaded.ID, "rows", len(rows), "skipped", len(skipped))
	return uploaded, nil
}
