package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/snehapuri/formula-builder/internal/model"
	"github.com/snehapuri/formula-builder/internal/parser"
	"github.com/snehapuri/formula-builder/internal/service/excel"
)

// RowError 单行规范化失败（整行跳过）
type RowError struct {
	Number int    `json:"row"`
	Column string `json:"column"`
	Err    error  `json:"-"`
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d, column %q: %v", e.Number, e.Column, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// NormalizeRow 将一行源数据转换为统一口径记录
// 任一单元格转换失败即返回错误，不产生部分填充的记录
func NormalizeRow(cells []string, mapping *parser.ColumnMapping) (model.CanonicalRow, error) {
	row := model.NewCanonicalRow()

	for _, fm := range mapping.Mappings {
		if fm.ColumnIndex >= len(cells) {
			continue
		}
		raw := strings.TrimSpace(cells[fm.ColumnIndex])
		if raw == "" {
			continue
		}

		switch fm.Kind {
		case model.KindCurrency:
			v, err := parser.ParseCurrency(raw)
			if err != nil {
				return model.CanonicalRow{}, &RowError{Column: fm.ColumnName, Err: err}
			}
			*row.CurrencyRef(fm.Field) = v
		case model.KindCount:
			v, err := parser.ParseCount(raw)
			if err != nil {
				return model.CanonicalRow{}, &RowError{Column: fm.ColumnName, Err: err}
			}
			*row.CountRef(fm.Field) = v
		case model.KindPercent:
			*row.PercentRef(fm.Field) = raw
		default:
			*row.TextRef(fm.Field) = model.StringPtr(raw)
		}
	}

	return row, nil
}

// NormalizeRows 逐行规范化，返回成功记录与被跳过的行
func NormalizeRows(rows []excel.Row, mapping *parser.ColumnMapping) ([]model.CanonicalRow, []*RowError) {
	out := make([]model.CanonicalRow, 0, len(rows))
	var skipped []*RowError

	for _, r := range rows {
		row, err := NormalizeRow(r.Cells, mapping)
		if err != nil {
			var rowErr *RowError
			if !errors.As(err, &rowErr) {
				rowErr = &RowError{Err: err}
			}
			rowErr.Number = r.Number
			skipped = append(skipped, rowErr)
			continue
		}
		out = append(out, row)
	}

	return out, skipped
}
