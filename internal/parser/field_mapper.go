package parser

import (
	"path/filepath"
	"strings"

	"github.com/snehapuri/formula-builder/internal/model"
)

// FileFormat 上传文件格式
type FileFormat string

const (
	FormatCSV  FileFormat = "csv"
	FormatXLS  FileFormat = "xls"
	FormatXLSX FileFormat = "xlsx"
)

// DetectFormat 按文件名后缀判断格式
func DetectFormat(filename string) (FileFormat, error) {
	switch strings.ToLower(filepath.Ext(strings.TrimSpace(filename))) {
	case ".csv":
		return FormatCSV, nil
	case ".xls":
		return FormatXLS, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return "", ErrUnsupportedFileType
}

// FieldMapping 单列映射结果
type FieldMapping struct {
	ColumnIndex int             `json:"columnIndex"` // 表头中的列索引
	ColumnName  string          `json:"columnName"`  // 源列名
	Field       string          `json:"field"`       // 统一口径字段
	Kind        model.ValueKind `json:"kind"`
}

// ColumnMapping 表头映射结果
type ColumnMapping struct {
	Headers  []string       `json:"headers"` // 原始表头（仅去除 BOM）
	Mappings []FieldMapping `json:"mappings"`
	Missing  []string       `json:"missing"`

	present map[string]bool
}

// MapColumns 根据表头计算源列到统一口径字段的映射
func MapColumns(headers []string) *ColumnMapping {
	m := &ColumnMapping{
		Headers:  make([]string, len(headers)),
		Mappings: make([]FieldMapping, 0, len(headers)),
		Missing:  []string{},
		present:  make(map[string]bool, len(headers)),
	}

	sources := make(map[string]bool, len(headers))
	for idx, raw := range headers {
		m.Headers[idx] = strings.TrimPrefix(raw, "\ufeff")
		col := NormalizeColumnName(raw)
		if col == "" || sources[col] {
			continue
		}
		sources[col] = true

		entry, ok := Lookup(col)
		if !ok {
			continue
		}
		m.Mappings = append(m.Mappings, FieldMapping{
			ColumnIndex: idx,
			ColumnName:  col,
			Field:       entry.Field,
			Kind:        entry.Kind,
		})
		m.present[entry.Field] = true
	}

	for _, req := range RequiredColumns {
		if !sources[req] {
			m.Missing = append(m.Missing, req)
		}
	}

	return m
}

// Validate 缺少必需列时返回 MissingColumnsError
func (m *ColumnMapping) Validate() error {
	if len(m.Missing) == 0 {
		return nil
	}
	missing := make([]string, len(m.Missing))
	copy(missing, m.Missing)
	available := make([]string, len(m.Headers))
	copy(available, m.Headers)
	return &MissingColumnsError{Missing: missing, Available: available}
}

// Has 判断统一口径字段是否有来源列
func (m *ColumnMapping) Has(field string) bool {
	return m.present[field]
}

// RenameMap 返回源列名到统一口径字段名的映射
func (m *ColumnMapping) RenameMap() map[string]string {
	out := make(map[string]string, len(m.Mappings))
	for _, fm := range m.Mappings {
		out[fm.ColumnName] = fm.Field
	}
	return out
}
