package model

import "time"

// ValidationSummary 上传数据质量汇总（每次上传计算一次）
type ValidationSummary struct {
	MissingDiscounts      int      `json:"missing_discounts"`
	GovtTransactions      int      `json:"govt_transactions"`
	DuplicateTransactions int      `json:"duplicate_transactions"`
	TotalColumnsFound     int      `json:"total_columns_found"`
	ColumnsFound          []string `json:"columns_found"`
}

// UploadedTable 当前数据集
type UploadedTable struct {
	ID          string            `json:"id"`
	Filename    string            `json:"filename"`
	UploadedAt  time.Time         `json:"uploaded_at"`
	Rows        []CanonicalRow    `json:"data"`
	SkippedRows int               `json:"skipped_rows"`
	Summary     ValidationSummary `json:"validation_summary"`
}

// EmptyTable 尚未上传时的空数据集
func EmptyTable() *UploadedTable {
	return &UploadedTable{
		Rows: []CanonicalRow{},
		Summary: ValidationSummary{
			ColumnsFound: []string{},
		},
	}
}
