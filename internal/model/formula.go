package model

import "time"

// Formula 定价公式（公式字符串仅保存与回显，不参与求值）
type Formula struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	FormulaString string `json:"formula_string"`
	CreatedAt     string `json:"created_at"`
}

// 合规结论
const (
	StatusCompliant    = "Compliant"
	StatusNonCompliant = "Non-Compliant"
)

// CalculationResult 单行计算结果
type CalculationResult struct {
	Product          any     `json:"Product"`
	Price            float64 `json:"Price"`
	CalculatedPrice  float64 `json:"Calculated Price"`
	RegulatoryLimit  float64 `json:"Regulatory Limit"`
	Discount         any     `json:"Discount"`
	ComplianceStatus string  `json:"Compliance Status"`
	FormulaUsed      string  `json:"Formula Used"`
}

// CalculationSummary 单次计算汇总
type CalculationSummary struct {
	TotalProcessed    int    `json:"total_processed"`
	CompliantCount    int    `json:"compliant_count"`
	NonCompliantCount int    `json:"non_compliant_count"`
	SkippedRows       int    `json:"skipped_rows"`
	FormulaUsed       string `json:"formula_used"`
	FormulaName       string `json:"formula_name"`
}

// CalculationOutcome 计算接口返回
type CalculationOutcome struct {
	Results []CalculationResult `json:"results"`
	Summary CalculationSummary  `json:"summary"`
}

// CalculationRecord 计算历史记录（只追加）
type CalculationRecord struct {
	Timestamp         time.Time `json:"timestamp"`
	FormulaID         string    `json:"formula_id"`
	FormulaName       string    `json:"formula_name"`
	RowsProcessed     int       `json:"rows_processed"`
	CompliantCount    int       `json:"compliant_count"`
	NonCompliantCount int       `json:"non_compliant_count"`
}

// HistorySummary 历史汇总
type HistorySummary struct {
	TotalCalculations int                `json:"total_calculations"`
	LatestCalculation *CalculationRecord `json:"latest_calculation"`
}

// HistoryReport 报表接口返回
type HistoryReport struct {
	Calculations []CalculationRecord `json:"calculations"`
	Summary      HistorySummary      `json:"summary"`
}
