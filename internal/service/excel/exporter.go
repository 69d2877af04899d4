package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/snehapuri/formula-builder/internal/model"
	"github.com/snehapuri/formula-builder/internal/parser"
)

// templateSamples 模板示例数据（按源列名）
var templateSamples = []map[string]string{
	{
		"Drug Name": "DrugD", "Manufacturer": "CurePharma", "Sales Year": "2021",
		"Total Sales (USD)": "446689.74", "Discount Percentage (%)": "10.98",
		"Customer Category": "Retailer", "Sales Region": "West",
		"Regulatory Price Limit (USD)": "142925.41", "Effective Price After Discounts (USD)": "397643.21",
		"Pricing Compliance Status": "Non-Compliant",
	},
	{
		"Drug Name": "DrugE", "Manufacturer": "CurePharma", "Sales Year": "2020",
		"Total Sales (USD)": "96738.44", "Discount Percentage (%)": "47.99",
		"Customer Category": "Retailer", "Sales Region": "Central",
		"Regulatory Price Limit (USD)": "163325.12", "Effective Price After Discounts (USD)": "50313.66",
		"Pricing Compliance Status": "Compliant",
	},
}

const (
	templateSheet = "Sales Data"
	historySheet  = "Calculations"
)

// Exporter 导出器
type Exporter struct{}

// NewExporter 创建导出器
func NewExporter() *Exporter {
	return &Exporter{}
}

func templateRows() [][]string {
	entries := parser.Catalog()
	header := make([]string, len(entries))
	for i, e := range entries {
		header[i] = e.Source
	}
	rows := [][]string{header}
	for _, sample := range templateSamples {
		row := make([]string, len(entries))
		for i, e := range entries {
			row[i] = sample[e.Source]
		}
		rows = append(rows, row)
	}
	return rows
}

// TemplateCSV 生成上传模板 CSV
func (e *Exporter) TemplateCSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(templateRows()); err != nil {
		return nil, fmt.Errorf("failed to write template csv: %w", err)
	}
	return buf.Bytes(), nil
}

// TemplateWorkbook 生成上传模板工作簿
func (e *Exporter) TemplateWorkbook() (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", templateSheet); err != nil {
		f.Close()
		return nil, err
	}

	for i, row := range templateRows() {
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(templateSheet, cell, &values); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write template row %d: %w", i+1, err)
		}
	}

	e.styleHeader(f, templateSheet)
	f.SetColWidth(templateSheet, "A", "W", 22)

	return f, nil
}

// HistoryWorkbook 导出计算历史
func (e *Exporter) HistoryWorkbook(records []model.CalculationRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", historySheet); err != nil {
		f.Close()
		return nil, err
	}

	headers := []string{
		"Timestamp", "Formula ID", "Formula Name",
		"Rows Processed", "Compliant", "Non-Compliant",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(historySheet, cell, h)
	}
	e.styleHeader(f, historySheet)

	for i, r := range records {
		row := i + 2
		f.SetCellValue(historySheet, fmt.Sprintf("A%d", row), r.Timestamp.Format(time.RFC3339))
		f.SetCellValue(historySheet, fmt.Sprintf("B%d", row), r.FormulaID)
		f.SetCellValue(historySheet, fmt.Sprintf("C%d", row), r.FormulaName)
		f.SetCellValue(historySheet, fmt.Sprintf("D%d", row), r.RowsProcessed)
		f.SetCellValue(historySheet, fmt.Sprintf("E%d", row), r.CompliantCount)
		f.SetCellValue(historySheet, fmt.Sprintf("F%d", row), r.NonCompliantCount)
	}

	f.SetColWidth(historySheet, "A", "A", 28)
	f.SetColWidth(historySheet, "B", "B", 12)
	f.SetColWidth(historySheet, "C", "C", 30)
	f.SetColWidth(historySheet, "D", "F", 15)

	return f, nil
}

func (e *Exporter) styleHeader(f *excelize.File, sheet string) {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return
	}
	f.SetRowStyle(sheet, 1, 1, headerStyle)
}
