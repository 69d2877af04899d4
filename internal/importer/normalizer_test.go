package importer

import (
	"errors"
	"testing"

	"github.com/snehapuri/formula-builder/internal/model"
	"github.com/snehapuri/formula-builder/internal/parser"
	"github.com/snehapuri/formula-builder/internal/service/excel"
)

var fullHeaders = []string{
	"Drug Name", "Total Sales (USD)", "Discount Percentage (%)",
	"Units Sold", "Regulatory Price Limit (USD)", "Customer Category",
	"Exclusion Flag",
}

func TestNormalizeRow_DefaultsForEmptyCells(t *testing.T) {
	t.Parallel()

	m := parser.MapColumns(fullHeaders)
	row, err := NormalizeRow([]string{"DrugA", "", "", "", "", "", ""}, m)
	if err != nil {
		t.Fatalf("NormalizeRow: %v", err)
	}
	if model.Text(row.Product) != "DrugA" {
		t.Fatalf("Product=%v", row.Product)
	}
	if row.Price != 0 || row.Quantity != 0 || row.RegulatoryLimit != 0 {
		t.Fatalf("numeric defaults not applied: %+v", row)
	}
	if row.Discount != model.DiscountSentinel {
		t.Fatalf("Discount=%q, want sentinel", row.Discount)
	}
	if row.Customer != nil || row.Excluded != nil {
		t.Fatalf("text defaults should be null")
	}
	// 未出现在表头中的字段同样取缺省值
	if row.ProfitMargin != model.DiscountSentinel || row.Rebate != 0 || row.Status != nil {
		t.Fatalf("absent fields not defaulted: %+v", row)
	}
}

func TestNormalizeRow_CoercesValues(t *testing.T) {
	t.Parallel()

	m := parser.MapColumns(fullHeaders)
	row, err := NormalizeRow([]string{" DrugA ", "1,000.50", "10", "12.0", "900", "Government", "Y"}, m)
	if err != nil {
		t.Fatalf("NormalizeRow: %v", err)
	}
	if row.Price != 1000.5 || row.Quantity != 12 || row.RegulatoryLimit != 900 {
		t.Fatalf("coercion mismatch: %+v", row)
	}
	if row.Discount != "10" || model.Text(row.Customer) != "Government" || model.Text(row.Excluded) != "Y" {
		t.Fatalf("text mismatch: %+v", row)
	}
	if model.Text(row.Product) != "DrugA" {
		t.Fatalf("Product not trimmed: %q", model.Text(row.Product))
	}
}

func TestNormalizeRow_AnyBadCellRejectsRow(t *testing.T) {
	t.Parallel()

	m := parser.MapColumns(fullHeaders)
	_, err := NormalizeRow([]string{"DrugA", "1000", "10", "lots", "900", "", ""}, m)
	var rowErr *RowError
	if !errors.As(err, &rowErr) {
		t.Fatalf("err=%v, want *RowError", err)
	}
	if rowErr.Column != "Units Sold" {
		t.Fatalf("column=%q", rowErr.Column)
	}
}

func TestNormalizeRows_CollectsSkipped(t *testing.T) {
	t.Parallel()

	m := parser.MapColumns(fullHeaders)
	rows, skipped := NormalizeRows([]excel.Row{
		{Number: 2, Cells: []string{"A", "1", "1", "1", "1", "", ""}},
		{Number: 3, Cells: []string{"B", "bad", "1", "1", "1", "", ""}},
		{Number: 4, Cells: []string{"C", "2", "", "", "", "", ""}},
	}, m)

	if len(rows) != 2 {
		t.Fatalf("rows=%d, want 2", len(rows))
	}
	if len(skipped) != 1 || skipped[0].Number != 3 || skipped[0].Column != "Total Sales (USD)" {
		t.Fatalf("skipped=%+v", skipped)
	}
}
