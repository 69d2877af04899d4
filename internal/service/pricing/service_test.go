package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/snehapuri/formula-builder/internal/parser"
	"github.com/snehapuri/formula-builder/internal/service/calculator"
)

const salesCSV = "Drug Name,Total Sales (USD),Discount Percentage (%),Regulatory Price Limit (USD),Customer Category\n" +
	"DrugA,1000,10,900,Government\n" +
	"DrugB,1000,0,500,Retailer\n" +
	"DrugC,500,,500,Retailer\n"

func TestIngestAndCurrentTable(t *testing.T) {
	s := NewService(Options{})

	cur := s.CurrentTable()
	if len(cur.Rows) != 0 || cur.Summary.TotalColumnsFound != 0 {
		t.Fatalf("expected empty table before upload, got %+v", cur)
	}

	res, err := s.Ingest(context.Background(), "sales.csv", []byte(salesCSV))
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if res.RowCount != 3 || res.SkippedRows != 0 {
		t.Fatalf("row_count=%d skipped=%d", res.RowCount, res.SkippedRows)
	}
	if res.Summary.MissingDiscounts != 1 || res.Summary.GovtTransactions != 1 {
		t.Fatalf("summary=%+v", res.Summary)
	}
	if got := s.CurrentTable(); got.ID != res.DatasetID || len(got.Rows) != 3 {
		t.Fatalf("current table not updated")
	}

	_, err = s.Ingest(context.Background(), "sales.pdf", []byte(salesCSV))
	if !errors.Is(err, parser.ErrUnsupportedFileType) {
		t.Fatalf("err=%v", err)
	}
	if got := s.CurrentTable(); got.ID != res.DatasetID {
		t.Fatalf("failed ingest replaced table")
	}
}

func TestCreateFormulaSequentialIDs(t *testing.T) {
	s := NewService(Options{})

	for i, want := range []string{"1", "2", "3"} {
		f := s.CreateFormula(context.Background(), "F", "d", "x")
		if f.ID != want {
			t.Fatalf("formula %d id=%s, want %s", i, f.ID, want)
		}
		if _, err := time.Parse(time.RFC3339Nano, f.CreatedAt); err != nil {
			t.Fatalf("created_at %q: %v", f.CreatedAt, err)
		}
	}

	list := s.ListFormulas()
	if len(list) != 3 || list[0].ID != "1" || list[2].ID != "3" {
		t.Fatalf("list=%+v", list)
	}
}

func TestCalculateCurrentAndHistory(t *testing.T) {
	s := NewService(Options{})
	ctx := context.Background()

	if _, err := s.Ingest(ctx, "sales.csv", []byte(salesCSV)); err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	f := s.CreateFormula(ctx, "Basic Discount", "", "Total Sales * (1 - (Discount Percentage / 100))")

	out, err := s.CalculateCurrent(ctx, f.ID, calculator.Filters{})
	if err != nil {
		t.Fatalf("CalculateCurrent failed: %v", err)
	}
	if out.Summary.CompliantCount != 2 || out.Summary.NonCompliantCount != 1 {
		t.Fatalf("summary=%+v", out.Summary)
	}

	_, err = s.Calculate(ctx, "99", nil, calculator.Filters{})
	if !errors.Is(err, calculator.ErrFormulaNotFound) {
		t.Fatalf("err=%v", err)
	}

	report := s.History(DateRange{})
	if report.Summary.TotalCalculations != 1 || report.Summary.LatestCalculation == nil {
		t.Fatalf("report=%+v", report)
	}
	if report.Summary.LatestCalculation.FormulaName != "Basic Discount" {
		t.Fatalf("latest=%+v", report.Summary.LatestCalculation)
	}

	future := s.History(DateRange{Start: time.Now().Add(time.Hour)})
	if future.Summary.TotalCalculations != 0 || future.Summary.LatestCalculation != nil {
		t.Fatalf("future report=%+v", future)
	}
	if future.Calculations == nil {
		t.Fatalf("calculations must encode as [] not null")
	}
}

func TestHistoryEmpty(t *testing.T) {
	s := NewService(Options{})
	report := s.History(DateRange{})
	if report.Summary.TotalCalculations != 0 || report.Summary.LatestCalculation != nil {
		t.Fatalf("report=%+v", report)
	}
	if report.Calculations == nil {
		t.Fatalf("calculations must not be nil")
	}
}

func TestParseDateRange(t *testing.T) {
	r, err := ParseDateRange("2026-01-01", "2026-01-31")
	if err != nil {
		t.Fatalf("ParseDateRange: %v", err)
	}
	if r.Start.Day() != 1 || r.End.Day() != 31 || r.End.Hour() != 23 {
		t.Fatalf("range=%+v", r)
	}

	r, err = ParseDateRange("", "2026-01-31T10:00:00Z")
	if err != nil || !r.Start.IsZero() || r.End.Hour() != 10 {
		t.Fatalf("range=%+v err=%v", r, err)
	}

	for _, tc := range [][2]string{{"yesterday", ""}, {"", "2026/01/01"}, {"2026-02-01", "2026-01-01"}} {
		if _, err := ParseDateRange(tc[0], tc[1]); !errors.Is(err, ErrInvalidDateRange) {
			t.Errorf("ParseDateRange(%q,%q) err=%v", tc[0], tc[1], err)
		}
	}
}
