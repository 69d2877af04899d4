package parser

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/snehapuri/formula-builder/internal/model"
)

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	ok := map[string]FileFormat{
		"sales.csv":        FormatCSV,
		"SALES.CSV":        FormatCSV,
		"book.xls":         FormatXLS,
		"book.xlsx":        FormatXLSX,
		"dir/2024.v2.xlsx": FormatXLSX,
	}
	for name, want := range ok {
		got, err := DetectFormat(name)
		if err != nil {
			t.Fatalf("DetectFormat(%q) unexpected error: %v", name, err)
		}
		if got != want {
			t.Fatalf("DetectFormat(%q)=%s, want %s", name, got, want)
		}
	}

	for _, name := range []string{"sales.txt", "sales", "sales.csv.zip", "x.json"} {
		if _, err := DetectFormat(name); !errors.Is(err, ErrUnsupportedFileType) {
			t.Fatalf("DetectFormat(%q) err=%v, want ErrUnsupportedFileType", name, err)
		}
	}
}

func TestMapColumns_OriginalTemplate(t *testing.T) {
	t.Parallel()

	headers := []string{
		"Drug Name", "Manufacturer", "Sales Year", "Total Sales (USD)",
		"Discount Percentage (%)", "Customer Category", "Sales Region",
		"Regulatory Price Limit (USD)", "Effective Price After Discounts (USD)",
		"Pricing Compliance Status", "Notes",
	}
	m := MapColumns(headers)
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(m.Mappings) != 10 {
		t.Fatalf("mappings=%d, want 10", len(m.Mappings))
	}

	rename := m.RenameMap()
	if rename["Total Sales (USD)"] != model.FieldPrice {
		t.Fatalf("Total Sales mapped to %q", rename["Total Sales (USD)"])
	}
	if _, ok := rename["Notes"]; ok {
		t.Fatalf("unrecognized column should not be mapped")
	}
	if !m.Has(model.FieldRegulatoryLimit) || m.Has(model.FieldQuantity) {
		t.Fatalf("unexpected field presence")
	}
}

func TestMapColumns_MissingRequired(t *testing.T) {
	t.Parallel()

	headers := []string{"Manufacturer", "Total Sales (USD)", "Sales Year"}
	err := MapColumns(headers).Validate()
	if !errors.Is(err, ErrMissingRequiredColumns) {
		t.Fatalf("err=%v, want ErrMissingRequiredColumns", err)
	}

	var mce *MissingColumnsError
	if !errors.As(err, &mce) {
		t.Fatalf("expected *MissingColumnsError, got %T", err)
	}
	if !reflect.DeepEqual(mce.Missing, []string{ColumnDrugName, ColumnDiscount}) {
		t.Fatalf("missing=%v", mce.Missing)
	}
	if !reflect.DeepEqual(mce.Available, headers) {
		t.Fatalf("available=%v", mce.Available)
	}
	want := "Missing required columns: Drug Name, Discount Percentage (%)\nAvailable columns in file: Manufacturer, Total Sales (USD), Sales Year"
	if err.Error() != want {
		t.Fatalf("message mismatch:\n got: %s\nwant: %s", err.Error(), want)
	}
}

func TestMapColumns_DuplicateHeaderFirstWins(t *testing.T) {
	t.Parallel()

	m := MapColumns([]string{"Drug Name", "Total Sales (USD)", "Discount Percentage (%)", "Drug Name"})
	if len(m.Mappings) != 3 {
		t.Fatalf("mappings=%d, want 3", len(m.Mappings))
	}
	if m.Mappings[0].ColumnIndex != 0 {
		t.Fatalf("first Drug Name should win, got index %d", m.Mappings[0].ColumnIndex)
	}
}

func recognizedHeaderGen() gopter.Gen {
	sources := make([]interface{}, 0, len(catalog))
	for _, e := range catalog {
		sources = append(sources, e.Source)
	}
	return gen.SliceOf(gen.OneConstOf(sources...))
}

func uniqueStrings(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func TestMapColumnsProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("required present => no missing and every recognized column mapped", prop.ForAll(
		func(extra []string, noise []string) bool {
			headers := uniqueStrings(append(append([]string{}, RequiredColumns...), extra...))
			for _, n := range noise {
				if _, ok := Lookup(n); !ok && n != "" {
					headers = append(headers, "x-"+n)
				}
			}
			headers = uniqueStrings(headers)

			m := MapColumns(headers)
			if len(m.Missing) != 0 || m.Validate() != nil {
				return false
			}
			rename := m.RenameMap()
			for _, h := range headers {
				_, recognized := Lookup(h)
				_, mapped := rename[h]
				if recognized != mapped {
					return false
				}
			}
			return true
		},
		recognizedHeaderGen(),
		gen.SliceOf(gen.AlphaString()),
	))

	properties.Property("dropping required columns reports exactly those", prop.ForAll(
		func(mask uint8, extra []string) bool {
			headers := []string{}
			wantMissing := []string{}
			for i, req := range RequiredColumns {
				if mask&(1<<i) != 0 {
					headers = append(headers, req)
				} else {
					wantMissing = append(wantMissing, req)
				}
			}
			for _, h := range extra {
				if !contains(RequiredColumns, h) {
					headers = append(headers, h)
				}
			}
			headers = uniqueStrings(headers)

			err := MapColumns(headers).Validate()
			if len(wantMissing) == 0 {
				return err == nil
			}
			var mce *MissingColumnsError
			if !errors.As(err, &mce) {
				return false
			}
			return strings.Join(mce.Missing, "|") == strings.Join(wantMissing, "|")
		},
		gen.UInt8Range(0, 7),
		recognizedHeaderGen(),
	))

	properties.TestingRun(t)
}

func contains(items []string, want string) bool {
	for _, it := range items {
		if it == want {
			return true
		}
	}
	return false
}

func TestMapColumns_InternalWhitespaceIsNotAMatch(t *testing.T) {
	t.Parallel()

	headers := []string{"Drug  Name", "Total\tSales (USD)", " Discount Percentage (%) ", "Notes  X"}
	m := MapColumns(headers)

	if !reflect.DeepEqual(m.Missing, []string{ColumnDrugName, ColumnTotalSales}) {
		t.Fatalf("missing=%v", m.Missing)
	}
	if len(m.Mappings) != 1 || m.Mappings[0].Field != model.FieldDiscount {
		t.Fatalf("mappings=%+v", m.Mappings)
	}
}

func TestMapColumns_HeadersKeptVerbatim(t *testing.T) {
	t.Parallel()

	headers := []string{"\ufeff Drug Name ", "Weird   Col"}
	m := MapColumns(headers)
	if !m.Has(model.FieldProduct) {
		t.Fatalf("padded Drug Name should still match")
	}
	want := []string{" Drug Name ", "Weird   Col"}
	if !reflect.DeepEqual(m.Headers, want) {
		t.Fatalf("headers=%q, want %q", m.Headers, want)
	}

	var mce *MissingColumnsError
	if !errors.As(m.Validate(), &mce) {
		t.Fatalf("expected *MissingColumnsError")
	}
	if !reflect.DeepEqual(mce.Available, want) {
		t.Fatalf("available=%q, want %q", mce.Available, want)
	}
	if !strings.HasSuffix(mce.Error(), "Available columns in file:  Drug Name , Weird   Col") {
		t.Fatalf("message=%q", mce.Error())
	}
}
