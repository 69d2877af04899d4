package excel

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/snehapuri/formula-builder/internal/parser"
)

// Row 数据行（单元格已按表头对齐）
type Row struct {
	Number int      `json:"number"` // 文件中的行号（表头为第 1 行）
	Cells  []string `json:"cells"`
}

// Table 解析出的表格
type Table struct {
	Headers  []string `json:"headers"`
	Rows     []Row    `json:"rows"`
	Encoding string   `json:"encoding,omitempty"`
	Sheet    string   `json:"sheet,omitempty"`
}

// ReadOptions 读取选项
type ReadOptions struct {
	Comma rune   // CSV 分隔符，0 表示逗号
	Sheet string // 工作表名，空表示第一个
}

// Parser 表格解析器
type Parser struct {
	opts ReadOptions
}

// NewParser 创建解析器
func NewParser(opts ReadOptions) *Parser {
	return &Parser{opts: opts}
}

// Read 按格式读取表格
func (p *Parser) Read(format parser.FileFormat, data []byte) (*Table, error) {
	switch format {
	case parser.FormatCSV:
		return p.readCSV(data)
	case parser.FormatXLS, parser.FormatXLSX:
		return p.readWorkbook(data)
	}
	return nil, parser.ErrUnsupportedFileType
}

// readCSV 解析 CSV（自动识别编码）
func (p *Parser) readCSV(data []byte) (*Table, error) {
	decoded, encoding, err := DetectAndDecode(data)
	if err != nil {
		return nil, fmt.Errorf("encoding detection failed: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	if p.opts.Comma != 0 {
		reader.Comma = p.opts.Comma
	}

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty file: no header row found")
		}
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	table := &Table{Headers: headers, Rows: []Row{}, Encoding: encoding}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		line, _ := reader.FieldPos(0)
		table.appendRow(line, record)
	}

	return table, nil
}

// readWorkbook 解析工作簿的第一个（或指定）工作表
func (p *Parser) readWorkbook(data []byte) (*Table, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open excel: %w", err)
	}
	defer file.Close()

	sheet := p.opts.Sheet
	if sheet == "" {
		sheets := file.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, errors.New("empty sheet")
	}

	table := &Table{Headers: rows[0], Rows: []Row{}, Sheet: sheet}
	for i, row := range rows[1:] {
		table.appendRow(i+2, row)
	}

	return table, nil
}

// appendRow 对齐列数后追加数据行，整行为空则忽略
func (t *Table) appendRow(number int, cells []string) {
	blank := true
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			blank = false
			break
		}
	}
	if blank {
		return
	}

	aligned := make([]string, len(t.Headers))
	copy(aligned, cells)
	t.Rows = append(t.Rows, Row{Number: number, Cells: aligned})
}
