package parser

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnsupportedFileType    = errors.New("invalid file format. Please upload a CSV, XLS, or XLSX file")
	ErrFileParse              = errors.New("error reading file")
	ErrMissingRequiredColumns = errors.New("missing required columns")
	ErrNoValidRows            = errors.New("no valid data could be processed from the file")
)

// MissingColumnsError 缺少必需列
type MissingColumnsError struct {
	Missing   []string
	Available []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("Missing required columns: %s\nAvailable columns in file: %s",
		strings.Join(e.Missing, ", "), strings.Join(e.Available, ", "))
}

func (e *MissingColumnsError) Unwrap() error { return ErrMissingRequiredColumns }

// FileParseError 文件内容无法解析
type FileParseError struct {
	Filename string
	Err      error
}

func (e *FileParseError) Error() string {
	return fmt.Sprintf("Error reading file: %v", e.Err)
}

func (e *FileParseError) Unwrap() []error { return []error{ErrFileParse, e.Err} }
