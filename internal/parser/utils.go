package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NormalizeColumnName 列名匹配键：仅去除 BOM 与首尾空白，内部空白原样保留
func NormalizeColumnName(name string) string {
	return strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
}

var errNegative = errors.New("negative value")

// ParseCurrency 解析金额，允许千分位与前导 $
func ParseCurrency(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid currency %q: %w", raw, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid currency %q: not finite", raw)
	}
	if f < 0 {
		return 0, fmt.Errorf("invalid currency %q: %w", raw, errNegative)
	}
	return f, nil
}

// ParseCount 解析数量，接受整数值的小数写法（如 "12.0"）
func ParseCount(raw string) (int, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if i, err := strconv.Atoi(s); err == nil {
		if i < 0 {
			return 0, fmt.Errorf("invalid count %q: %w", raw, errNegative)
		}
		return i, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q: %w", raw, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, fmt.Errorf("invalid count %q: not an integer", raw)
	}
	if f < 0 {
		return 0, fmt.Errorf("invalid count %q: %w", raw, errNegative)
	}
	return int(f), nil
}

// ToNumber 将 JSON 解码后的任意值转为数值；空值（null/""/0/false）视为 0
func ToNumber(v any) (float64, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return finite(x)
	case float32:
		return finite(float64(x))
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, fmt.Errorf("invalid number %q: %w", x.String(), err)
		}
		return finite(f)
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number %q: %w", x, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("invalid number %q: not finite", x)
		}
		return f, nil
	}
	return 0, fmt.Errorf("invalid number of type %T", v)
}

func finite(f float64) (float64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid number %v: not finite", f)
	}
	return f, nil
}
