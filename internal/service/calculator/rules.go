package calculator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/snehapuri/formula-builder/internal/model"
	"github.com/snehapuri/formula-builder/internal/parser"
)

var hundred = decimal.NewFromInt(100)

var errNilRecord = errors.New("record is null")

// EffectivePrice 折后价 = 销售额 × (1 - 折扣率/100)
func EffectivePrice(totalSales, discountPercentage float64) decimal.Decimal {
	rate := decimal.NewFromFloat(discountPercentage).Div(hundred)
	return decimal.NewFromFloat(totalSales).Mul(decimal.NewFromInt(1).Sub(rate))
}

// ComplianceStatus 折后价不超过监管限价即合规
func ComplianceStatus(effective decimal.Decimal, regulatoryLimit float64) string {
	if effective.LessThanOrEqual(decimal.NewFromFloat(regulatoryLimit)) {
		return model.StatusCompliant
	}
	return model.StatusNonCompliant
}

// discountValue 折扣率；占位符 "--" 视为 0
func discountValue(v any) (float64, error) {
	if s, ok := v.(string); ok && strings.TrimSpace(s) == model.DiscountSentinel {
		return 0, nil
	}
	return parser.ToNumber(v)
}

// EvaluateRow 按固定口径计算单行；公式字符串仅回显
func EvaluateRow(rec map[string]any, formulaString string) (model.CalculationResult, error) {
	if rec == nil {
		return model.CalculationResult{}, errNilRecord
	}
	totalSales, err := parser.ToNumber(rec[model.FieldPrice])
	if err != nil {
		return model.CalculationResult{}, fmt.Errorf("%s: %w", model.FieldPrice, err)
	}
	discount, err := discountValue(rec[model.FieldDiscount])
	if err != nil {
		return model.CalculationResult{}, fmt.Errorf("%s: %w", model.FieldDiscount, err)
	}
	limit, err := parser.ToNumber(rec[model.FieldRegulatoryLimit])
	if err != nil {
		return model.CalculationResult{}, fmt.Errorf("%s: %w", model.FieldRegulatoryLimit, err)
	}

	effective := EffectivePrice(totalSales, discount)
	calculated, _ := effective.Float64()

	return model.CalculationResult{
		Product:          rec[model.FieldProduct],
		Price:            totalSales,
		CalculatedPrice:  calculated,
		RegulatoryLimit:  limit,
		Discount:         rec[model.FieldDiscount],
		ComplianceStatus: ComplianceStatus(effective, limit),
		FormulaUsed:      formulaString,
	}, nil
}
