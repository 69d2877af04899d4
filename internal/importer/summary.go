package importer

import (
	"github.com/snehapuri/formula-builder/internal/model"
	"github.com/snehapuri/formula-builder/internal/parser"
)

// Summarize 计算上传数据质量汇总
func Summarize(rows []model.CanonicalRow, mapping *parser.ColumnMapping) model.ValidationSummary {
	summary := model.ValidationSummary{
		TotalColumnsFound: len(mapping.Headers),
		ColumnsFound:      make([]string, len(mapping.Headers)),
	}
	copy(summary.ColumnsFound, mapping.Headers)

	hasDiscount := mapping.Has(model.FieldDiscount)
	occurrences := make(map[string]int, len(rows))

	for _, r := range rows {
		if hasDiscount && r.Discount == model.DiscountSentinel {
			summary.MissingDiscounts++
		}
		if r.Customer != nil && *r.Customer == model.CustomerGovernment {
			summary.GovtTransactions++
		}
		occurrences[r.Key()]++
	}

	// 重复行按参与重复的全部行计数
	for _, n := range occurrences {
		if n > 1 {
			summary.DuplicateTransactions += n
		}
	}

	return summary
}
