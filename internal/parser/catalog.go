package parser

import "github.com/snehapuri/formula-builder/internal/model"

// CatalogEntry 可识别的源列及其统一口径字段
type CatalogEntry struct {
	Source string          `json:"source"`
	Field  string          `json:"field"`
	Kind   model.ValueKind `json:"kind"`
}

// 必需的源列
const (
	ColumnDrugName   = "Drug Name"
	ColumnTotalSales = "Total Sales (USD)"
	ColumnDiscount   = "Discount Percentage (%)"
)

// RequiredColumns 导入所需的最小列集合
var RequiredColumns = []string{ColumnDrugName, ColumnTotalSales, ColumnDiscount}

var catalog = []CatalogEntry{
	{ColumnDrugName, model.FieldProduct, model.KindText},
	{"Manufacturer", model.FieldManufacturer, model.KindText},
	{"Sales Year", model.FieldDate, model.KindText},
	{"Customer Category", model.FieldCustomer, model.KindText},
	{"Sales Region", model.FieldTransactionType, model.KindText},
	{ColumnTotalSales, model.FieldPrice, model.KindCurrency},
	{ColumnDiscount, model.FieldDiscount, model.KindPercent},
	{"Discount Amount (USD)", model.FieldDiscountAmount, model.KindCurrency},
	{"Rebate Amount (USD)", model.FieldRebate, model.KindCurrency},
	{"Chargeback Amount (USD)", model.FieldChargeback, model.KindCurrency},
	{"Administrative Fee (USD)", model.FieldAdminFee, model.KindCurrency},
	{"Competitor Price (USD)", model.FieldCompetitorPrice, model.KindCurrency},
	{"Units Sold", model.FieldQuantity, model.KindCount},
	{"Free Goods Quantity", model.FieldFreeGoods, model.KindCount},
	{"Free Goods Adjustment (USD)", model.FieldFreeGoodsAdjustment, model.KindCurrency},
	{"Exclusion Flag", model.FieldExcluded, model.KindFlag},
	{"Regulatory Price Limit (USD)", model.FieldRegulatoryLimit, model.KindCurrency},
	{"Effective Price After Discounts (USD)", model.FieldEffectivePrice, model.KindCurrency},
	{"Pricing Compliance Status", model.FieldStatus, model.KindText},
	{"Volume Tier Discount (%)", model.FieldVolumeTierDiscount, model.KindPercent},
	{"Profit Margin (%)", model.FieldProfitMargin, model.KindPercent},
	{"Market Segment", model.FieldMarketSegment, model.KindText},
	{"Transaction ID", model.FieldTransactionID, model.KindText},
}

var catalogBySource = func() map[string]CatalogEntry {
	m := make(map[string]CatalogEntry, len(catalog))
	for _, e := range catalog {
		m[e.Source] = e
	}
	return m
}()

// Lookup 按源列名查找统一口径字段
func Lookup(source string) (CatalogEntry, bool) {
	e, ok := catalogBySource[source]
	return e, ok
}

// Catalog 返回完整目录（按模板列顺序）
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, len(catalog))
	copy(out, catalog)
	return out
}
