package model

import (
	"strconv"
	"strings"
)

// ValueKind 统一口径字段的取值类型
type ValueKind int

const (
	KindText     ValueKind = iota // 文本，缺省为 null
	KindCurrency                  // 金额，缺省 0.0
	KindCount                     // 数量，缺省 0
	KindPercent                   // 百分比（保留原文），缺省 "--"
	KindFlag                      // 标记，缺省为 null
)

// String 返回类型名称
func (k ValueKind) String() string {
	switch k {
	case KindCurrency:
		return "currency"
	case KindCount:
		return "count"
	case KindPercent:
		return "percentage"
	case KindFlag:
		return "flag"
	default:
		return "text"
	}
}

// DiscountSentinel 百分比字段缺失时的占位符
const DiscountSentinel = "--"

// 统一口径字段名（同时作为 JSON 键）
const (
	FieldProduct             = "Product"
	FieldManufacturer        = "Manufacturer"
	FieldDate                = "Date"
	FieldCustomer            = "Customer"
	FieldTransactionType     = "Transaction Type"
	FieldPrice               = "Price"
	FieldDiscount            = "Discount"
	FieldDiscountAmount      = "Discount Amount"
	FieldRebate              = "Rebate"
	FieldChargeback          = "Chargeback"
	FieldAdminFee            = "Admin Fee"
	FieldCompetitorPrice     = "Competitor Price"
	FieldQuantity            = "Quantity"
	FieldFreeGoods           = "Free Goods"
	FieldFreeGoodsAdjustment = "Free Goods Adjustment"
	FieldExcluded            = "Excluded"
	FieldRegulatoryLimit     = "Regulatory Limit"
	FieldEffectivePrice      = "Effective Price"
	FieldStatus              = "Status"
	FieldVolumeTierDiscount  = "Volume Tier Discount"
	FieldProfitMargin        = "Profit Margin"
	FieldMarketSegment       = "Market Segment"
	FieldTransactionID       = "Transaction ID"
)

// CustomerGovernment 政府客户类别
const CustomerGovernment = "Government"

// CanonicalRow 统一口径销售记录，所有字段恒存在
type CanonicalRow struct {
	Product         *string `json:"Product"`
	Manufacturer    *string `json:"Manufacturer"`
	Date            *string `json:"Date"`
	Customer        *string `json:"Customer"`
	TransactionType *string `json:"Transaction Type"`

	Price               float64 `json:"Price"`
	Discount            string  `json:"Discount"`
	DiscountAmount      float64 `json:"Discount Amount"`
	Rebate              float64 `json:"Rebate"`
	Chargeback          float64 `json:"Chargeback"`
	AdminFee            float64 `json:"Admin Fee"`
	CompetitorPrice     float64 `json:"Competitor Price"`
	Quantity            int     `json:"Quantity"`
	FreeGoods           int     `json:"Free Goods"`
	FreeGoodsAdjustment float64 `json:"Free Goods Adjustment"`
	Excluded            *string `json:"Excluded"`
	RegulatoryLimit     float64 `json:"Regulatory Limit"`
	EffectivePrice      float64 `json:"Effective Price"`
	Status              *string `json:"Status"`

	VolumeTierDiscount string  `json:"Volume Tier Discount"`
	ProfitMargin       string  `json:"Profit Margin"`
	MarketSegment      *string `json:"Market Segment"`
	TransactionID      *string `json:"Transaction ID"`
}

// NewCanonicalRow 创建按类型填充缺省值的记录
func NewCanonicalRow() CanonicalRow {
	return CanonicalRow{
		Discount:           DiscountSentinel,
		VolumeTierDiscount: DiscountSentinel,
		ProfitMargin:       DiscountSentinel,
	}
}

// CurrencyRef 返回金额字段的指针，字段不是金额类型时返回 nil
func (r *CanonicalRow) CurrencyRef(field string) *float64 {
	switch field {
	case FieldPrice:
		return &r.Price
	case FieldDiscountAmount:
		return &r.DiscountAmount
	case FieldRebate:
		return &r.Rebate
	case FieldChargeback:
		return &r.Chargeback
	case FieldAdminFee:
		return &r.AdminFee
	case FieldCompetitorPrice:
		return &r.CompetitorPrice
	case FieldFreeGoodsAdjustment:
		return &r.FreeGoodsAdjustment
	case FieldRegulatoryLimit:
		return &r.RegulatoryLimit
	case FieldEffectivePrice:
		return &r.EffectivePrice
	}
	return nil
}

// CountRef 返回数量字段的指针
func (r *CanonicalRow) CountRef(field string) *int {
	switch field {
	case FieldQuantity:
		return &r.Quantity
	case FieldFreeGoods:
		return &r.FreeGoods
	}
	return nil
}

// PercentRef 返回百分比字段的指针
func (r *CanonicalRow) PercentRef(field string) *string {
	switch field {
	case FieldDiscount:
		return &r.Discount
	case FieldVolumeTierDiscount:
		return &r.VolumeTierDiscount
	case FieldProfitMargin:
		return &r.ProfitMargin
	}
	return nil
}

// TextRef 返回文本/标记字段的指针
func (r *CanonicalRow) TextRef(field string) **string {
	switch field {
	case FieldProduct:
		return &r.Product
	case FieldManufacturer:
		return &r.Manufacturer
	case FieldDate:
		return &r.Date
	case FieldCustomer:
		return &r.Customer
	case FieldTransactionType:
		return &r.TransactionType
	case FieldExcluded:
		return &r.Excluded
	case FieldStatus:
		return &r.Status
	case FieldMarketSegment:
		return &r.MarketSegment
	case FieldTransactionID:
		return &r.TransactionID
	}
	return nil
}

// Text 读取文本字段，缺省返回空串
func Text(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StringPtr 返回字符串指针
func StringPtr(s string) *string {
	return &s
}

// Record 转换为以统一口径字段名为键的记录（计算接口的输入形态）
func (r CanonicalRow) Record() map[string]any {
	text := func(s *string) any {
		if s == nil {
			return nil
		}
		return *s
	}
	return map[string]any{
		FieldProduct:             text(r.Product),
		FieldManufacturer:        text(r.Manufacturer),
		FieldDate:                text(r.Date),
		FieldCustomer:            text(r.Customer),
		FieldTransactionType:     text(r.TransactionType),
		FieldPrice:               r.Price,
		FieldDiscount:            r.Discount,
		FieldDiscountAmount:      r.DiscountAmount,
		FieldRebate:              r.Rebate,
		FieldChargeback:          r.Chargeback,
		FieldAdminFee:            r.AdminFee,
		FieldCompetitorPrice:     r.CompetitorPrice,
		FieldQuantity:            r.Quantity,
		FieldFreeGoods:           r.FreeGoods,
		FieldFreeGoodsAdjustment: r.FreeGoodsAdjustment,
		FieldExcluded:            text(r.Excluded),
		FieldRegulatoryLimit:     r.RegulatoryLimit,
		FieldEffectivePrice:      r.EffectivePrice,
		FieldStatus:              text(r.Status),
		FieldVolumeTierDiscount:  r.VolumeTierDiscount,
		FieldProfitMargin:        r.ProfitMargin,
		FieldMarketSegment:       text(r.MarketSegment),
		FieldTransactionID:       text(r.TransactionID),
	}
}

// Key 返回整行取值的元组键（用于重复行判定）
func (r CanonicalRow) Key() string {
	var b strings.Builder
	text := func(s *string) {
		if s == nil {
			b.WriteString("\x00null")
		} else {
			b.WriteString(strconv.Quote(*s))
		}
		b.WriteByte('|')
	}
	num := func(f float64) {
		b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
		b.WriteByte('|')
	}
	str := func(s string) {
		b.WriteString(strconv.Quote(s))
		b.WriteByte('|')
	}

	text(r.Product)
	text(r.Manufacturer)
	text(r.Date)
	text(r.Customer)
	text(r.TransactionType)
	num(r.Price)
	str(r.Discount)
	num(r.DiscountAmount)
	num(r.Rebate)
	num(r.Chargeback)
	num(r.AdminFee)
	num(r.CompetitorPrice)
	num(float64(r.Quantity))
	num(float64(r.FreeGoods))
	num(r.FreeGoodsAdjustment)
	text(r.Excluded)
	num(r.RegulatoryLimit)
	num(r.EffectivePrice)
	text(r.Status)
	str(r.VolumeTierDiscount)
	str(r.ProfitMargin)
	text(r.MarketSegment)
	text(r.TransactionID)
	return b.String()
}
