package domain

import "github.com/shopspring/decimal"

// Summary is one aggregated row for a grouping dimension. Key is the
// rendered dimension value ("Beauty", "2024-03-01", "1042", "Home/Sofa").
// Monetary figures keep full precision; rounding happens at presentation.
type Summary struct {
	Key                string          `json:"key"`
	Rows               int             `json:"rows"`
	TotalQuantity      int64           `json:"total_quantity"`
	SumBeforeDiscount  decimal.Decimal `json:"sum_before_discount"`
	AvgBeforeDiscount  decimal.Decimal `json:"avg_before_discount"`
	SumAfterDiscount   decimal.Decimal `json:"sum_after_discount"`
	AvgAfterDiscount   decimal.Decimal `json:"avg_after_discount"`
	TotalDiscountValue decimal.Decimal `json:"total_discount_value"`
}

// RankedSummary is a Summary with its 1-based position after sorting
// descending by the ranking metric.
type RankedSummary struct {
	Rank int `json:"rank"`
	Summary
}

// ProductSales is the per (category, product) rollup used for in-category
// product rankings.
type ProductSales struct {
	Category         string          `json:"category"`
	ProductName      string          `json:"product_name"`
	Rows             int             `json:"rows"`
	TotalQuantity    int64           `json:"total_quantity"`
	SumAfterDiscount decimal.Decimal `json:"sum_after_discount"`
}

// ProductRank is a ProductSales row ranked within its category by total
// quantity, RANK semantics (ties share a rank, the next distinct value
// skips ahead).
type ProductRank struct {
	Rank int `json:"rank"`
	ProductSales
}

// OrderValueReport averages per-order value sums across all orders.
type OrderValueReport struct {
	Orders                     int             `json:"orders"`
	AvgOrderValue              decimal.Decimal `json:"avg_order_value"`
	AvgOrderValueAfterDiscount decimal.Decimal `json:"avg_order_value_after_discount"`
}
