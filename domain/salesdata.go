package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CREATE TABLE public.sales_data (
//     id            BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     order_id      BIGINT,
//     user_id       BIGINT,
//     product_name  TEXT,
//     category      TEXT,
//     order_date    DATE,
//     ship_date     DATE,
//     unit_price    NUMERIC,
//     quantity      BIGINT,
//     discount      NUMERIC,
//     review_score  INT
// );

// OrderLine is one product/quantity entry within a customer order.
// An order_id may span multiple lines.
type OrderLine struct {
	ID          uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     int64           `gorm:"column:order_id" json:"order_id"`
	UserID      int64           `gorm:"column:user_id" json:"user_id"`
	ProductName string          `gorm:"column:product_name;type:text" json:"product_name"`
	Category    string          `gorm:"column:category;type:text" json:"category"`
	OrderDate   time.Time       `gorm:"column:order_date;type:date" json:"order_date"`
	ShipDate    time.Time       `gorm:"column:ship_date;type:date" json:"ship_date"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric" json:"unit_price"`
	Quantity    int64           `gorm:"column:quantity" json:"quantity"`
	Discount    decimal.Decimal `gorm:"column:discount;type:numeric" json:"discount"`
	ReviewScore int             `gorm:"column:review_score" json:"review_score"`
}

func (OrderLine) TableName() string {
	return "sales_data"
}

// EnrichedOrderLine is the discount-adjusted projection of an OrderLine.
// Computed on demand, never persisted.
// Invariant: OrderValueAfterDiscount + TotalDiscountValue == OrderValueBeforeDiscount.
type EnrichedOrderLine struct {
	OrderLine

	OrderValueBeforeDiscount  decimal.Decimal `json:"order_value_before_discount"`
	DiscountPerItem           decimal.Decimal `json:"discount_per_item"`
	ValuePerUnitAfterDiscount decimal.Decimal `json:"value_per_unit_after_discount"`
	OrderValueAfterDiscount   decimal.Decimal `json:"order_value_after_discount"`
	TotalDiscountValue        decimal.Decimal `json:"total_discount_value"`
}
