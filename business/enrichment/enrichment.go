package enrichment

import (
	"errors"
	"fmt"

	"mySalesDesk/domain"

	"github.com/shopspring/decimal"
)

// ErrMalformedLine marks an order line whose price, quantity or discount
// cannot produce meaningful financial fields. Callers skip these rows.
var ErrMalformedLine = errors.New("malformed order line")

var oneHundred = decimal.NewFromInt(100)

// Enrich derives the discount-adjusted financial fields for one order line.
// Pure, no side effects. Aggregates downstream keep full precision; rounding
// to 2 decimals is presentation-time only.
func Enrich(line domain.OrderLine) (domain.EnrichedOrderLine, error) {
	if line.UnitPrice.IsNegative() {
		return domain.EnrichedOrderLine{}, fmt.Errorf("%w: negative unit_price on order %d", ErrMalformedLine, line.OrderID)
	}

	if line.Quantity < 0 {
		return domain.EnrichedOrderLine{}, fmt.Errorf("%w: negative quantity on order %d", ErrMalformedLine, line.OrderID)
	}

	if line.Discount.IsNegative() || line.Discount.GreaterThan(oneHundred) {
		return domain.EnrichedOrderLine{}, fmt.Errorf("%w: discount out of [0,100] on order %d", ErrMalformedLine, line.OrderID)
	}

	qty := decimal.NewFromInt(line.Quantity)

	before := line.UnitPrice.Mul(qty)
	discountPerItem := line.UnitPrice.Mul(line.Discount).Div(oneHundred)
	perUnitAfter := line.UnitPrice.Sub(discountPerItem)
	totalDiscount := discountPerItem.Mul(qty)
	after := before.Sub(totalDiscount)

	return domain.EnrichedOrderLine{
		OrderLine:                 line,
		OrderValueBeforeDiscount:  before,
		DiscountPerItem:           discountPerItem,
		ValuePerUnitAfterDiscount: perUnitAfter,
		OrderValueAfterDiscount:   after,
		TotalDiscountValue:        totalDiscount,
	}, nil
}

// EnrichAll enriches every well-formed line and reports how many were
// skipped as malformed. A bad row never aborts the batch.
func EnrichAll(lines []domain.OrderLine) ([]domain.EnrichedOrderLine, int) {
	enriched := make([]domain.EnrichedOrderLine, 0, len(lines))
	skipped := 0

	for _, line := range lines {
		e, err := Enrich(line)
		if err != nil {
			skipped++
			continue
		}
		enriched = append(enriched, e)
	}

	return enriched, skipped
}
