package enrichment

import (
	"testing"

	"mySalesDesk/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(price string, qty int64, discount string) domain.OrderLine {
	return domain.OrderLine{
		OrderID:     1001,
		UserID:      7,
		ProductName: "Desk Lamp",
		Category:    "Home",
		UnitPrice:   decimal.RequireFromString(price),
		Quantity:    qty,
		Discount:    decimal.RequireFromString(discount),
	}
}

func TestEnrichDerivedFields(t *testing.T) {
	e, err := Enrich(line("100.00", 15, "10"))
	require.NoError(t, err)

	assert.True(t, e.OrderValueBeforeDiscount.Equal(decimal.RequireFromString("1500")), "before: %s", e.OrderValueBeforeDiscount)
	assert.True(t, e.DiscountPerItem.Equal(decimal.RequireFromString("10")), "per item: %s", e.DiscountPerItem)
	assert.True(t, e.ValuePerUnitAfterDiscount.Equal(decimal.RequireFromString("90")), "per unit after: %s", e.ValuePerUnitAfterDiscount)
	assert.True(t, e.TotalDiscountValue.Equal(decimal.RequireFromString("150")), "total discount: %s", e.TotalDiscountValue)
	assert.True(t, e.OrderValueAfterDiscount.Equal(decimal.RequireFromString("1350")), "after: %s", e.OrderValueAfterDiscount)
}

func TestEnrichInvariantAfterPlusDiscountEqualsBefore(t *testing.T) {
	cases := []domain.OrderLine{
		line("100.00", 15, "10"),
		line("582.73", 4, "10"),
		line("42.03", 3, "20"),
		line("19.99", 7, "12.5"),
		line("0", 0, "0"),
		line("3.33", 1000, "33.33"),
	}

	tolerance := decimal.RequireFromString("0.01")

	for _, c := range cases {
		e, err := Enrich(c)
		require.NoError(t, err)

		diff := e.OrderValueAfterDiscount.
			Add(e.TotalDiscountValue).
			Sub(e.OrderValueBeforeDiscount).
			Abs()

		assert.True(t, diff.LessThanOrEqual(tolerance),
			"invariant violated for price=%s qty=%d discount=%s: diff=%s",
			c.UnitPrice, c.Quantity, c.Discount, diff)
	}
}

func TestEnrichRejectsMalformedLines(t *testing.T) {
	cases := map[string]domain.OrderLine{
		"negative price":    line("-1.00", 5, "10"),
		"negative quantity": line("10.00", -5, "10"),
		"negative discount": line("10.00", 5, "-1"),
		"discount over 100": line("10.00", 5, "100.01"),
	}

	for name, c := range cases {
		_, err := Enrich(c)
		assert.ErrorIs(t, err, ErrMalformedLine, name)
	}
}

func TestEnrichAcceptsBoundaryValues(t *testing.T) {
	for _, c := range []domain.OrderLine{
		line("0", 0, "0"),
		line("10.00", 5, "100"),
	} {
		_, err := Enrich(c)
		assert.NoError(t, err)
	}
}

func TestEnrichAllSkipsAndCounts(t *testing.T) {
	lines := []domain.OrderLine{
		line("100.00", 2, "10"),
		line("-5.00", 2, "10"),
		line("50.00", 1, "0"),
		line("50.00", 1, "130"),
	}

	enriched, skipped := EnrichAll(lines)

	assert.Len(t, enriched, 2)
	assert.Equal(t, 2, skipped)
}

func TestEnrichAllEmptyInput(t *testing.T) {
	enriched, skipped := EnrichAll(nil)

	assert.Empty(t, enriched)
	assert.Zero(t, skipped)
}
