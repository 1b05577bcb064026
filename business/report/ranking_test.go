package report

import (
	"testing"

	"mySalesDesk/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summary(key string, qty int64, revenue string) domain.Summary {
	return domain.Summary{
		Key:              key,
		Rows:             1,
		TotalQuantity:    qty,
		SumAfterDiscount: decimal.RequireFromString(revenue),
	}
}

func keysOf(rows []domain.RankedSummary) []string {
	keys := make([]string, 0, len(rows))
	for _, r := range rows {
		keys = append(keys, r.Key)
	}
	return keys
}

func TestSelectTopBottomTieAtMaximum(t *testing.T) {
	// two categories tied for max: n=1 must return both
	groups := []domain.Summary{
		summary("Beauty", 400, "100"),
		summary("Electronics", 400, "100"),
		summary("Clothing", 250, "100"),
	}

	res := SelectTopBottom(groups, MetricQuantity, 1)

	assert.Equal(t, []string{"Beauty", "Electronics"}, keysOf(res.Top))
	assert.Equal(t, 1, res.Top[0].Rank)
	assert.Equal(t, 2, res.Top[1].Rank)

	assert.Equal(t, []string{"Clothing"}, keysOf(res.Bottom))
	assert.Equal(t, 3, res.Bottom[0].Rank)
}

func TestSelectTopBottomBoundaryTieAtCutoff(t *testing.T) {
	groups := []domain.Summary{
		summary("A", 10, "0"),
		summary("B", 8, "0"),
		summary("C", 8, "0"),
		summary("D", 5, "0"),
	}

	res := SelectTopBottom(groups, MetricQuantity, 2)

	// rank 2 is an 8; the other 8 joins via boundary equality
	assert.Equal(t, []string{"A", "B", "C"}, keysOf(res.Top))
	// rank 3 from bottom is also an 8, so the tied 8 joins here too
	assert.Equal(t, []string{"B", "C", "D"}, keysOf(res.Bottom))
}

func TestSelectTopBottomTieAtBottom(t *testing.T) {
	groups := []domain.Summary{
		summary("A", 10, "0"),
		summary("B", 3, "0"),
		summary("C", 3, "0"),
	}

	res := SelectTopBottom(groups, MetricQuantity, 1)

	assert.Equal(t, []string{"A"}, keysOf(res.Top))
	assert.Equal(t, []string{"B", "C"}, keysOf(res.Bottom))
}

func TestSelectTopBottomByRevenue(t *testing.T) {
	groups := []domain.Summary{
		summary("A", 1, "99.99"),
		summary("B", 500, "10.00"),
		summary("C", 2, "55.50"),
	}

	res := SelectTopBottom(groups, MetricRevenue, 1)

	require.Len(t, res.Top, 1)
	assert.Equal(t, "A", res.Top[0].Key)
	require.Len(t, res.Bottom, 1)
	assert.Equal(t, "B", res.Bottom[0].Key)
}

func TestSelectTopBottomNExceedsGroupCount(t *testing.T) {
	groups := []domain.Summary{
		summary("A", 2, "0"),
		summary("B", 1, "0"),
	}

	res := SelectTopBottom(groups, MetricQuantity, 10)

	assert.Len(t, res.Top, 2)
	assert.Len(t, res.Bottom, 2)
}

func TestSelectTopBottomDegenerateInput(t *testing.T) {
	assert.Empty(t, SelectTopBottom(nil, MetricQuantity, 3).Top)
	assert.Empty(t, SelectTopBottom([]domain.Summary{summary("A", 1, "0")}, MetricQuantity, 0).Top)
}

func product(category, name string, qty int64) domain.ProductSales {
	return domain.ProductSales{
		Category:      category,
		ProductName:   name,
		Rows:          1,
		TotalQuantity: qty,
	}
}

func TestRankProductsPerCategoryRankSemantics(t *testing.T) {
	// three-way shape from the Home category: 81, 76, 76 -> ranks 1, 2, 2
	products := []domain.ProductSales{
		product("Home", "Sofa", 76),
		product("Home", "Table", 81),
		product("Home", "Chair", 76),
		product("Home", "Lamp", 60),
	}

	ranked := RankProductsPerCategory(products, 2)

	require.Len(t, ranked, 3)
	assert.Equal(t, "Table", ranked[0].ProductName)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, "Chair", ranked[1].ProductName)
	assert.Equal(t, 2, ranked[1].Rank)
	assert.Equal(t, "Sofa", ranked[2].ProductName)
	assert.Equal(t, 2, ranked[2].Rank)
}

func TestRankProductsPerCategoryGapAfterTie(t *testing.T) {
	products := []domain.ProductSales{
		product("Home", "Table", 81),
		product("Home", "Chair", 76),
		product("Home", "Sofa", 76),
		product("Home", "Lamp", 60),
	}

	ranked := RankProductsPerCategory(products, 4)

	require.Len(t, ranked, 4)
	// RANK semantics: after the tie at 2, the next distinct value gets 4
	assert.Equal(t, 4, ranked[3].Rank)
	assert.Equal(t, "Lamp", ranked[3].ProductName)
}

func TestRankProductsPerCategoryPartitionsIndependently(t *testing.T) {
	products := []domain.ProductSales{
		product("Home", "Table", 81),
		product("Home", "Chair", 76),
		product("Beauty", "Lipstick", 200),
		product("Beauty", "Mascara", 150),
		product("Beauty", "Serum", 90),
	}

	ranked := RankProductsPerCategory(products, 2)

	require.Len(t, ranked, 4)
	// categories come out sorted, each with its own rank 1
	assert.Equal(t, "Beauty", ranked[0].Category)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, "Lipstick", ranked[0].ProductName)
	assert.Equal(t, "Home", ranked[2].Category)
	assert.Equal(t, 1, ranked[2].Rank)
	assert.Equal(t, "Table", ranked[2].ProductName)
}

func TestRankProductsPerCategoryDegenerateInput(t *testing.T) {
	assert.Empty(t, RankProductsPerCategory(nil, 2))
	assert.Empty(t, RankProductsPerCategory([]domain.ProductSales{product("Home", "Table", 1)}, 0))
}
