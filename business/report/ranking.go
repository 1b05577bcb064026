package report

import (
	"sort"

	"mySalesDesk/domain"

	"github.com/shopspring/decimal"
)

type Metric string

const (
	MetricQuantity Metric = "quantity"
	// MetricRevenue ranks by discount-adjusted value
	MetricRevenue Metric = "revenue"
)

// TopBottom holds both ends of a ranked selection.
type TopBottom struct {
	Top    []domain.RankedSummary `json:"top"`
	Bottom []domain.RankedSummary `json:"bottom"`
}

func metricOf(s domain.Summary, m Metric) decimal.Decimal {
	if m == MetricRevenue {
		return s.SumAfterDiscount
	}

	return decimal.NewFromInt(s.TotalQuantity)
}

// SelectTopBottom ranks groups descending by metric (stable tie-break on
// key, ascending) and returns the groups within the top n and bottom n
// positions. Every group whose metric exactly equals the nth-from-top or
// nth-from-bottom boundary value is included as well, so genuine ties at
// the cutoff are never truncated.
func SelectTopBottom(groups []domain.Summary, m Metric, n int) TopBottom {
	if n <= 0 || len(groups) == 0 {
		return TopBottom{Top: []domain.RankedSummary{}, Bottom: []domain.RankedSummary{}}
	}

	sorted := make([]domain.Summary, len(groups))
	copy(sorted, groups)

	sort.SliceStable(sorted, func(i, j int) bool {
		vi, vj := metricOf(sorted[i], m), metricOf(sorted[j], m)
		if !vi.Equal(vj) {
			return vi.GreaterThan(vj)
		}
		return sorted[i].Key < sorted[j].Key
	})

	total := len(sorted)

	topIdx := n
	if topIdx > total {
		topIdx = total
	}
	topCut := metricOf(sorted[topIdx-1], m)

	bottomIdx := total - n
	if bottomIdx < 0 {
		bottomIdx = 0
	}
	bottomCut := metricOf(sorted[bottomIdx], m)

	res := TopBottom{
		Top:    make([]domain.RankedSummary, 0, topIdx),
		Bottom: make([]domain.RankedSummary, 0, total-bottomIdx),
	}

	for i, s := range sorted {
		v := metricOf(s, m)
		ranked := domain.RankedSummary{Rank: i + 1, Summary: s}

		if i < topIdx || v.Equal(topCut) {
			res.Top = append(res.Top, ranked)
		}

		if i >= bottomIdx || v.Equal(bottomCut) {
			res.Bottom = append(res.Bottom, ranked)
		}
	}

	return res
}

// RankProductsPerCategory partitions product rollups by category and ranks
// each partition by total quantity, RANK semantics: ties share a rank and
// the next distinct value skips ahead (1,2,2,4). Rows with rank <= k are
// returned, ordered by category then rank then product name.
func RankProductsPerCategory(products []domain.ProductSales, k int) []domain.ProductRank {
	if k <= 0 || len(products) == 0 {
		return []domain.ProductRank{}
	}

	partitions := make(map[string][]domain.ProductSales)
	for _, p := range products {
		partitions[p.Category] = append(partitions[p.Category], p)
	}

	categories := make([]string, 0, len(partitions))
	for cat := range partitions {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	var out []domain.ProductRank

	for _, cat := range categories {
		part := partitions[cat]

		sort.SliceStable(part, func(i, j int) bool {
			if part[i].TotalQuantity != part[j].TotalQuantity {
				return part[i].TotalQuantity > part[j].TotalQuantity
			}
			return part[i].ProductName < part[j].ProductName
		})

		rank := 1
		for i, p := range part {
			if i > 0 && p.TotalQuantity != part[i-1].TotalQuantity {
				rank = i + 1
			}

			if rank > k {
				break
			}

			out = append(out, domain.ProductRank{Rank: rank, ProductSales: p})
		}
	}

	if out == nil {
		out = []domain.ProductRank{}
	}

	return out
}
