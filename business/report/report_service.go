package report

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"mySalesDesk/business/enrichment"
	"mySalesDesk/domain"
	"mySalesDesk/pkg/logger"

	"github.com/shopspring/decimal"
)

// SalesDataRepository contract interface
type SalesDataRepository interface {
	FindAll(ctx context.Context) ([]domain.OrderLine, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]domain.OrderLine, error)
}

// ReportCache contract interface. Get reports a miss with found=false.
type ReportCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

type Dimension string

const (
	DimensionCategory  Dimension = "category"
	DimensionOrderDate Dimension = "order_date"
	DimensionOrderID   Dimension = "order_id"
	// DimensionProduct groups by (category, product_name)
	DimensionProduct Dimension = "product"
)

var ErrUnknownDimension = errors.New("unknown dimension")

// Stats describes how much of the dataset a report consumed.
type Stats struct {
	TotalRows   int  `json:"total_rows"`
	SkippedRows int  `json:"skipped_rows"`
	CacheHit    bool `json:"cache_hit"`
}

// DateRange is an optional order_date filter. Zero values mean unbounded.
type DateRange struct {
	From time.Time
	To   time.Time
}

func (r DateRange) isZero() bool {
	return r.From.IsZero() && r.To.IsZero()
}

func (r DateRange) cacheSuffix() string {
	if r.isZero() {
		return "all"
	}

	return r.From.Format("2006-01-02") + ":" + r.To.Format("2006-01-02")
}

const (
	DefaultTopN = 3
	DefaultTopK = 2
)

type ReportService struct {
	salesRepo SalesDataRepository
	cache     ReportCache
	cacheTTL  time.Duration
	shareKey  string
	shareTTL  time.Duration
}

func NewReportService(salesRepo SalesDataRepository, cache ReportCache, cacheTTL time.Duration, shareKey string, shareTTL time.Duration) *ReportService {
	return &ReportService{
		salesRepo: salesRepo,
		cache:     cache,
		cacheTTL:  cacheTTL,
		shareKey:  shareKey,
		shareTTL:  shareTTL,
	}
}

type summariesPayload struct {
	Rows  []domain.Summary `json:"rows"`
	Stats Stats            `json:"stats"`
}

// Summarize rolls enriched order lines up along one dimension. One Summary
// per distinct key; a key only exists with at least one member row, so
// averages never divide by zero. Empty input yields an empty result.
func (s *ReportService) Summarize(ctx context.Context, dim Dimension, rng DateRange) ([]domain.Summary, Stats, error) {
	keyFn, err := keyFuncFor(dim)
	if err != nil {
		return nil, Stats{}, err
	}

	cacheKey := fmt.Sprintf("report:%s:%s", dim, rng.cacheSuffix())

	var cached summariesPayload
	if s.cacheGet(ctx, cacheKey, &cached) {
		cached.Stats.CacheHit = true
		return cached.Rows, cached.Stats, nil
	}

	enriched, stats, err := s.loadEnriched(ctx, rng)
	if err != nil {
		return nil, Stats{}, err
	}

	rows := rollup(enriched, keyFn)

	if dim == DimensionOrderDate {
		sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	} else {
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].TotalQuantity != rows[j].TotalQuantity {
				return rows[i].TotalQuantity > rows[j].TotalQuantity
			}
			return rows[i].Key < rows[j].Key
		})
	}

	s.cacheSet(ctx, cacheKey, summariesPayload{Rows: rows, Stats: stats})

	return rows, stats, nil
}

// OrderValues groups by order_id and averages the per-order sums across
// all orders, the "average order value" semantics of the source reports.
func (s *ReportService) OrderValues(ctx context.Context) (domain.OrderValueReport, Stats, error) {
	enriched, stats, err := s.loadEnriched(ctx, DateRange{})
	if err != nil {
		return domain.OrderValueReport{}, Stats{}, err
	}

	perOrder := rollup(enriched, func(e domain.EnrichedOrderLine) string {
		return strconv.FormatInt(e.OrderID, 10)
	})

	if len(perOrder) == 0 {
		return domain.OrderValueReport{}, stats, nil
	}

	var sumBefore, sumAfter decimal.Decimal
	for _, o := range perOrder {
		sumBefore = sumBefore.Add(o.SumBeforeDiscount)
		sumAfter = sumAfter.Add(o.SumAfterDiscount)
	}

	orders := decimal.NewFromInt(int64(len(perOrder)))

	return domain.OrderValueReport{
		Orders:                     len(perOrder),
		AvgOrderValue:              sumBefore.Div(orders),
		AvgOrderValueAfterDiscount: sumAfter.Div(orders),
	}, stats, nil
}

// TopBottomCategories ranks category summaries by the chosen metric and
// returns the top and bottom n with boundary ties included.
func (s *ReportService) TopBottomCategories(ctx context.Context, n int, metric Metric) (TopBottom, Stats, error) {
	if n <= 0 {
		n = DefaultTopN
	}
	if metric == "" {
		metric = MetricQuantity
	}

	rows, stats, err := s.Summarize(ctx, DimensionCategory, DateRange{})
	if err != nil {
		return TopBottom{}, Stats{}, err
	}

	return SelectTopBottom(rows, metric, n), stats, nil
}

// TopProductsPerCategory returns, per category, the products ranked in the
// top k by summed quantity (RANK semantics, boundary ties all kept).
func (s *ReportService) TopProductsPerCategory(ctx context.Context, k int) ([]domain.ProductRank, Stats, error) {
	if k <= 0 {
		k = DefaultTopK
	}

	enriched, stats, err := s.loadEnriched(ctx, DateRange{})
	if err != nil {
		return nil, Stats{}, err
	}

	return RankProductsPerCategory(rollupProducts(enriched), k), stats, nil
}

func (s *ReportService) loadEnriched(ctx context.Context, rng DateRange) ([]domain.EnrichedOrderLine, Stats, error) {
	if err := ctx.Err(); err != nil {
		return nil, Stats{}, fmt.Errorf("context error: %w", err)
	}

	var (
		lines []domain.OrderLine
		err   error
	)

	if rng.isZero() {
		lines, err = s.salesRepo.FindAll(ctx)
	} else {
		lines, err = s.salesRepo.FindByDateRange(ctx, rng.From, rng.To)
	}
	if err != nil {
		logger.Error("Failed to load sales data", err)
		return nil, Stats{}, err
	}

	enriched, skipped := enrichment.EnrichAll(lines)
	if skipped > 0 {
		logger.Warn("Skipped malformed order lines", "skipped", skipped)
	}

	return enriched, Stats{TotalRows: len(lines), SkippedRows: skipped}, nil
}

func keyFuncFor(dim Dimension) (func(domain.EnrichedOrderLine) string, error) {
	switch dim {
	case DimensionCategory:
		return func(e domain.EnrichedOrderLine) string { return e.Category }, nil
	case DimensionOrderDate:
		return func(e domain.EnrichedOrderLine) string { return e.OrderDate.Format("2006-01-02") }, nil
	case DimensionOrderID:
		return func(e domain.EnrichedOrderLine) string { return strconv.FormatInt(e.OrderID, 10) }, nil
	case DimensionProduct:
		return func(e domain.EnrichedOrderLine) string { return e.Category + "/" + e.ProductName }, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDimension, dim)
	}
}

// rollup is the single aggregation pass shared by every report: exact-match
// grouping on the key, quantity and value sums, arithmetic-mean averages.
func rollup(enriched []domain.EnrichedOrderLine, keyFn func(domain.EnrichedOrderLine) string) []domain.Summary {
	type acc struct {
		rows          int
		totalQuantity int64
		sumBefore     decimal.Decimal
		sumAfter      decimal.Decimal
		totalDiscount decimal.Decimal
	}

	groups := make(map[string]*acc)
	order := make([]string, 0)

	for _, e := range enriched {
		key := keyFn(e)

		a, ok := groups[key]
		if !ok {
			a = &acc{}
			groups[key] = a
			order = append(order, key)
		}

		a.rows++
		a.totalQuantity += e.Quantity
		a.sumBefore = a.sumBefore.Add(e.OrderValueBeforeDiscount)
		a.sumAfter = a.sumAfter.Add(e.OrderValueAfterDiscount)
		a.totalDiscount = a.totalDiscount.Add(e.TotalDiscountValue)
	}

	out := make([]domain.Summary, 0, len(groups))
	for _, key := range order {
		a := groups[key]
		rows := decimal.NewFromInt(int64(a.rows))

		out = append(out, domain.Summary{
			Key:                key,
			Rows:               a.rows,
			TotalQuantity:      a.totalQuantity,
			SumBeforeDiscount:  a.sumBefore,
			AvgBeforeDiscount:  a.sumBefore.Div(rows),
			SumAfterDiscount:   a.sumAfter,
			AvgAfterDiscount:   a.sumAfter.Div(rows),
			TotalDiscountValue: a.totalDiscount,
		})
	}

	return out
}

func rollupProducts(enriched []domain.EnrichedOrderLine) []domain.ProductSales {
	type key struct{ category, product string }

	groups := make(map[key]*domain.ProductSales)
	order := make([]key, 0)

	for _, e := range enriched {
		k := key{category: e.Category, product: e.ProductName}

		p, ok := groups[k]
		if !ok {
			p = &domain.ProductSales{Category: e.Category, ProductName: e.ProductName}
			groups[k] = p
			order = append(order, k)
		}

		p.Rows++
		p.TotalQuantity += e.Quantity
		p.SumAfterDiscount = p.SumAfterDiscount.Add(e.OrderValueAfterDiscount)
	}

	out := make([]domain.ProductSales, 0, len(groups))
	for _, k := range order {
		out = append(out, *groups[k])
	}

	return out
}

func (s *ReportService) cacheGet(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}

	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		logger.Warn("Report cache read failed", err)
		return false
	}

	return found
}

func (s *ReportService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		logger.Warn("Report cache write failed", err)
	}
}
