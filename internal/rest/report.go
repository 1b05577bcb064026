package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"mySalesDesk/business/report"
	"mySalesDesk/domain"
	"mySalesDesk/pkg/logger"
	"mySalesDesk/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type (
	ReportHandler struct {
		validate      *validator.Validate
		reportService ReportService
		timeout       time.Duration
	}

	ReportService interface {
		Summarize(ctx context.Context, dim report.Dimension, rng report.DateRange) ([]domain.Summary, report.Stats, error)
		OrderValues(ctx context.Context) (domain.OrderValueReport, report.Stats, error)
		TopBottomCategories(ctx context.Context, n int, metric report.Metric) (report.TopBottom, report.Stats, error)
		TopProductsPerCategory(ctx context.Context, k int) ([]domain.ProductRank, report.Stats, error)
		CreateShareCode(reportName string) (string, time.Time, error)
		ResolveShareCode(code string) (string, error)
	}

	RangeQuery struct {
		From string `query:"from" validate:"omitempty,datetime=2006-01-02"`
		To   string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	}

	TopCategoriesQuery struct {
		N      int    `query:"n" validate:"omitempty,min=1"`
		Metric string `query:"metric" validate:"omitempty,oneof=quantity revenue"`
	}

	TopProductsQuery struct {
		K int `query:"k" validate:"omitempty,min=1"`
	}

	ShareRequest struct {
		Report string `json:"report" validate:"required"`
	}
)

func NewReportHandler(reportService ReportService) *ReportHandler {
	return &ReportHandler{
		validate:      validator.New(),
		reportService: reportService,
		timeout:       15 * time.Second,
	}
}

// ReportMeta travels with every report payload.
type ReportMeta struct {
	ReportID    string    `json:"report_id"`
	GeneratedAt time.Time `json:"generated_at"`
	TotalRows   int       `json:"total_rows"`
	SkippedRows int       `json:"skipped_rows"`
	CacheHit    bool      `json:"cache_hit"`
}

// SummaryRow is a Summary rendered for presentation: monetary figures
// rounded to 2 decimals only here, never before aggregation.
type SummaryRow struct {
	Key                string `json:"key"`
	Rows               int    `json:"rows"`
	TotalQuantity      int64  `json:"total_quantity"`
	SumBeforeDiscount  string `json:"sum_before_discount"`
	AvgBeforeDiscount  string `json:"avg_before_discount"`
	SumAfterDiscount   string `json:"sum_after_discount"`
	AvgAfterDiscount   string `json:"avg_after_discount"`
	TotalDiscountValue string `json:"total_discount_value"`
}

type RankedSummaryRow struct {
	Rank int `json:"rank"`
	SummaryRow
}

type ProductRankRow struct {
	Rank             int    `json:"rank"`
	Category         string `json:"category"`
	ProductName      string `json:"product_name"`
	TotalQuantity    int64  `json:"total_quantity"`
	SumAfterDiscount string `json:"sum_after_discount"`
}

type OrderValueRow struct {
	Orders                     int    `json:"orders"`
	AvgOrderValue              string `json:"avg_order_value"`
	AvgOrderValueAfterDiscount string `json:"avg_order_value_after_discount"`
}

func toSummaryRow(s domain.Summary) SummaryRow {
	return SummaryRow{
		Key:                s.Key,
		Rows:               s.Rows,
		TotalQuantity:      s.TotalQuantity,
		SumBeforeDiscount:  s.SumBeforeDiscount.StringFixed(2),
		AvgBeforeDiscount:  s.AvgBeforeDiscount.StringFixed(2),
		SumAfterDiscount:   s.SumAfterDiscount.StringFixed(2),
		AvgAfterDiscount:   s.AvgAfterDiscount.StringFixed(2),
		TotalDiscountValue: s.TotalDiscountValue.StringFixed(2),
	}
}

func toSummaryRows(summaries []domain.Summary) []SummaryRow {
	rows := make([]SummaryRow, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, toSummaryRow(s))
	}
	return rows
}

func toRankedRows(ranked []domain.RankedSummary) []RankedSummaryRow {
	rows := make([]RankedSummaryRow, 0, len(ranked))
	for _, r := range ranked {
		rows = append(rows, RankedSummaryRow{Rank: r.Rank, SummaryRow: toSummaryRow(r.Summary)})
	}
	return rows
}

func toProductRankRows(ranked []domain.ProductRank) []ProductRankRow {
	rows := make([]ProductRankRow, 0, len(ranked))
	for _, r := range ranked {
		rows = append(rows, ProductRankRow{
			Rank:             r.Rank,
			Category:         r.Category,
			ProductName:      r.ProductName,
			TotalQuantity:    r.TotalQuantity,
			SumAfterDiscount: r.SumAfterDiscount.StringFixed(2),
		})
	}
	return rows
}

func newMeta(stats report.Stats) ReportMeta {
	metrics.SkippedOrderLines.Add(float64(stats.SkippedRows))
	if stats.CacheHit {
		metrics.ReportCacheHits.Inc()
	}

	return ReportMeta{
		ReportID:    uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		TotalRows:   stats.TotalRows,
		SkippedRows: stats.SkippedRows,
		CacheHit:    stats.CacheHit,
	}
}

func (h *ReportHandler) GetCategorySummary(c echo.Context) error {
	return h.summaries(c, report.DimensionCategory, report.ShareCategories)
}

func (h *ReportHandler) GetDailySummary(c echo.Context) error {
	return h.summaries(c, report.DimensionOrderDate, report.ShareDaily)
}

func (h *ReportHandler) GetOrderSummary(c echo.Context) error {
	return h.summaries(c, report.DimensionOrderID, report.ShareOrders)
}

func (h *ReportHandler) GetProductSummary(c echo.Context) error {
	return h.summaries(c, report.DimensionProduct, report.ShareProducts)
}

func (h *ReportHandler) summaries(c echo.Context, dim report.Dimension, name string) error {
	timer := time.Now()
	defer func() { metrics.ReportLatency.Observe(time.Since(timer).Seconds()) }()

	var q RangeQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	rng, err := parseRange(q)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	rows, stats, err := h.reportService.Summarize(ctx, dim, rng)
	if err != nil {
		logger.Error("Failed to build summary report", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.ReportsServed.WithLabelValues(name).Inc()

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"meta": newMeta(stats),
		"rows": toSummaryRows(rows),
	}))
}

func (h *ReportHandler) GetOrderValues(c echo.Context) error {
	timer := time.Now()
	defer func() { metrics.ReportLatency.Observe(time.Since(timer).Seconds()) }()

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	rep, stats, err := h.reportService.OrderValues(ctx)
	if err != nil {
		logger.Error("Failed to build order value report", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.ReportsServed.WithLabelValues(report.ShareOrdersAverage).Inc()

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"meta": newMeta(stats),
		"report": OrderValueRow{
			Orders:                     rep.Orders,
			AvgOrderValue:              rep.AvgOrderValue.StringFixed(2),
			AvgOrderValueAfterDiscount: rep.AvgOrderValueAfterDiscount.StringFixed(2),
		},
	}))
}

func (h *ReportHandler) GetTopCategories(c echo.Context) error {
	timer := time.Now()
	defer func() { metrics.ReportLatency.Observe(time.Since(timer).Seconds()) }()

	var q TopCategoriesQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	ranked, stats, err := h.reportService.TopBottomCategories(ctx, q.N, report.Metric(q.Metric))
	if err != nil {
		logger.Error("Failed to build top categories report", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.ReportsServed.WithLabelValues(report.ShareTopCategories).Inc()

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"meta":   newMeta(stats),
		"top":    toRankedRows(ranked.Top),
		"bottom": toRankedRows(ranked.Bottom),
	}))
}

func (h *ReportHandler) GetTopProducts(c echo.Context) error {
	timer := time.Now()
	defer func() { metrics.ReportLatency.Observe(time.Since(timer).Seconds()) }()

	var q TopProductsQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	ranked, stats, err := h.reportService.TopProductsPerCategory(ctx, q.K)
	if err != nil {
		logger.Error("Failed to build top products report", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	metrics.ReportsServed.WithLabelValues(report.ShareTopProducts).Inc()

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"meta": newMeta(stats),
		"rows": toProductRankRows(ranked),
	}))
}

func (h *ReportHandler) ShareReport(c echo.Context) error {
	var req ShareRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	code, expAt, err := h.reportService.CreateShareCode(req.Report)
	if err != nil {
		logger.Error("Failed to create share code", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(map[string]interface{}{
		"code":       code,
		"expires_at": expAt,
	}))
}

// GetSharedReport serves a report referenced by a share code, no auth.
func (h *ReportHandler) GetSharedReport(c echo.Context) error {
	code := c.Param("code")

	name, err := h.reportService.ResolveShareCode(code)
	if err != nil {
		if errors.Is(err, report.ErrInvalidShareCode) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	switch name {
	case report.ShareCategories:
		return h.summaries(c, report.DimensionCategory, name)
	case report.ShareDaily:
		return h.summaries(c, report.DimensionOrderDate, name)
	case report.ShareOrders:
		return h.summaries(c, report.DimensionOrderID, name)
	case report.ShareProducts:
		return h.summaries(c, report.DimensionProduct, name)
	case report.ShareOrdersAverage:
		return h.GetOrderValues(c)
	case report.ShareTopCategories:
		return h.GetTopCategories(c)
	case report.ShareTopProducts:
		return h.GetTopProducts(c)
	default:
		return c.JSON(http.StatusNotFound, ResponseError{Message: "unknown report"})
	}
}

func parseRange(q RangeQuery) (report.DateRange, error) {
	if q.From == "" && q.To == "" {
		return report.DateRange{}, nil
	}

	if q.From == "" || q.To == "" {
		return report.DateRange{}, errors.New("from and to must be provided together")
	}

	from, err := time.Parse("2006-01-02", q.From)
	if err != nil {
		return report.DateRange{}, errors.New("invalid from date")
	}

	to, err := time.Parse("2006-01-02", q.To)
	if err != nil {
		return report.DateRange{}, errors.New("invalid to date")
	}

	if to.Before(from) {
		return report.DateRange{}, errors.New("to must not be before from")
	}

	return report.DateRange{From: from, To: to}, nil
}
