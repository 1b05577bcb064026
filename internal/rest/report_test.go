package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mySalesDesk/business/report"
	"mySalesDesk/domain"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReportService struct {
	summaries  []domain.Summary
	orderValue domain.OrderValueReport
	topBottom  report.TopBottom
	ranked     []domain.ProductRank
	shareName  string
	shareErr   error
}

func (s *stubReportService) Summarize(ctx context.Context, dim report.Dimension, rng report.DateRange) ([]domain.Summary, report.Stats, error) {
	return s.summaries, report.Stats{TotalRows: len(s.summaries)}, nil
}

func (s *stubReportService) OrderValues(ctx context.Context) (domain.OrderValueReport, report.Stats, error) {
	return s.orderValue, report.Stats{}, nil
}

func (s *stubReportService) TopBottomCategories(ctx context.Context, n int, metric report.Metric) (report.TopBottom, report.Stats, error) {
	return s.topBottom, report.Stats{}, nil
}

func (s *stubReportService) TopProductsPerCategory(ctx context.Context, k int) ([]domain.ProductRank, report.Stats, error) {
	return s.ranked, report.Stats{}, nil
}

func (s *stubReportService) CreateShareCode(reportName string) (string, time.Time, error) {
	return "code123", time.Now().Add(time.Hour), nil
}

func (s *stubReportService) ResolveShareCode(code string) (string, error) {
	return s.shareName, s.shareErr
}

func doRequest(handler echo.HandlerFunc, target string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler(c)

	return rec
}

func TestGetCategorySummaryRendersRoundedValues(t *testing.T) {
	svc := &stubReportService{
		summaries: []domain.Summary{{
			Key:                "Beauty",
			Rows:               2,
			TotalQuantity:      413,
			SumBeforeDiscount:  decimal.RequireFromString("7325.004"),
			AvgBeforeDiscount:  decimal.RequireFromString("3662.502"),
			SumAfterDiscount:   decimal.RequireFromString("7058.754"),
			AvgAfterDiscount:   decimal.RequireFromString("3529.377"),
			TotalDiscountValue: decimal.RequireFromString("266.25"),
		}},
	}
	h := NewReportHandler(svc)

	rec := doRequest(h.GetCategorySummary, "/api/v1/reports/categories")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"Beauty"`)
	assert.Contains(t, body, `"7325.00"`)
	assert.Contains(t, body, `"3529.38"`)
	assert.NotContains(t, body, "7325.004", "full precision must not leak out")
}

func TestGetCategorySummaryRejectsHalfOpenRange(t *testing.T) {
	h := NewReportHandler(&stubReportService{})

	rec := doRequest(h.GetCategorySummary, "/api/v1/reports/categories?from=2024-03-01")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCategorySummaryRejectsInvertedRange(t *testing.T) {
	h := NewReportHandler(&stubReportService{})

	rec := doRequest(h.GetCategorySummary, "/api/v1/reports/categories?from=2024-03-05&to=2024-03-01")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrderValuesRendersTwoDecimals(t *testing.T) {
	svc := &stubReportService{
		orderValue: domain.OrderValueReport{
			Orders:                     3,
			AvgOrderValue:              decimal.RequireFromString("1485.67"),
			AvgOrderValueAfterDiscount: decimal.RequireFromString("1332.9"),
		},
	}
	h := NewReportHandler(svc)

	rec := doRequest(h.GetOrderValues, "/api/v1/reports/orders/average")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"1485.67"`)
	assert.Contains(t, rec.Body.String(), `"1332.90"`)
}

func TestGetTopCategoriesValidatesMetric(t *testing.T) {
	h := NewReportHandler(&stubReportService{})

	rec := doRequest(h.GetTopCategories, "/api/v1/reports/categories/top?metric=vibes")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTopProductsValidatesK(t *testing.T) {
	h := NewReportHandler(&stubReportService{})

	rec := doRequest(h.GetTopProducts, "/api/v1/reports/products/top?k=-1")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSharedReportInvalidCode(t *testing.T) {
	h := NewReportHandler(&stubReportService{shareErr: report.ErrInvalidShareCode})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/shared/bogus", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("code")
	c.SetParamValues("bogus")

	_ = h.GetSharedReport(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetSharedReportServesNamedReport(t *testing.T) {
	svc := &stubReportService{
		shareName: report.ShareOrdersAverage,
		orderValue: domain.OrderValueReport{
			Orders:        1,
			AvgOrderValue: decimal.RequireFromString("10"),
		},
	}
	h := NewReportHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/shared/code123", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("code")
	c.SetParamValues("code123")

	_ = h.GetSharedReport(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"10.00"`)
}
