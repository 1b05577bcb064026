package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"mySalesDesk/domain"

	"github.com/shopspring/decimal"
)

// Expected header of a sales_data export. Column order is fixed.
var expectedHeader = []string{
	"order_id", "user_id", "product_name", "category",
	"order_date", "ship_date", "unit_price", "quantity",
	"discount", "review_score",
}

const dateLayout = "2006-01-02"

// SalesDataRepository serves order lines from a CSV export of the
// sales_data table. The file is parsed once at construction; the dataset
// is immutable input, so there is nothing to refresh.
type SalesDataRepository struct {
	lines []domain.OrderLine
}

func NewSalesDataRepository(path string) (*SalesDataRepository, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sales data csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	if len(header) != len(expectedHeader) {
		return nil, fmt.Errorf("unexpected csv header: got %d columns, want %d", len(header), len(expectedHeader))
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv records: %w", err)
	}

	lines := make([]domain.OrderLine, 0, len(records))
	for i, rec := range records {
		line, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", i+2, err)
		}
		lines = append(lines, line)
	}

	return &SalesDataRepository{lines: lines}, nil
}

func (r *SalesDataRepository) FindAll(ctx context.Context) ([]domain.OrderLine, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	out := make([]domain.OrderLine, len(r.lines))
	copy(out, r.lines)

	return out, nil
}

func (r *SalesDataRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]domain.OrderLine, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	out := make([]domain.OrderLine, 0)
	for _, line := range r.lines {
		if line.OrderDate.Before(from) || line.OrderDate.After(to) {
			continue
		}
		out = append(out, line)
	}

	return out, nil
}

func parseRecord(rec []string) (domain.OrderLine, error) {
	if len(rec) != len(expectedHeader) {
		return domain.OrderLine{}, fmt.Errorf("expected %d fields, got %d", len(expectedHeader), len(rec))
	}

	orderID, err := strconv.ParseInt(rec[0], 10, 64)
	if err != nil {
		return domain.OrderLine{}, fmt.Errorf("invalid order_id %q", rec[0])
	}

	userID, err := strconv.ParseInt(rec[1], 10, 64)
	if err != nil {
		return domain.OrderLine{}, fmt.Errorf("invalid user_id %q", rec[1])
	}

	orderDate, err := time.Parse(dateLayout, rec[4])
	if err != nil {
		return domain.OrderLine{}, fmt.Errorf("invalid order_date %q", rec[4])
	}

	shipDate, err := time.Parse(dateLayout, rec[5])
	if err != nil {
		return domain.OrderLine{}, fmt.Errorf("invalid ship_date %q", rec[5])
	}

	unitPrice, err := decimal.NewFromString(rec[6])
	if err != nil {
		return domain.OrderLine{}, fmt.Errorf("invalid unit_price %q", rec[6])
	}

	quantity, err := strconv.ParseInt(rec[7], 10, 64)
	if err != nil {
		return domain.OrderLine{}, fmt.Errorf("invalid quantity %q", rec[7])
	}

	discount, err := decimal.NewFromString(rec[8])
	if err != nil {
		return domain.OrderLine{}, fmt.Errorf("invalid discount %q", rec[8])
	}

	reviewScore, err := strconv.Atoi(rec[9])
	if err != nil {
		return domain.OrderLine{}, fmt.Errorf("invalid review_score %q", rec[9])
	}

	return domain.OrderLine{
		OrderID:     orderID,
		UserID:      userID,
		ProductName: rec[2],
		Category:    rec[3],
		OrderDate:   orderDate,
		ShipDate:    shipDate,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
		Discount:    discount,
		ReviewScore: reviewScore,
	}, nil
}
