package postgres

import (
	"context"
	"fmt"
	"time"

	"mySalesDesk/domain"

	"gorm.io/gorm"
)

type SalesDataRepository struct {
	DB *gorm.DB
}

func NewSalesDataRepository(db *gorm.DB) *SalesDataRepository {
	return &SalesDataRepository{
		DB: db,
	}
}

func (r *SalesDataRepository) FindAll(ctx context.Context) ([]domain.OrderLine, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var lines []domain.OrderLine
	if err := r.DB.WithContext(ctx).Find(&lines).Error; err != nil {
		return nil, fmt.Errorf("failed to find sales data: %w", err)
	}

	return lines, nil
}

func (r *SalesDataRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]domain.OrderLine, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var lines []domain.OrderLine
	err := r.DB.WithContext(ctx).
		Where("order_date >= ? AND order_date <= ?", from, to).
		Find(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find sales data by date range: %w", err)
	}

	return lines, nil
}
