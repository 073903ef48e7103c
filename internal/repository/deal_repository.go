package repository

import (
	"context"
	"time"

	"github.com/ledgerlane/crm-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DealRepository handles database operations for deals.
//
// Index recommendations for the forecast queries:
// - CREATE INDEX idx_deals_expected_close_date ON deals(expected_close_date);
// - CREATE INDEX idx_deals_created_at ON deals(created_at);
// - CREATE INDEX idx_deals_stage ON deals(stage);
type DealRepository struct {
	db *gorm.DB
}

func NewDealRepository(db *gorm.DB) *DealRepository {
	return &DealRepository{db: db}
}

func (r *DealRepository) Create(ctx context.Context, deal *domain.Deal) error {
	// Omit associations to avoid GORM trying to upsert related records
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(deal).Error
}

// AddProduct attaches a product line item to a deal
func (r *DealRepository) AddProduct(ctx context.Context, line *domain.DealProduct) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(line).Error
}

// ListInRange returns deals whose expected close date or creation date falls
// within the inclusive range, with company, assignee, creator and product
// line items loaded.
func (r *DealRepository) ListInRange(ctx context.Context, rng domain.DateRange) ([]domain.Deal, error) {
	var deals []domain.Deal
	end := rng.End.AddDate(0, 0, 1)
	err := r.withForecastRelations(r.db.WithContext(ctx)).
		Where("(expected_close_date >= ? AND expected_close_date < ?) OR (created_at >= ? AND created_at < ?)",
			rng.Start, end, rng.Start, end).
		Order("created_at ASC").
		Find(&deals).Error
	if err != nil {
		return nil, err
	}
	return deals, nil
}

// ListClosedBetween returns closed deals whose effective date (expected close
// date, else creation date) falls within [from, to].
func (r *DealRepository) ListClosedBetween(ctx context.Context, from, to time.Time) ([]domain.Deal, error) {
	var deals []domain.Deal
	err := r.db.WithContext(ctx).
		Where("stage = ?", domain.DealStageClosed).
		Where("COALESCE(expected_close_date, created_at) >= ? AND COALESCE(expected_close_date, created_at) <= ?", from, to).
		Find(&deals).Error
	if err != nil {
		return nil, err
	}
	return deals, nil
}

func (r *DealRepository) withForecastRelations(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Company").
		Preload("Assignee").
		Preload("Creator").
		Preload("Products.Product")
}
