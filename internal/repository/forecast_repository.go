package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerlane/crm-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ForecastRepository handles database operations for saved forecast snapshots
type ForecastRepository struct {
	db *gorm.DB
}

// NewForecastRepository creates a new ForecastRepository
func NewForecastRepository(db *gorm.DB) *ForecastRepository {
	return &ForecastRepository{db: db}
}

// Save upserts the snapshot keyed by its (start_date, end_date) pair and
// replaces its scenarios wholesale. Everything runs in one transaction, so a
// failure at any step leaves the previous state untouched.
func (r *ForecastRepository) Save(ctx context.Context, snapshot *domain.ForecastSnapshot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.ForecastSnapshot
		err := tx.Where("start_date = ? AND end_date = ?", snapshot.StartDate, snapshot.EndDate).
			First(&existing).Error
		switch {
		case err == nil:
			snapshot.ID = existing.ID
			snapshot.CreatedAt = existing.CreatedAt
			if err := tx.Omit(clause.Associations).Save(snapshot).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Omit(clause.Associations).Create(snapshot).Error; err != nil {
				return err
			}
		default:
			return err
		}

		if err := tx.Where("forecast_id = ?", snapshot.ID).Delete(&domain.ForecastScenario{}).Error; err != nil {
			return err
		}

		if len(snapshot.Scenarios) == 0 {
			return nil
		}
		for i := range snapshot.Scenarios {
			snapshot.Scenarios[i].ForecastID = snapshot.ID
		}
		return tx.Create(&snapshot.Scenarios).Error
	})
}

// GetByID retrieves a snapshot with its scenarios
func (r *ForecastRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ForecastSnapshot, error) {
	var snapshot domain.ForecastSnapshot
	err := r.db.WithContext(ctx).
		Preload("Scenarios").
		Where("id = ?", id).
		First(&snapshot).Error
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// GetByRange retrieves the snapshot saved for exactly this date range
func (r *ForecastRepository) GetByRange(ctx context.Context, start, end time.Time) (*domain.ForecastSnapshot, error) {
	var snapshot domain.ForecastSnapshot
	err := r.db.WithContext(ctx).
		Preload("Scenarios").
		Where("start_date = ? AND end_date = ?", start, end).
		First(&snapshot).Error
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// List returns a page of snapshots, most recently updated first
func (r *ForecastRepository) List(ctx context.Context, page, pageSize int) ([]domain.ForecastSnapshot, int64, error) {
	var snapshots []domain.ForecastSnapshot
	var total int64

	if err := r.db.WithContext(ctx).Model(&domain.ForecastSnapshot{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.WithContext(ctx).
		Preload("Scenarios").
		Order("updated_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&snapshots).Error

	return snapshots, total, err
}
