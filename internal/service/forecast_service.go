package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerlane/crm-api/internal/cache"
	"github.com/ledgerlane/crm-api/internal/domain"
	"github.com/ledgerlane/crm-api/internal/forecast"
	"github.com/ledgerlane/crm-api/internal/mapper"
	"github.com/ledgerlane/crm-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ForecastService computes sales forecast reports and manages saved snapshots
type ForecastService struct {
	dealRepo     *repository.DealRepository
	forecastRepo *repository.ForecastRepository
	aggregator   *forecast.Aggregator
	reportCache  cache.ReportCache
	cacheTTL     time.Duration
	now          func() time.Time
	logger       *zap.Logger
}

// ForecastServiceOption customizes a ForecastService
type ForecastServiceOption func(*ForecastService)

// WithClock replaces the source of the current time
func WithClock(now func() time.Time) ForecastServiceOption {
	return func(s *ForecastService) {
		s.now = now
	}
}

// WithReportCache stores computed reports in c for ttl
func WithReportCache(c cache.ReportCache, ttl time.Duration) ForecastServiceOption {
	return func(s *ForecastService) {
		s.reportCache = c
		s.cacheTTL = ttl
	}
}

func NewForecastService(
	dealRepo *repository.DealRepository,
	forecastRepo *repository.ForecastRepository,
	targets forecast.Targets,
	logger *zap.Logger,
	opts ...ForecastServiceOption,
) *ForecastService {
	s := &ForecastService{
		dealRepo:     dealRepo,
		forecastRepo: forecastRepo,
		aggregator:   forecast.NewAggregator(targets),
		reportCache:  cache.NoopReportCache{},
		now: func() time.Time {
			return time.Now().UTC()
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetForecast resolves the query to a date range and returns the aggregated report.
// Inputs are sanitized, never rejected; only a data access failure returns an error.
func (s *ForecastService) GetForecast(ctx context.Context, query domain.ForecastQuery) (*domain.ForecastResponse, error) {
	now := s.now()
	rng := forecast.ResolveRange(query.Timeframe, query.Year, query.Quarter, query.Month, now)
	key := cache.ForecastKey(query.Timeframe, rng, now)

	cached, ok, err := s.reportCache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("forecast cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		return cached, nil
	}

	deals, err := s.dealRepo.ListInRange(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to load deals: %w", err)
	}

	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	closed, err := s.dealRepo.ListClosedBetween(ctx, yearStart, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load closed deals: %w", err)
	}

	report := s.aggregator.Aggregate(forecast.Input{
		Deals:     deals,
		Closed:    closed,
		Range:     rng,
		Timeframe: query.Timeframe,
		Now:       now,
	})

	resp := &domain.ForecastResponse{
		ForecastData: report,
		DateRange:    forecast.FormatRange(rng),
	}

	if err := s.reportCache.Set(ctx, key, resp, s.cacheTTL); err != nil {
		s.logger.Warn("forecast cache write failed", zap.String("key", key), zap.Error(err))
	}

	return resp, nil
}

// SaveReport stores a forecast snapshot for its date range, replacing any
// snapshot previously saved for the same range along with its scenarios.
// The request must already have passed field validation.
func (s *ForecastService) SaveReport(ctx context.Context, req *domain.SaveForecastReportRequest) (*domain.ForecastSnapshotDTO, error) {
	snapshot, err := mapper.ToForecastSnapshot(req)
	if err != nil {
		return nil, NewValidationError("dates", err.Error())
	}
	if snapshot.EndDate.Before(snapshot.StartDate) {
		return nil, NewValidationError("end_date", "Must be on or after start_date")
	}

	if err := s.forecastRepo.Save(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to save forecast report: %w", err)
	}

	s.logger.Info("forecast report saved",
		zap.String("forecast_id", snapshot.ID.String()),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
		zap.Int("scenarios", len(snapshot.Scenarios)))

	dto := mapper.ToForecastSnapshotDTO(snapshot)
	return &dto, nil
}

// GetReport returns a saved snapshot with its scenarios
func (s *ForecastService) GetReport(ctx context.Context, id uuid.UUID) (*domain.ForecastSnapshotDTO, error) {
	snapshot, err := s.forecastRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get forecast report: %w", err)
	}

	dto := mapper.ToForecastSnapshotDTO(snapshot)
	return &dto, nil
}

// ListReports returns a page of saved snapshots, most recently updated first
func (s *ForecastService) ListReports(ctx context.Context, page, pageSize int) (*domain.PaginatedResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	snapshots, total, err := s.forecastRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list forecast reports: %w", err)
	}

	dtos := make([]domain.ForecastSnapshotDTO, 0, len(snapshots))
	for i := range snapshots {
		dtos = append(dtos, mapper.ToForecastSnapshotDTO(&snapshots[i]))
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}
