package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerlane/crm-api/internal/domain"
	"github.com/ledgerlane/crm-api/internal/forecast"
	"github.com/ledgerlane/crm-api/internal/repository"
	"github.com/ledgerlane/crm-api/internal/service"
	"github.com/ledgerlane/crm-api/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var serviceNow = time.Date(2024, 8, 15, 10, 30, 0, 0, time.UTC)

type stubReportCache struct {
	stored  map[string]*domain.ForecastResponse
	getErr  error
	setKeys []string
}

func newStubReportCache() *stubReportCache {
	return &stubReportCache{stored: make(map[string]*domain.ForecastResponse)}
}

func (c *stubReportCache) Get(_ context.Context, key string) (*domain.ForecastResponse, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	v, ok := c.stored[key]
	return v, ok, nil
}

func (c *stubReportCache) Set(_ context.Context, key string, value *domain.ForecastResponse, _ time.Duration) error {
	c.setKeys = append(c.setKeys, key)
	c.stored[key] = value
	return nil
}

func createForecastService(db *gorm.DB, opts ...service.ForecastServiceOption) *service.ForecastService {
	opts = append([]service.ForecastServiceOption{
		service.WithClock(func() time.Time { return serviceNow }),
	}, opts...)
	return service.NewForecastService(
		repository.NewDealRepository(db),
		repository.NewForecastRepository(db),
		forecast.DefaultTargets(),
		zap.NewNop(),
		opts...,
	)
}

func insertDeal(t *testing.T, db *gorm.DB, name string, amount, probability int64, stage domain.DealStage, closeDate time.Time, createdAt time.Time) {
	t.Helper()
	deal := &domain.Deal{
		Name:              name,
		Amount:            testutil.Money(amount),
		Probability:       testutil.Money(probability),
		Stage:             stage,
		ExpectedCloseDate: &closeDate,
	}
	deal.CreatedAt = createdAt
	deal.UpdatedAt = createdAt
	testutil.CreateTestDeal(t, db, deal)
}

func floatPtr(v float64) *float64 {
	return &v
}

func saveRequest(title, start, end string, scenarios ...string) *domain.SaveForecastReportRequest {
	req := &domain.SaveForecastReportRequest{
		Title:                title,
		StartDate:            start,
		EndDate:              end,
		TargetAmount:         floatPtr(360000),
		PredictedAmount:      floatPtr(275000.5),
		ConfidencePercentage: floatPtr(72),
	}
	for _, name := range scenarios {
		req.Scenarios = append(req.Scenarios, domain.ScenarioRequest{
			Name:             name,
			Type:             domain.ScenarioOptimistic,
			AdjustmentFactor: floatPtr(1.2),
			PredictedAmount:  floatPtr(330000),
		})
	}
	return req
}

func TestForecastService_GetForecastDefaultsToCurrentQuarter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createForecastService(db)

	insertDeal(t, db, "Renewal", 10000, 50, domain.DealStageProposal, testutil.Date(2024, 8, 10), testutil.Date(2024, 1, 10))
	insertDeal(t, db, "Won in spring", 8000, 100, domain.DealStageClosed, testutil.Date(2024, 3, 1), testutil.Date(2024, 2, 1))

	resp, err := svc.GetForecast(context.Background(), domain.ForecastQuery{})
	require.NoError(t, err)

	assert.Equal(t, domain.DateRangeDTO{Start: "2024-07-01", End: "2024-09-30"}, resp.DateRange)

	summary := resp.ForecastData.Summary
	assert.True(t, decimal.NewFromInt(5000).Equal(summary.TotalForecast), summary.TotalForecast.String())
	assert.True(t, decimal.NewFromInt(5000).Equal(summary.Pipeline))
	assert.True(t, summary.ClosedDeals.IsZero())
	assert.True(t, decimal.NewFromInt(380000).Equal(summary.TargetAmount))
	assert.Equal(t, int64(1), summary.TargetCompletion)
	assert.True(t, decimal.NewFromInt(8000).Equal(summary.YearToDate))

	require.Len(t, resp.ForecastData.ByMonth, 3)
	assert.Equal(t, "Aug", resp.ForecastData.ByMonth[1].Month)
	assert.True(t, decimal.NewFromInt(5000).Equal(resp.ForecastData.ByMonth[1].Forecast))

	require.Len(t, resp.ForecastData.TopDeals, 1)
	assert.Equal(t, "No company", resp.ForecastData.TopDeals[0].CompanyName)
}

func TestForecastService_GetForecastSanitizesInputs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createForecastService(db)

	resp, err := svc.GetForecast(context.Background(), domain.ForecastQuery{
		Timeframe: domain.TimeframeMonth,
		Year:      -4,
		Month:     42,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.DateRangeDTO{Start: "2024-08-01", End: "2024-08-31"}, resp.DateRange)
	assert.True(t, resp.ForecastData.Summary.TotalForecast.IsZero())
	assert.Empty(t, resp.ForecastData.TopDeals)
}

func TestForecastService_GetForecastUsesCache(t *testing.T) {
	db := testutil.SetupTestDB(t)
	reports := newStubReportCache()
	svc := createForecastService(db, service.WithReportCache(reports, time.Minute))
	ctx := context.Background()
	query := domain.ForecastQuery{Timeframe: domain.TimeframeYear, Year: 2024}

	first, err := svc.GetForecast(ctx, query)
	require.NoError(t, err)
	require.Len(t, reports.setKeys, 1)
	assert.Equal(t, "forecast:year:2024-01-01:2024-12-31:2024-08-15", reports.setKeys[0])

	// a deal added after the first call is invisible until the entry expires
	insertDeal(t, db, "Late", 50000, 90, domain.DealStageQualified, testutil.Date(2024, 10, 1), serviceNow)

	second, err := svc.GetForecast(ctx, query)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Len(t, reports.setKeys, 1)
}

func TestForecastService_GetForecastIgnoresCacheErrors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	reports := newStubReportCache()
	reports.getErr = errors.New("connection refused")
	svc := createForecastService(db, service.WithReportCache(reports, time.Minute))

	insertDeal(t, db, "Deal", 8000, 80, domain.DealStageQualified, testutil.Date(2024, 9, 1), serviceNow)

	resp, err := svc.GetForecast(context.Background(), domain.ForecastQuery{})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(6400).Equal(resp.ForecastData.Summary.TotalForecast))
}

func TestForecastService_SaveReport(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createForecastService(db)

	dto, err := svc.SaveReport(context.Background(), saveRequest("Q3 2024", "2024-07-01", "2024-09-30", "Upside", "Stretch"))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, dto.ID)
	assert.Equal(t, "Q3 2024", dto.Title)
	assert.Equal(t, "2024-07-01", dto.StartDate)
	assert.Equal(t, "2024-09-30", dto.EndDate)
	assert.True(t, decimal.RequireFromString("275000.5").Equal(dto.PredictedAmount))
	assert.Len(t, dto.Scenarios, 2)
}

func TestForecastService_SaveReportReplacesSameRange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createForecastService(db)
	ctx := context.Background()

	first, err := svc.SaveReport(ctx, saveRequest("Draft", "2024-07-01", "2024-09-30", "a", "b", "c"))
	require.NoError(t, err)

	second, err := svc.SaveReport(ctx, saveRequest("Final", "2024-07-01", "2024-09-30", "only"))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	stored, err := svc.GetReport(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", stored.Title)
	require.Len(t, stored.Scenarios, 1)
	assert.Equal(t, "only", stored.Scenarios[0].Name)

	var scenarios int64
	require.NoError(t, db.Model(&domain.ForecastScenario{}).Count(&scenarios).Error)
	assert.Equal(t, int64(1), scenarios)
}

func TestForecastService_SaveReportRejectsInvertedRange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createForecastService(db)

	_, err := svc.SaveReport(context.Background(), saveRequest("Backwards", "2024-09-30", "2024-07-01"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrInvalidInput))

	var ve *service.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "end_date")
}

func TestForecastService_SaveReportRejectsBadDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createForecastService(db)

	_, err := svc.SaveReport(context.Background(), saveRequest("Bad", "2024-13-01", "2024-12-31"))
	assert.True(t, errors.Is(err, service.ErrInvalidInput))
}

func TestForecastService_GetReportNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createForecastService(db)

	_, err := svc.GetReport(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestForecastService_ListReports(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := createForecastService(db)
	ctx := context.Background()

	_, err := svc.SaveReport(ctx, saveRequest("Q1", "2024-01-01", "2024-03-31"))
	require.NoError(t, err)
	_, err = svc.SaveReport(ctx, saveRequest("Q2", "2024-04-01", "2024-06-30"))
	require.NoError(t, err)
	_, err = svc.SaveReport(ctx, saveRequest("Q3", "2024-07-01", "2024-09-30"))
	require.NoError(t, err)

	resp, err := svc.ListReports(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.PageSize)
	assert.Equal(t, 1, resp.TotalPages)

	resp, err = svc.ListReports(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalPages)
	data, ok := resp.Data.([]domain.ForecastSnapshotDTO)
	require.True(t, ok)
	assert.Len(t, data, 1)
}
