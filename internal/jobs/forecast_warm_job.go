package jobs

import (
	"context"
	"time"

	"github.com/ledgerlane/crm-api/internal/domain"
	"go.uber.org/zap"
)

// ForecastWarmJobName is the name of the forecast cache warm-up job
const ForecastWarmJobName = "forecast_warm"

// ForecastService is the part of the forecast service the warm-up job drives.
// Declared here so the job does not import the service package.
type ForecastService interface {
	GetForecast(ctx context.Context, query domain.ForecastQuery) (*domain.ForecastResponse, error)
}

// DefaultWarmQueries are the reports most dashboards open with: the current
// quarter, month and year. Zero year/month values resolve to the current date.
var DefaultWarmQueries = []domain.ForecastQuery{
	{},
	{Timeframe: domain.TimeframeMonth},
	{Timeframe: domain.TimeframeYear},
}

// ForecastWarmJob recomputes the common forecast reports so the report cache stays hot.
type ForecastWarmJob struct {
	service ForecastService
	queries []domain.ForecastQuery
	logger  *zap.Logger
	timeout time.Duration
}

// NewForecastWarmJob creates a new warm-up job for the given queries
func NewForecastWarmJob(service ForecastService, queries []domain.ForecastQuery, logger *zap.Logger, timeout time.Duration) *ForecastWarmJob {
	return &ForecastWarmJob{
		service: service,
		queries: queries,
		logger:  logger,
		timeout: timeout,
	}
}

// Run computes every configured report. A failing query does not stop the others.
// It returns the number of reports that were computed successfully.
func (j *ForecastWarmJob) Run() int {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	warmed := 0
	for _, q := range j.queries {
		resp, err := j.service.GetForecast(ctx, q)
		if err != nil {
			j.logger.Error("forecast warm-up failed",
				zap.String("timeframe", string(q.Timeframe)),
				zap.Error(err))
			continue
		}
		warmed++
		j.logger.Debug("forecast warmed",
			zap.String("start", resp.DateRange.Start),
			zap.String("end", resp.DateRange.End))
	}

	j.logger.Info("forecast warm-up job completed",
		zap.Int("warmed", warmed),
		zap.Int("failed", len(j.queries)-warmed),
		zap.Duration("duration", time.Since(start)))
	return warmed
}

// RegisterForecastWarmJob registers the warm-up job with the scheduler.
// If warmOnStartup is true the job also runs once in a background goroutine so
// it doesn't block API startup.
func RegisterForecastWarmJob(scheduler *Scheduler, service ForecastService, logger *zap.Logger, cronExpr string, timeout time.Duration, warmOnStartup bool) error {
	job := NewForecastWarmJob(service, DefaultWarmQueries, logger, timeout)

	if err := scheduler.AddJob(ForecastWarmJobName, cronExpr, func() { job.Run() }); err != nil {
		return err
	}

	if warmOnStartup {
		go job.Run()
	}
	return nil
}
