package jobs_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ledgerlane/crm-api/internal/domain"
	"github.com/ledgerlane/crm-api/internal/jobs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubForecastService struct {
	mu      sync.Mutex
	queries []domain.ForecastQuery
	failOn  domain.Timeframe
}

func (s *stubForecastService) GetForecast(_ context.Context, q domain.ForecastQuery) (*domain.ForecastResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, q)
	if s.failOn != "" && q.Timeframe == s.failOn {
		return nil, errors.New("database unavailable")
	}
	return &domain.ForecastResponse{DateRange: domain.DateRangeDTO{Start: "2024-07-01", End: "2024-09-30"}}, nil
}

func TestScheduler_AddAndRemoveJob(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())

	require.NoError(t, s.AddJob("b", "@every 1h", func() {}))
	require.NoError(t, s.AddJob("a", "0 */10 * * * *", func() {}))
	assert.Equal(t, []string{"a", "b"}, s.GetJobNames())

	assert.Error(t, s.AddJob("a", "@hourly", func() {}), "duplicate names are rejected")
	assert.Error(t, s.AddJob("c", "not a cron expression", func() {}))

	require.NoError(t, s.RemoveJob("a"))
	assert.Equal(t, []string{"b"}, s.GetJobNames())
	assert.Error(t, s.RemoveJob("a"))
}

func TestForecastWarmJob_Run(t *testing.T) {
	svc := &stubForecastService{}
	job := jobs.NewForecastWarmJob(svc, jobs.DefaultWarmQueries, zap.NewNop(), time.Second)

	warmed := job.Run()

	assert.Equal(t, 3, warmed)
	assert.Equal(t, jobs.DefaultWarmQueries, svc.queries)
}

func TestForecastWarmJob_ContinuesAfterFailure(t *testing.T) {
	svc := &stubForecastService{failOn: domain.TimeframeMonth}
	job := jobs.NewForecastWarmJob(svc, jobs.DefaultWarmQueries, zap.NewNop(), time.Second)

	warmed := job.Run()

	assert.Equal(t, 2, warmed)
	assert.Len(t, svc.queries, 3)
}

func TestRegisterForecastWarmJob(t *testing.T) {
	s := jobs.NewScheduler(zap.NewNop())
	svc := &stubForecastService{}

	require.NoError(t, jobs.RegisterForecastWarmJob(s, svc, zap.NewNop(), "@every 1h", time.Second, false))
	assert.Equal(t, []string{jobs.ForecastWarmJobName}, s.GetJobNames())

	err := jobs.RegisterForecastWarmJob(s, svc, zap.NewNop(), "@every 1h", time.Second, false)
	assert.Error(t, err)
}
