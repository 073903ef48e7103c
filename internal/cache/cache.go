// Package cache stores computed forecast reports between requests.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/ledgerlane/crm-api/internal/domain"
)

// ReportCache stores forecast responses by key
type ReportCache interface {
	Get(ctx context.Context, key string) (*domain.ForecastResponse, bool, error)
	Set(ctx context.Context, key string, value *domain.ForecastResponse, ttl time.Duration) error
}

// ForecastKey builds the cache key for a resolved forecast. The current date is
// part of the key because year-to-date figures change daily.
func ForecastKey(timeframe domain.Timeframe, r domain.DateRange, now time.Time) string {
	tf := timeframe
	if !tf.IsValid() {
		tf = "default"
	}
	return fmt.Sprintf("forecast:%s:%s:%s:%s",
		tf,
		r.Start.Format(domain.DateLayout),
		r.End.Format(domain.DateLayout),
		now.Format(domain.DateLayout),
	)
}

// NoopReportCache never stores anything
type NoopReportCache struct{}

func (NoopReportCache) Get(_ context.Context, _ string) (*domain.ForecastResponse, bool, error) {
	return nil, false, nil
}

func (NoopReportCache) Set(_ context.Context, _ string, _ *domain.ForecastResponse, _ time.Duration) error {
	return nil
}
