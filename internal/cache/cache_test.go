package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/ledgerlane/crm-api/internal/cache"
	"github.com/ledgerlane/crm-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecastKey(t *testing.T) {
	r := domain.DateRange{
		Start: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC),
	}
	now := time.Date(2024, 8, 15, 13, 0, 0, 0, time.UTC)

	assert.Equal(t, "forecast:quarter:2024-07-01:2024-09-30:2024-08-15", cache.ForecastKey(domain.TimeframeQuarter, r, now))
	assert.Equal(t, "forecast:default:2024-07-01:2024-09-30:2024-08-15", cache.ForecastKey("", r, now))
	assert.NotEqual(t,
		cache.ForecastKey(domain.TimeframeQuarter, r, now),
		cache.ForecastKey(domain.TimeframeQuarter, r, now.AddDate(0, 0, 1)))
}

func TestNoopReportCache(t *testing.T) {
	c := cache.NoopReportCache{}

	require.NoError(t, c.Set(context.Background(), "k", &domain.ForecastResponse{}, time.Minute))
	resp, ok, err := c.Get(context.Background(), "k")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, resp)
}

func TestRedisReportCache_Unreachable(t *testing.T) {
	c := cache.NewRedisReportCache("127.0.0.1:1", "", 0)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	assert.Error(t, c.Ping(ctx))
	_, ok, err := c.Get(ctx, "forecast:quarter")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.Set(ctx, "k", nil, time.Minute), "nil values are skipped")
}
