package forecast_test

import (
	"testing"
	"time"

	"github.com/ledgerlane/crm-api/internal/domain"
	"github.com/ledgerlane/crm-api/internal/forecast"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTargets_Monthly(t *testing.T) {
	targets := forecast.DefaultTargets()

	assert.True(t, decimal.NewFromInt(120000).Equal(targets.Monthly(time.March)))
	assert.True(t, decimal.NewFromInt(120000).Equal(targets.Monthly(time.September)))
	assert.True(t, decimal.NewFromInt(150000).Equal(targets.Monthly(time.October)))
	assert.True(t, decimal.NewFromInt(150000).Equal(targets.Monthly(time.December)))
}

func TestTargets_ForRange(t *testing.T) {
	targets := forecast.DefaultTargets()

	tests := []struct {
		name      string
		timeframe domain.Timeframe
		quarter   string
		month     int
		want      int64
	}{
		{"month in Q2", domain.TimeframeMonth, "", 5, 120000},
		{"month in Q4", domain.TimeframeMonth, "", 11, 150000},
		{"quarter Q3", domain.TimeframeQuarter, "Q3", 0, 360000},
		{"quarter Q4", domain.TimeframeQuarter, "Q4", 0, 450000},
		{"year", domain.TimeframeYear, "", 0, 1500000},
		{"unknown timeframe", "other", "", 0, 380000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := forecast.ResolveRange(tt.timeframe, 2024, tt.quarter, tt.month, fixedNow)
			got := targets.ForRange(tt.timeframe, r)
			assert.True(t, decimal.NewFromInt(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestTargets_Custom(t *testing.T) {
	targets := forecast.Targets{
		BaseMonthly:      decimal.NewFromInt(1000),
		Q4Multiplier:     decimal.NewFromInt(2),
		Annual:           decimal.NewFromInt(20000),
		DefaultQuarterly: decimal.NewFromInt(3000),
	}

	r := forecast.ResolveRange(domain.TimeframeQuarter, 2024, "Q4", 0, fixedNow)
	assert.True(t, decimal.NewFromInt(6000).Equal(targets.ForRange(domain.TimeframeQuarter, r)))
}
