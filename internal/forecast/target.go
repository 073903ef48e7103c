package forecast

import (
	"time"

	"github.com/ledgerlane/crm-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Targets holds the revenue target business constants
type Targets struct {
	BaseMonthly      decimal.Decimal
	Q4Multiplier     decimal.Decimal
	Annual           decimal.Decimal
	DefaultQuarterly decimal.Decimal
}

// DefaultTargets returns the standard target constants
func DefaultTargets() Targets {
	return Targets{
		BaseMonthly:      decimal.NewFromInt(120000),
		Q4Multiplier:     decimal.NewFromFloat(1.25),
		Annual:           decimal.NewFromInt(1500000),
		DefaultQuarterly: decimal.NewFromInt(380000),
	}
}

// Monthly returns the target for a calendar month. Q4 months carry the multiplier.
func (t Targets) Monthly(m time.Month) decimal.Decimal {
	if QuarterOf(m) == 4 {
		return t.BaseMonthly.Mul(t.Q4Multiplier)
	}
	return t.BaseMonthly
}

// ForRange returns the target for a timeframe and its resolved range
func (t Targets) ForRange(timeframe domain.Timeframe, r domain.DateRange) decimal.Decimal {
	switch timeframe {
	case domain.TimeframeMonth:
		return t.Monthly(r.Start.Month())
	case domain.TimeframeQuarter:
		total := decimal.Zero
		cursor := time.Date(r.Start.Year(), r.Start.Month(), 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i <= MonthsBetween(r.Start, r.End); i++ {
			total = total.Add(t.Monthly(cursor.AddDate(0, i, 0).Month()))
		}
		return total
	case domain.TimeframeYear:
		return t.Annual
	default:
		return t.DefaultQuarterly
	}
}
