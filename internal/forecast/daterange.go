// Package forecast computes sales forecast reports from deal records.
// Everything here is a pure function of its inputs; the caller supplies "now".
package forecast

import (
	"strings"
	"time"

	"github.com/ledgerlane/crm-api/internal/domain"
)

// quarterStartMonths maps a quarter label to the first month of that quarter
var quarterStartMonths = map[string]time.Month{
	"Q1": time.January,
	"Q2": time.April,
	"Q3": time.July,
	"Q4": time.October,
}

// ResolveRange maps a timeframe selector and its inputs to an inclusive date range.
// Malformed inputs never fail: an out-of-range year or month falls back to the value
// taken from now, an unknown quarter label falls back to Q1, and an unknown timeframe
// resolves to the calendar quarter that contains now.
func ResolveRange(timeframe domain.Timeframe, year int, quarter string, month int, now time.Time) domain.DateRange {
	if year < 1 || year > 9999 {
		year = now.Year()
	}
	m := time.Month(month)
	if month < 1 || month > 12 {
		m = now.Month()
	}

	switch timeframe {
	case domain.TimeframeMonth:
		start := date(year, m, 1)
		return domain.DateRange{Start: start, End: endOfMonth(start)}
	case domain.TimeframeQuarter:
		startMonth, ok := quarterStartMonths[strings.ToUpper(strings.TrimSpace(quarter))]
		if !ok {
			startMonth = time.January
		}
		return quarterRange(year, startMonth)
	case domain.TimeframeYear:
		return domain.DateRange{Start: date(year, time.January, 1), End: date(year, time.December, 31)}
	default:
		return quarterRange(year, quarterStartMonth(QuarterOf(now.Month())))
	}
}

// QuarterOf returns the calendar quarter (1-4) a month belongs to
func QuarterOf(m time.Month) int {
	switch {
	case m <= time.March:
		return 1
	case m <= time.June:
		return 2
	case m <= time.September:
		return 3
	default:
		return 4
	}
}

// MonthsBetween counts whole calendar months from start's month to end's month
func MonthsBetween(start, end time.Time) int {
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
}

// FormatRange renders a range in its wire form
func FormatRange(r domain.DateRange) domain.DateRangeDTO {
	return domain.DateRangeDTO{
		Start: r.Start.Format(domain.DateLayout),
		End:   r.End.Format(domain.DateLayout),
	}
}

func quarterStartMonth(q int) time.Month {
	return time.Month((q-1)*3 + 1)
}

func quarterRange(year int, startMonth time.Month) domain.DateRange {
	start := date(year, startMonth, 1)
	return domain.DateRange{Start: start, End: endOfMonth(start.AddDate(0, 2, 0))}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func endOfMonth(firstOfMonth time.Time) time.Time {
	return firstOfMonth.AddDate(0, 1, -1)
}
