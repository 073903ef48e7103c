package forecast

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerlane/crm-api/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// TopDealsLimit caps the number of open deals listed in a report
	TopDealsLimit = 5

	noCompanyName   = "No company"
	unknownUserName = "Unknown"
)

var hundred = decimal.NewFromInt(100)

// Input is everything a report is computed from
type Input struct {
	Deals     []domain.Deal
	Closed    []domain.Deal // closed deals considered for year-to-date
	Range     domain.DateRange
	Timeframe domain.Timeframe
	Now       time.Time
}

// Aggregator turns deal records into a ForecastReport
type Aggregator struct {
	targets Targets
}

// NewAggregator creates an aggregator using the given target constants
func NewAggregator(targets Targets) *Aggregator {
	return &Aggregator{targets: targets}
}

// Targets returns the target constants the aggregator was built with
func (a *Aggregator) Targets() Targets {
	return a.targets
}

type monthKey struct {
	year  int
	month time.Month
}

// Aggregate computes the forecast report in a single pass over the deals.
// Stage buckets and the total hold weighted amounts for every stage, including
// closed, while the closed summary figure and closed monthly amounts are raw.
func (a *Aggregator) Aggregate(in Input) *domain.ForecastReport {
	target := a.targets.ForRange(in.Timeframe, in.Range)

	byStage := make([]domain.StageBreakdown, len(domain.DealStages))
	stageIdx := make(map[domain.DealStage]int, len(domain.DealStages))
	for i, s := range domain.DealStages {
		byStage[i] = domain.StageBreakdown{Stage: s, Amount: decimal.Zero}
		stageIdx[s] = i
	}

	byMonth := a.monthSkeleton(in.Range)
	monthIdx := make(map[monthKey]int, len(byMonth))
	for i, m := range byMonth {
		monthIdx[monthKey{m.Year, time.Month(m.MonthNumber)}] = i
	}

	var (
		byProduct  []domain.ProductBreakdown
		productIdx = map[uuid.UUID]int{}
		byTeam     []domain.TeamBreakdown
		teamIdx    = map[uuid.UUID]int{}
		total      = decimal.Zero
		closed     = decimal.Zero
		pipeline   = decimal.Zero
	)

	for i := range in.Deals {
		d := &in.Deals[i]
		amount := valueOf(d.Amount)
		probability := valueOf(d.Probability)
		weighted := amount.Mul(probability).Div(hundred)
		total = total.Add(weighted)

		if idx, ok := stageIdx[d.Stage]; ok {
			byStage[idx].Amount = byStage[idx].Amount.Add(weighted)
			byStage[idx].Count++
		}

		if d.Stage == domain.DealStageClosed {
			closed = closed.Add(amount)
		} else {
			pipeline = pipeline.Add(weighted)
		}

		eff := d.EffectiveDate()
		if idx, ok := monthIdx[monthKey{eff.Year(), eff.Month()}]; ok {
			if d.Stage == domain.DealStageClosed {
				byMonth[idx].Amount = byMonth[idx].Amount.Add(amount)
			} else {
				byMonth[idx].Forecast = byMonth[idx].Forecast.Add(weighted)
			}
		}

		counted := make(map[uuid.UUID]bool, len(d.Products))
		for _, line := range d.Products {
			if line.Product == nil {
				continue
			}
			idx, ok := productIdx[line.ProductID]
			if !ok {
				idx = len(byProduct)
				productIdx[line.ProductID] = idx
				byProduct = append(byProduct, domain.ProductBreakdown{
					ProductID: line.ProductID,
					Name:      line.Product.Name,
					Category:  line.Product.Category,
					Amount:    decimal.Zero,
				})
			}
			revenue := decimal.NewFromInt(int64(line.Quantity)).
				Mul(valueOf(line.Product.MonthlyPrice)).
				Mul(probability).
				Div(hundred)
			byProduct[idx].Amount = byProduct[idx].Amount.Add(revenue)
			if !counted[line.ProductID] {
				counted[line.ProductID] = true
				byProduct[idx].Count++
			}
		}

		if owner, ok := ownerOf(d); ok {
			idx, seen := teamIdx[owner]
			if !seen {
				idx = len(byTeam)
				teamIdx[owner] = idx
				byTeam = append(byTeam, domain.TeamBreakdown{
					UserID: owner,
					Name:   ownerName(d),
					Amount: decimal.Zero,
				})
			}
			byTeam[idx].Amount = byTeam[idx].Amount.Add(weighted)
			byTeam[idx].Count++
		}
	}

	completion := int64(0)
	if target.IsPositive() {
		completion = total.Div(target).Mul(hundred).Round(0).IntPart()
	}

	if byProduct == nil {
		byProduct = []domain.ProductBreakdown{}
	}
	if byTeam == nil {
		byTeam = []domain.TeamBreakdown{}
	}

	return &domain.ForecastReport{
		Summary: domain.ForecastSummary{
			TotalForecast:    total,
			ClosedDeals:      closed,
			Pipeline:         pipeline,
			TargetAmount:     target,
			TargetCompletion: completion,
			YearToDate:       YearToDate(in.Closed, in.Now),
		},
		ByStage:   byStage,
		ByMonth:   byMonth,
		ByProduct: byProduct,
		ByTeam:    byTeam,
		TopDeals:  TopDeals(in.Deals, TopDealsLimit),
	}
}

// monthSkeleton builds one zeroed entry per calendar month of the range
func (a *Aggregator) monthSkeleton(r domain.DateRange) []domain.MonthBreakdown {
	count := MonthsBetween(r.Start, r.End) + 1
	if count < 1 {
		return []domain.MonthBreakdown{}
	}
	first := time.Date(r.Start.Year(), r.Start.Month(), 1, 0, 0, 0, 0, time.UTC)
	months := make([]domain.MonthBreakdown, 0, count)
	for i := 0; i < count; i++ {
		m := first.AddDate(0, i, 0)
		months = append(months, domain.MonthBreakdown{
			Year:        m.Year(),
			MonthNumber: int(m.Month()),
			Month:       m.Format("Jan"),
			Amount:      decimal.Zero,
			Target:      a.targets.Monthly(m.Month()),
			Forecast:    decimal.Zero,
		})
	}
	return months
}

// YearToDate sums the raw amounts of closed deals whose effective date falls
// between January 1 of now's year and now, inclusive.
func YearToDate(deals []domain.Deal, now time.Time) decimal.Decimal {
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	sum := decimal.Zero
	for i := range deals {
		d := &deals[i]
		if d.Stage != domain.DealStageClosed {
			continue
		}
		eff := d.EffectiveDate()
		if eff.Before(start) || eff.After(now) {
			continue
		}
		sum = sum.Add(valueOf(d.Amount))
	}
	return sum
}

// TopDeals returns up to limit open deals ordered by amount descending.
// Deals with equal amounts keep their input order.
func TopDeals(deals []domain.Deal, limit int) []domain.TopDeal {
	open := make([]*domain.Deal, 0, len(deals))
	for i := range deals {
		if deals[i].Stage != domain.DealStageClosed {
			open = append(open, &deals[i])
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		return valueOf(open[i].Amount).GreaterThan(valueOf(open[j].Amount))
	})
	if len(open) > limit {
		open = open[:limit]
	}

	top := make([]domain.TopDeal, 0, len(open))
	for _, d := range open {
		company := noCompanyName
		if d.Company != nil && d.Company.Name != "" {
			company = d.Company.Name
		}
		top = append(top, domain.TopDeal{
			ID:          d.ID,
			Name:        d.Name,
			CompanyName: company,
			Amount:      valueOf(d.Amount),
			Probability: valueOf(d.Probability),
			Stage:       d.Stage,
		})
	}
	return top
}

// ownerOf picks the team member a deal is attributed to: the assignee, else the creator
func ownerOf(d *domain.Deal) (uuid.UUID, bool) {
	if d.AssignedTo != nil {
		return *d.AssignedTo, true
	}
	if d.CreatedBy != nil {
		return *d.CreatedBy, true
	}
	return uuid.Nil, false
}

func ownerName(d *domain.Deal) string {
	if d.Assignee != nil && d.Assignee.Name != "" {
		return d.Assignee.Name
	}
	if d.Creator != nil && d.Creator.Name != "" {
		return d.Creator.Name
	}
	return unknownUserName
}

func valueOf(v decimal.NullDecimal) decimal.Decimal {
	if !v.Valid {
		return decimal.Zero
	}
	return v.Decimal
}
