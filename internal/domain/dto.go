package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used on the wire
const DateLayout = "2006-01-02"

// Timeframe selects the granularity of a forecast report
type Timeframe string

const (
	TimeframeMonth   Timeframe = "month"
	TimeframeQuarter Timeframe = "quarter"
	TimeframeYear    Timeframe = "year"
)

// IsValid checks if the Timeframe is a known value
func (t Timeframe) IsValid() bool {
	switch t {
	case TimeframeMonth, TimeframeQuarter, TimeframeYear:
		return true
	}
	return false
}

// DateRange is an inclusive pair of calendar dates (UTC midnight)
type DateRange struct {
	Start time.Time
	End   time.Time
}

// DateRangeDTO is the wire form of a DateRange
type DateRangeDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ForecastQuery holds the raw (already parsed, not yet sanitized) forecast inputs
type ForecastQuery struct {
	Timeframe Timeframe
	Year      int
	Quarter   string
	Month     int
}

// ForecastSummary holds the headline figures of a forecast report
type ForecastSummary struct {
	TotalForecast    decimal.Decimal `json:"totalForecast"`
	ClosedDeals      decimal.Decimal `json:"closedDeals"`
	Pipeline         decimal.Decimal `json:"pipeline"`
	TargetAmount     decimal.Decimal `json:"targetAmount"`
	TargetCompletion int64           `json:"targetCompletion"`
	YearToDate       decimal.Decimal `json:"yearToDate"`
}

// StageBreakdown aggregates deals in one pipeline stage
type StageBreakdown struct {
	Stage  DealStage       `json:"stage"`
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

// MonthBreakdown aggregates deals whose effective date falls in one calendar month
type MonthBreakdown struct {
	Year        int             `json:"year"`
	MonthNumber int             `json:"monthNumber"`
	Month       string          `json:"month"`
	Amount      decimal.Decimal `json:"amount"`
	Target      decimal.Decimal `json:"target"`
	Forecast    decimal.Decimal `json:"forecast"`
}

// ProductBreakdown aggregates probability-weighted revenue per product
type ProductBreakdown struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Count     int             `json:"count"`
}

// TeamBreakdown aggregates weighted pipeline per team member
type TeamBreakdown struct {
	UserID uuid.UUID       `json:"userId"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

// TopDeal is the reduced projection of an open deal
type TopDeal struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	CompanyName string          `json:"companyName"`
	Amount      decimal.Decimal `json:"amount"`
	Probability decimal.Decimal `json:"probability"`
	Stage       DealStage       `json:"stage"`
}

// ForecastReport is the full aggregated forecast for a date range
type ForecastReport struct {
	Summary   ForecastSummary    `json:"summary"`
	ByStage   []StageBreakdown   `json:"byStage"`
	ByMonth   []MonthBreakdown   `json:"byMonth"`
	ByProduct []ProductBreakdown `json:"byProduct"`
	ByTeam    []TeamBreakdown    `json:"byTeam"`
	TopDeals  []TopDeal          `json:"topDeals"`
}

// ForecastResponse is returned by the forecast endpoint
type ForecastResponse struct {
	ForecastData *ForecastReport `json:"forecastData"`
	DateRange    DateRangeDTO    `json:"dateRange"`
}

// SaveForecastReportRequest is the payload for saving a forecast snapshot
type SaveForecastReportRequest struct {
	Title                string            `json:"title" validate:"required,max=255"`
	StartDate            string            `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate              string            `json:"end_date" validate:"required,datetime=2006-01-02"`
	TargetAmount         *float64          `json:"target_amount" validate:"required,gte=0"`
	PredictedAmount      *float64          `json:"predicted_amount" validate:"required,gte=0"`
	ConfidencePercentage *float64          `json:"confidence_percentage" validate:"required,gte=0,lte=100"`
	MonthlyBreakdown     json.RawMessage   `json:"monthly_breakdown,omitempty"`
	ProductBreakdown     json.RawMessage   `json:"product_breakdown,omitempty"`
	TeamBreakdown        json.RawMessage   `json:"team_breakdown,omitempty"`
	Notes                string            `json:"notes,omitempty" validate:"max=5000"`
	Scenarios            []ScenarioRequest `json:"scenarios,omitempty" validate:"omitempty,dive"`
}

// ScenarioRequest is one what-if scenario inside SaveForecastReportRequest
type ScenarioRequest struct {
	Name             string       `json:"name" validate:"required,max=255"`
	Type             ScenarioType `json:"type" validate:"required,oneof=optimistic realistic pessimistic"`
	AdjustmentFactor *float64     `json:"adjustment_factor" validate:"required,gte=0.1,lte=2"`
	PredictedAmount  *float64     `json:"predicted_amount" validate:"required,gte=0"`
	Assumptions      string       `json:"assumptions,omitempty"`
}

// ForecastScenarioDTO is the wire form of a ForecastScenario
type ForecastScenarioDTO struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Type             ScenarioType    `json:"type"`
	AdjustmentFactor decimal.Decimal `json:"adjustmentFactor"`
	PredictedAmount  decimal.Decimal `json:"predictedAmount"`
	Assumptions      string          `json:"assumptions,omitempty"`
}

// ForecastSnapshotDTO is the wire form of a ForecastSnapshot
type ForecastSnapshotDTO struct {
	ID                   uuid.UUID             `json:"id"`
	Title                string                `json:"title"`
	StartDate            string                `json:"startDate"`
	EndDate              string                `json:"endDate"`
	TargetAmount         decimal.Decimal       `json:"targetAmount"`
	PredictedAmount      decimal.Decimal       `json:"predictedAmount"`
	ConfidencePercentage decimal.Decimal       `json:"confidencePercentage"`
	MonthlyBreakdown     json.RawMessage       `json:"monthlyBreakdown,omitempty"`
	ProductBreakdown     json.RawMessage       `json:"productBreakdown,omitempty"`
	TeamBreakdown        json.RawMessage       `json:"teamBreakdown,omitempty"`
	Notes                string                `json:"notes,omitempty"`
	Scenarios            []ForecastScenarioDTO `json:"scenarios"`
	CreatedAt            string                `json:"createdAt"` // ISO 8601
	UpdatedAt            string                `json:"updatedAt"` // ISO 8601
}

// ActivityKind tags the record type an activity entry was built from
type ActivityKind string

const (
	ActivityKindWebsiteContact      ActivityKind = "website_contact"
	ActivityKindClientCommunication ActivityKind = "client_communication"
	ActivityKindTask                ActivityKind = "task"
	ActivityKindProject             ActivityKind = "project"
	ActivityKindDeal                ActivityKind = "deal"
	ActivityKindClient              ActivityKind = "client"
)

// ActivityEntry is the common projection of any record shown in the dashboard feed
type ActivityEntry struct {
	ID          uuid.UUID    `json:"id"`
	Type        ActivityKind `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Timestamp   time.Time    `json:"timestamp"`
	URL         string       `json:"url"`
}

// PaginatedResponse wraps a page of results
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}
