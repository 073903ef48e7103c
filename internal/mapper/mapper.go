package mapper

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ledgerlane/crm-api/internal/domain"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const timestampLayout = "2006-01-02T15:04:05Z"

// ToForecastSnapshotDTO converts ForecastSnapshot to ForecastSnapshotDTO
func ToForecastSnapshotDTO(s *domain.ForecastSnapshot) domain.ForecastSnapshotDTO {
	scenarios := make([]domain.ForecastScenarioDTO, 0, len(s.Scenarios))
	for i := range s.Scenarios {
		scenarios = append(scenarios, ToForecastScenarioDTO(&s.Scenarios[i]))
	}

	return domain.ForecastSnapshotDTO{
		ID:                   s.ID,
		Title:                s.Title,
		StartDate:            s.StartDate.Format(domain.DateLayout),
		EndDate:              s.EndDate.Format(domain.DateLayout),
		TargetAmount:         s.TargetAmount,
		PredictedAmount:      s.PredictedAmount,
		ConfidencePercentage: s.ConfidencePercentage,
		MonthlyBreakdown:     rawJSON(s.MonthlyBreakdown),
		ProductBreakdown:     rawJSON(s.ProductBreakdown),
		TeamBreakdown:        rawJSON(s.TeamBreakdown),
		Notes:                s.Notes,
		Scenarios:            scenarios,
		CreatedAt:            s.CreatedAt.UTC().Format(timestampLayout),
		UpdatedAt:            s.UpdatedAt.UTC().Format(timestampLayout),
	}
}

// ToForecastScenarioDTO converts ForecastScenario to ForecastScenarioDTO
func ToForecastScenarioDTO(s *domain.ForecastScenario) domain.ForecastScenarioDTO {
	return domain.ForecastScenarioDTO{
		ID:               s.ID,
		Name:             s.Name,
		Type:             s.Type,
		AdjustmentFactor: s.AdjustmentFactor,
		PredictedAmount:  s.PredictedAmount,
		Assumptions:      s.Assumptions,
	}
}

// ToForecastSnapshot builds the model for a validated save request.
// Dates must already be in DateLayout.
func ToForecastSnapshot(req *domain.SaveForecastReportRequest) (*domain.ForecastSnapshot, error) {
	start, err := time.Parse(domain.DateLayout, req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start_date: %w", err)
	}
	end, err := time.Parse(domain.DateLayout, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end_date: %w", err)
	}

	scenarios := make([]domain.ForecastScenario, 0, len(req.Scenarios))
	for _, sc := range req.Scenarios {
		scenarios = append(scenarios, domain.ForecastScenario{
			Name:             sc.Name,
			Type:             sc.Type,
			AdjustmentFactor: decimalOf(sc.AdjustmentFactor),
			PredictedAmount:  decimalOf(sc.PredictedAmount),
			Assumptions:      sc.Assumptions,
		})
	}

	return &domain.ForecastSnapshot{
		Title:                req.Title,
		StartDate:            start,
		EndDate:              end,
		TargetAmount:         decimalOf(req.TargetAmount),
		PredictedAmount:      decimalOf(req.PredictedAmount),
		ConfidencePercentage: decimalOf(req.ConfidencePercentage),
		MonthlyBreakdown:     jsonColumn(req.MonthlyBreakdown),
		ProductBreakdown:     jsonColumn(req.ProductBreakdown),
		TeamBreakdown:        jsonColumn(req.TeamBreakdown),
		Notes:                req.Notes,
		Scenarios:            scenarios,
	}, nil
}

func decimalOf(v *float64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*v)
}

// jsonColumn keeps absent or null breakdowns as SQL NULL
func jsonColumn(raw json.RawMessage) datatypes.JSON {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return datatypes.JSON(raw)
}

func rawJSON(col datatypes.JSON) json.RawMessage {
	if len(col) == 0 {
		return nil
	}
	return json.RawMessage(col)
}
