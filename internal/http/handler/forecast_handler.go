package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/ledgerlane/crm-api/internal/domain"
	"github.com/ledgerlane/crm-api/internal/service"
	"go.uber.org/zap"
)

type ForecastHandler struct {
	forecastService *service.ForecastService
	logger          *zap.Logger
}

func NewForecastHandler(forecastService *service.ForecastService, logger *zap.Logger) *ForecastHandler {
	return &ForecastHandler{
		forecastService: forecastService,
		logger:          logger,
	}
}

// GetForecast godoc
// @Summary Get sales forecast
// @Description Aggregates deals in the selected period into totals, stage, month, product and team breakdowns.
// @Description Unknown or out-of-range parameters fall back to the current period instead of failing.
// @Description Without a timeframe the current quarter is used.
// @Tags Forecast
// @Produce json
// @Param timeframe query string false "Period granularity" Enums(month, quarter, year)
// @Param year query int false "Calendar year (defaults to the current year)"
// @Param quarter query string false "Quarter label" Enums(Q1, Q2, Q3, Q4)
// @Param month query int false "Month number 1-12"
// @Success 200 {object} domain.ForecastResponse
// @Failure 500 {object} domain.APIError
// @Router /sales/forecast [get]
func (h *ForecastHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	// unparsable numbers become 0 and are replaced by the current period
	year, _ := strconv.Atoi(q.Get("year"))
	month, _ := strconv.Atoi(q.Get("month"))

	resp, err := h.forecastService.GetForecast(r.Context(), domain.ForecastQuery{
		Timeframe: domain.Timeframe(q.Get("timeframe")),
		Year:      year,
		Quarter:   q.Get("quarter"),
		Month:     month,
	})
	if err != nil {
		h.logger.Error("failed to compute sales forecast", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to compute sales forecast")
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// SaveReport godoc
// @Summary Save forecast report
// @Description Stores a forecast snapshot with its scenarios. A snapshot already saved for the same
// @Description start and end date is replaced, scenarios included.
// @Tags Forecast
// @Accept json
// @Produce json
// @Param request body domain.SaveForecastReportRequest true "Forecast snapshot"
// @Success 201 {object} domain.ForecastSnapshotDTO
// @Failure 400 {object} domain.APIError
// @Failure 422 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /sales/forecast/report [post]
func (h *ForecastHandler) SaveReport(w http.ResponseWriter, r *http.Request) {
	var req domain.SaveForecastReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	snapshot, err := h.forecastService.SaveReport(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respondValidationError(w, err)
			return
		}
		h.logger.Error("failed to save forecast report", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to save forecast report")
		return
	}

	w.Header().Set("Location", "/api/v1/sales/forecast/reports/"+snapshot.ID.String())
	respondJSON(w, http.StatusCreated, snapshot)
}

// ListReports godoc
// @Summary List saved forecast reports
// @Tags Forecast
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 100)" default(20)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.ForecastSnapshotDTO}
// @Failure 500 {object} domain.APIError
// @Router /sales/forecast/reports [get]
func (h *ForecastHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

	result, err := h.forecastService.ListReports(r.Context(), page, pageSize)
	if err != nil {
		h.logger.Error("failed to list forecast reports", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list forecast reports")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetReport godoc
// @Summary Get saved forecast report
// @Tags Forecast
// @Produce json
// @Param id path string true "Report ID" format(uuid)
// @Success 200 {object} domain.ForecastSnapshotDTO
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /sales/forecast/reports/{id} [get]
func (h *ForecastHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusNotFound, "Forecast report not found")
		return
	}

	snapshot, err := h.forecastService.GetReport(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Forecast report not found")
			return
		}
		h.logger.Error("failed to get forecast report", zap.Error(err), zap.String("id", id.String()))
		respondWithError(w, http.StatusInternalServerError, "Failed to get forecast report")
		return
	}

	respondJSON(w, http.StatusOK, snapshot)
}
