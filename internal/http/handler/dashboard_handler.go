package handler

import (
	"net/http"
	"strconv"

	"github.com/ledgerlane/crm-api/internal/service"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// Activity godoc
// @Summary Recent activity feed
// @Description Newest website enquiries, client communications, tasks, projects, deals and clients
// @Description merged into one list ordered by creation time, newest first.
// @Tags Dashboard
// @Produce json
// @Param limit query int false "Maximum entries (max 50)" default(10)
// @Success 200 {array} domain.ActivityEntry
// @Failure 500 {object} domain.APIError
// @Router /dashboard/activity [get]
func (h *DashboardHandler) Activity(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	feed, err := h.dashboardService.RecentActivity(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to load dashboard activity", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to load recent activity")
		return
	}

	respondJSON(w, http.StatusOK, feed)
}
