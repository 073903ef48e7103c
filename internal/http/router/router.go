package router

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ledgerlane/crm-api/internal/config"
	"github.com/ledgerlane/crm-api/internal/database"
	"github.com/ledgerlane/crm-api/internal/http/handler"
	"github.com/ledgerlane/crm-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/ledgerlane/crm-api/docs" // registers swagger docs
)

// Pinger is a dependency checked by the readiness probe
type Pinger interface {
	Ping(ctx context.Context) error
}

type Router struct {
	cfg              *config.Config
	logger           *zap.Logger
	db               *gorm.DB
	cache            Pinger
	rateLimiter      *middleware.RateLimiter
	forecastHandler  *handler.ForecastHandler
	dashboardHandler *handler.DashboardHandler
}

// NewRouter wires the handlers. cache may be nil when no report cache is configured.
func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	cache Pinger,
	rateLimiter *middleware.RateLimiter,
	forecastHandler *handler.ForecastHandler,
	dashboardHandler *handler.DashboardHandler,
) *Router {
	return &Router{
		cfg:              cfg,
		logger:           logger,
		db:               db,
		cache:            cache,
		rateLimiter:      rateLimiter,
		forecastHandler:  forecastHandler,
		dashboardHandler: dashboardHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Liveness
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Get("/health/db", rt.databaseHealth)
	r.Get("/health/ready", rt.readiness)

	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/sales/forecast", func(r chi.Router) {
			r.Get("/", rt.forecastHandler.GetForecast)
			r.Post("/report", rt.forecastHandler.SaveReport)
			r.Get("/reports", rt.forecastHandler.ListReports)
			r.Get("/reports/{id}", rt.forecastHandler.GetReport)
		})

		r.Get("/dashboard/activity", rt.dashboardHandler.Activity)
	})

	return r
}

func writeHealth(w http.ResponseWriter, status int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// databaseHealth reports connection pool statistics
func (rt *Router) databaseHealth(w http.ResponseWriter, r *http.Request) {
	stats, err := database.HealthCheckWithStats(rt.db)
	if err != nil {
		rt.logger.Error("Database health check failed", zap.Error(err))
		writeHealth(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":  "unhealthy",
			"error":   err.Error(),
			"service": "database",
		})
		return
	}

	writeHealth(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "database",
		"stats": map[string]interface{}{
			"max_open_connections": stats.MaxOpenConnections,
			"open_connections":     stats.OpenConnections,
			"in_use":               stats.InUse,
			"idle":                 stats.Idle,
			"wait_count":           stats.WaitCount,
			"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
		},
	})
}

// readiness checks the database and, when configured, the report cache
func (rt *Router) readiness(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]interface{})
	healthy := true

	record := func(name string, err error) {
		if err != nil {
			rt.logger.Error("Readiness check failed", zap.String("dependency", name), zap.Error(err))
			checks[name] = map[string]interface{}{"status": "unhealthy", "error": err.Error()}
			healthy = false
			return
		}
		checks[name] = map[string]interface{}{"status": "healthy"}
	}

	record("database", database.HealthCheck(rt.db))

	if rt.cache != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		record("cache", rt.cache.Ping(ctx))
		cancel()
	}

	status, label := http.StatusOK, "healthy"
	if !healthy {
		status, label = http.StatusServiceUnavailable, "unhealthy"
	}
	writeHealth(w, status, map[string]interface{}{
		"status": label,
		"checks": checks,
	})
}
