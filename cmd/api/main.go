package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ledgerlane/crm-api/docs"
	"github.com/ledgerlane/crm-api/internal/cache"
	"github.com/ledgerlane/crm-api/internal/config"
	"github.com/ledgerlane/crm-api/internal/database"
	"github.com/ledgerlane/crm-api/internal/http/handler"
	"github.com/ledgerlane/crm-api/internal/http/middleware"
	"github.com/ledgerlane/crm-api/internal/http/router"
	"github.com/ledgerlane/crm-api/internal/jobs"
	"github.com/ledgerlane/crm-api/internal/logger"
	"github.com/ledgerlane/crm-api/internal/repository"
	"github.com/ledgerlane/crm-api/internal/service"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// @title Ledgerlane CRM API
// @version 1.0
// @description Sales forecasting, saved forecast reports and the dashboard activity feed

// @host localhost:8080
// @BasePath /api/v1

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// money is rendered as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)

	// In development secrets come from the environment, elsewhere from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Report cache is optional; the API computes every forecast without it
	var (
		reportCache *cache.RedisReportCache
		cachePinger router.Pinger
		forecastOpt []service.ForecastServiceOption
	)
	if cfg.Cache.Enabled {
		reportCache = cache.NewRedisReportCache(cfg.Cache.Address, cfg.Cache.Password, cfg.Cache.DB)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := reportCache.Ping(pingCtx)
		cancel()
		if err != nil {
			log.Warn("Redis unavailable, continuing without report cache",
				zap.String("address", cfg.Cache.Address),
				zap.Error(err),
			)
			_ = reportCache.Close()
			reportCache = nil
		} else {
			cachePinger = reportCache
			forecastOpt = append(forecastOpt, service.WithReportCache(reportCache, cfg.Cache.TTLDuration()))
			log.Info("Report cache enabled",
				zap.String("address", cfg.Cache.Address),
				zap.Duration("ttl", cfg.Cache.TTLDuration()),
			)
		}
	} else {
		log.Info("Report cache disabled")
	}

	dealRepo := repository.NewDealRepository(db)
	forecastRepo := repository.NewForecastRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	forecastService := service.NewForecastService(dealRepo, forecastRepo, cfg.Forecast.Targets(), log, forecastOpt...)
	dashboardService := service.NewDashboardService(activityRepo, log)

	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	forecastHandler := handler.NewForecastHandler(forecastService, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, log)

	rt := router.NewRouter(
		cfg,
		log,
		db,
		cachePinger,
		rateLimiter,
		forecastHandler,
		dashboardHandler,
	)

	// Warming only pays off when results are cached
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled && reportCache != nil {
		scheduler = jobs.NewScheduler(log)
		if err := jobs.RegisterForecastWarmJob(
			scheduler,
			forecastService,
			log,
			cfg.Jobs.ForecastWarmCron,
			cfg.Server.RequestTimeoutDuration(),
			true,
		); err != nil {
			log.Error("Failed to register forecast warm job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with forecast warm job",
				zap.String("cron_expr", cfg.Jobs.ForecastWarmCron),
			)
		}
	} else {
		log.Info("Forecast warm job disabled",
			zap.Bool("jobs_enabled", cfg.Jobs.Enabled),
			zap.Bool("cache_available", reportCache != nil),
		)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			<-scheduler.Stop().Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		if reportCache != nil {
			if err := reportCache.Close(); err != nil {
				log.Warn("Error closing report cache", zap.Error(err))
			}
		}

		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
