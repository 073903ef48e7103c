package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ledgerlane/crm-api/internal/config"
	"github.com/ledgerlane/crm-api/internal/domain"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const healthCheckTimeout = 3 * time.Second

// NewDatabase creates a new database connection
func NewDatabase(cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	dsn := cfg.ConnectionString()

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("Database connection established",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Name),
		zap.Int("max_open_conns", cfg.MaxOpenConns),
	)

	return db, nil
}

// Models lists every persisted model, in dependency order
func Models() []interface{} {
	return []interface{}{
		&domain.User{},
		&domain.Company{},
		&domain.Client{},
		&domain.Product{},
		&domain.Deal{},
		&domain.DealProduct{},
		&domain.ForecastSnapshot{},
		&domain.ForecastScenario{},
		&domain.WebsiteContact{},
		&domain.ClientCommunication{},
		&domain.Project{},
		&domain.Task{},
	}
}

// AutoMigrate runs automatic migrations (for development and tests only).
// Production schemas are managed by cmd/migrate.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// HealthCheck pings the database
func HealthCheck(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// HealthCheckWithStats pings the database and returns connection pool statistics
func HealthCheckWithStats(db *gorm.DB) (*sql.DBStats, error) {
	if err := HealthCheck(db); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	stats := sqlDB.Stats()
	return &stats, nil
}
