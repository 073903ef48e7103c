// Package testutil provides shared fixtures for package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerlane/crm-api/internal/database"
	"github.com/ledgerlane/crm-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an isolated in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err, "failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// Date returns a UTC midnight date
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Money wraps an integer amount as a nullable decimal
func Money(v int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(v))
}

// CreateTestUser creates a user with a unique email
func CreateTestUser(t *testing.T, db *gorm.DB, name string) *domain.User {
	t.Helper()
	user := &domain.User{Name: name, Email: uuid.NewString() + "@example.com"}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTestCompany creates a company
func CreateTestCompany(t *testing.T, db *gorm.DB, name string) *domain.Company {
	t.Helper()
	company := &domain.Company{Name: name}
	require.NoError(t, db.Create(company).Error)
	return company
}

// CreateTestProduct creates a product with a monthly price
func CreateTestProduct(t *testing.T, db *gorm.DB, name string, monthlyPrice int64) *domain.Product {
	t.Helper()
	product := &domain.Product{Name: name, Category: "services", MonthlyPrice: Money(monthlyPrice)}
	require.NoError(t, db.Create(product).Error)
	return product
}

// CreateTestDeal inserts a deal as-is, without touching associations
func CreateTestDeal(t *testing.T, db *gorm.DB, deal *domain.Deal) *domain.Deal {
	t.Helper()
	require.NoError(t, db.Omit(clause.Associations).Create(deal).Error)
	return deal
}
