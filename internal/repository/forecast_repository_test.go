package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerlane/crm-api/internal/domain"
	"github.com/ledgerlane/crm-api/internal/repository"
	"github.com/ledgerlane/crm-api/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSnapshot(title string, start, end time.Time, scenarios ...string) *domain.ForecastSnapshot {
	s := &domain.ForecastSnapshot{
		Title:                title,
		StartDate:            start,
		EndDate:              end,
		TargetAmount:         decimal.NewFromInt(360000),
		PredictedAmount:      decimal.NewFromInt(250000),
		ConfidencePercentage: decimal.NewFromInt(70),
	}
	for _, name := range scenarios {
		s.Scenarios = append(s.Scenarios, domain.ForecastScenario{
			Name:             name,
			Type:             domain.ScenarioRealistic,
			AdjustmentFactor: decimal.NewFromInt(1),
			PredictedAmount:  decimal.NewFromInt(250000),
		})
	}
	return s
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestForecastRepository_SaveCreates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewForecastRepository(db)
	ctx := context.Background()

	s := newSnapshot("Q3", testutil.Date(2024, 7, 1), testutil.Date(2024, 9, 30), "base", "upside")
	require.NoError(t, repo.Save(ctx, s))
	assert.NotEqual(t, uuid.Nil, s.ID)

	found, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Q3", found.Title)
	assert.Len(t, found.Scenarios, 2)
	for _, sc := range found.Scenarios {
		assert.Equal(t, s.ID, sc.ForecastID)
	}
}

func TestForecastRepository_SaveReplacesSameRange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewForecastRepository(db)
	ctx := context.Background()
	start, end := testutil.Date(2024, 7, 1), testutil.Date(2024, 9, 30)

	first := newSnapshot("Q3 draft", start, end, "a", "b", "c")
	require.NoError(t, repo.Save(ctx, first))

	second := newSnapshot("Q3 final", start, end, "only")
	require.NoError(t, repo.Save(ctx, second))

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(1), countRows(t, db, &domain.ForecastSnapshot{}))
	assert.Equal(t, int64(1), countRows(t, db, &domain.ForecastScenario{}))

	found, err := repo.GetByRange(ctx, start, end)
	require.NoError(t, err)
	assert.Equal(t, "Q3 final", found.Title)
	require.Len(t, found.Scenarios, 1)
	assert.Equal(t, "only", found.Scenarios[0].Name)
}

func TestForecastRepository_SaveIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewForecastRepository(db)
	ctx := context.Background()
	start, end := testutil.Date(2024, 1, 1), testutil.Date(2024, 12, 31)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Save(ctx, newSnapshot("2024", start, end, "base", "downside")))
	}

	assert.Equal(t, int64(1), countRows(t, db, &domain.ForecastSnapshot{}))
	assert.Equal(t, int64(2), countRows(t, db, &domain.ForecastScenario{}))
}

func TestForecastRepository_DifferentRangesAreSeparate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewForecastRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newSnapshot("Q3", testutil.Date(2024, 7, 1), testutil.Date(2024, 9, 30))))
	require.NoError(t, repo.Save(ctx, newSnapshot("Jul", testutil.Date(2024, 7, 1), testutil.Date(2024, 7, 31))))

	assert.Equal(t, int64(2), countRows(t, db, &domain.ForecastSnapshot{}))
}

func TestForecastRepository_SaveRollsBackNewSnapshot(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewForecastRepository(db)

	s := newSnapshot("broken", testutil.Date(2024, 7, 1), testutil.Date(2024, 9, 30), "a", "b")
	dup := uuid.New()
	s.Scenarios[0].ID = dup
	s.Scenarios[1].ID = dup

	err := repo.Save(context.Background(), s)
	require.Error(t, err)

	assert.Equal(t, int64(0), countRows(t, db, &domain.ForecastSnapshot{}))
	assert.Equal(t, int64(0), countRows(t, db, &domain.ForecastScenario{}))
}

func TestForecastRepository_SaveRollsBackReplacement(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewForecastRepository(db)
	ctx := context.Background()
	start, end := testutil.Date(2024, 7, 1), testutil.Date(2024, 9, 30)

	require.NoError(t, repo.Save(ctx, newSnapshot("original", start, end, "kept")))

	replacement := newSnapshot("replacement", start, end, "x", "y")
	dup := uuid.New()
	replacement.Scenarios[0].ID = dup
	replacement.Scenarios[1].ID = dup
	require.Error(t, repo.Save(ctx, replacement))

	found, err := repo.GetByRange(ctx, start, end)
	require.NoError(t, err)
	assert.Equal(t, "original", found.Title)
	require.Len(t, found.Scenarios, 1)
	assert.Equal(t, "kept", found.Scenarios[0].Name)
}

func TestForecastRepository_GetByIDNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewForecastRepository(db)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestForecastRepository_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewForecastRepository(db)
	ctx := context.Background()

	for m := time.January; m <= time.May; m++ {
		start := testutil.Date(2024, m, 1)
		require.NoError(t, repo.Save(ctx, newSnapshot(m.String(), start, start.AddDate(0, 1, -1), "base")))
	}

	page, total, err := repo.List(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, page, 2)
	assert.Len(t, page[0].Scenarios, 1)

	last, _, err := repo.List(ctx, 3, 2)
	require.NoError(t, err)
	assert.Len(t, last, 1)
}
