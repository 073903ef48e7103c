package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/ledgerlane/crm-api/internal/domain"
	"github.com/ledgerlane/crm-api/internal/http/handler"
	"github.com/ledgerlane/crm-api/internal/repository"
	"github.com/ledgerlane/crm-api/internal/service"
	"github.com/ledgerlane/crm-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDashboardHandler_Activity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := service.NewDashboardService(repository.NewActivityRepository(db), zap.NewNop())
	h := handler.NewDashboardHandler(svc, zap.NewNop())

	for i, name := range []string{"first", "second", "third"} {
		c := &domain.WebsiteContact{Name: name, Email: name + "@example.com", Subject: "Hello"}
		c.CreatedAt = time.Date(2024, 8, 1, i, 0, 0, 0, time.UTC)
		require.NoError(t, db.Create(c).Error)
	}

	rec := do(t, http.HandlerFunc(h.Activity), http.MethodGet, "/dashboard/activity?limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var feed []domain.ActivityEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feed))
	require.Len(t, feed, 2)
	assert.Equal(t, "New website enquiry from third", feed[0].Title)
	assert.Equal(t, domain.ActivityKindWebsiteContact, feed[0].Type)
	assert.Equal(t, "/contacts/"+feed[0].ID.String(), feed[0].URL)
}
