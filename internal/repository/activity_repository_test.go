package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/ledgerlane/crm-api/internal/domain"
	"github.com/ledgerlane/crm-api/internal/repository"
	"github.com/ledgerlane/crm-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityRepository_RecentOrdersNewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewActivityRepository(db)
	base := time.Date(2024, 8, 1, 9, 0, 0, 0, time.UTC)

	for i, name := range []string{"oldest", "middle", "newest"} {
		c := &domain.WebsiteContact{Name: name, Email: name + "@example.com"}
		c.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, db.Create(c).Error)
	}

	contacts, err := repo.RecentWebsiteContacts(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, "newest", contacts[0].Name)
	assert.Equal(t, "middle", contacts[1].Name)
}

func TestActivityRepository_PreloadsRelations(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewActivityRepository(db)
	ctx := context.Background()

	company := testutil.CreateTestCompany(t, db, "Acme")
	client := &domain.Client{Name: "Jane", Status: "active", CompanyID: &company.ID}
	require.NoError(t, db.Create(client).Error)
	project := &domain.Project{Name: "Storefront", Status: "active", ClientID: &client.ID}
	require.NoError(t, db.Create(project).Error)
	require.NoError(t, db.Create(&domain.Task{Title: "Wireframes", Status: "todo", ProjectID: &project.ID}).Error)
	require.NoError(t, db.Create(&domain.ClientCommunication{ClientID: client.ID, Type: "email", Subject: "Kickoff"}).Error)

	comms, err := repo.RecentClientCommunications(ctx, 5)
	require.NoError(t, err)
	require.Len(t, comms, 1)
	require.NotNil(t, comms[0].Client)
	assert.Equal(t, "Jane", comms[0].Client.Name)

	tasks, err := repo.RecentTasks(ctx, 5)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.NotNil(t, tasks[0].Project)
	assert.Equal(t, "Storefront", tasks[0].Project.Name)

	projects, err := repo.RecentProjects(ctx, 5)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.NotNil(t, projects[0].Client)

	clients, err := repo.RecentClients(ctx, 5)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	require.NotNil(t, clients[0].Company)
	assert.Equal(t, "Acme", clients[0].Company.Name)

	deals, err := repo.RecentDeals(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, deals)
}
