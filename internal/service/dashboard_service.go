package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/ledgerlane/crm-api/internal/domain"
	"github.com/ledgerlane/crm-api/internal/mapper"
	"github.com/ledgerlane/crm-api/internal/repository"
	"go.uber.org/zap"
)

const (
	DefaultActivityLimit = 10
	MaxActivityLimit     = 50
)

type DashboardService struct {
	activityRepo *repository.ActivityRepository
	logger       *zap.Logger
}

func NewDashboardService(activityRepo *repository.ActivityRepository, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// RecentActivity merges the newest website contacts, client communications,
// tasks, projects, deals and clients into one feed ordered by timestamp, newest
// first. Each source contributes at most limit rows before the merged feed is
// truncated to limit.
func (s *DashboardService) RecentActivity(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	if limit < 1 {
		limit = DefaultActivityLimit
	}
	if limit > MaxActivityLimit {
		limit = MaxActivityLimit
	}

	feed := make([]domain.ActivityEntry, 0, limit*6)

	contacts, err := s.activityRepo.RecentWebsiteContacts(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load website contacts: %w", err)
	}
	for i := range contacts {
		feed = append(feed, mapper.WebsiteContactActivity(&contacts[i]))
	}

	comms, err := s.activityRepo.RecentClientCommunications(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load client communications: %w", err)
	}
	for i := range comms {
		feed = append(feed, mapper.ClientCommunicationActivity(&comms[i]))
	}

	tasks, err := s.activityRepo.RecentTasks(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	for i := range tasks {
		feed = append(feed, mapper.TaskActivity(&tasks[i]))
	}

	projects, err := s.activityRepo.RecentProjects(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	for i := range projects {
		feed = append(feed, mapper.ProjectActivity(&projects[i]))
	}

	deals, err := s.activityRepo.RecentDeals(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load deals: %w", err)
	}
	for i := range deals {
		feed = append(feed, mapper.DealActivity(&deals[i]))
	}

	clients, err := s.activityRepo.RecentClients(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load clients: %w", err)
	}
	for i := range clients {
		feed = append(feed, mapper.ClientActivity(&clients[i]))
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Timestamp.After(feed[j].Timestamp)
	})
	if len(feed) > limit {
		feed = feed[:limit]
	}

	s.logger.Debug("dashboard activity loaded", zap.Int("entries", len(feed)))
	return feed, nil
}
