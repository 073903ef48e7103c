package repository

import (
	"context"

	"github.com/ledgerlane/crm-api/internal/domain"
	"gorm.io/gorm"
)

// ActivityRepository reads the records that make up the dashboard activity feed.
// Each method returns the newest rows of one record type.
type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) RecentWebsiteContacts(ctx context.Context, limit int) ([]domain.WebsiteContact, error) {
	return recent[domain.WebsiteContact](r.db.WithContext(ctx), limit)
}

func (r *ActivityRepository) RecentClientCommunications(ctx context.Context, limit int) ([]domain.ClientCommunication, error) {
	return recent[domain.ClientCommunication](r.db.WithContext(ctx).Preload("Client"), limit)
}

func (r *ActivityRepository) RecentTasks(ctx context.Context, limit int) ([]domain.Task, error) {
	return recent[domain.Task](r.db.WithContext(ctx).Preload("Project"), limit)
}

func (r *ActivityRepository) RecentProjects(ctx context.Context, limit int) ([]domain.Project, error) {
	return recent[domain.Project](r.db.WithContext(ctx).Preload("Client"), limit)
}

func (r *ActivityRepository) RecentDeals(ctx context.Context, limit int) ([]domain.Deal, error) {
	return recent[domain.Deal](r.db.WithContext(ctx).Preload("Company"), limit)
}

func (r *ActivityRepository) RecentClients(ctx context.Context, limit int) ([]domain.Client, error) {
	return recent[domain.Client](r.db.WithContext(ctx).Preload("Company"), limit)
}

func recent[T any](query *gorm.DB, limit int) ([]T, error) {
	var rows []T
	err := query.Order("created_at DESC").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
