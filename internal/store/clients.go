package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-authgate/tokenguard/internal/core"
	"github.com/go-authgate/tokenguard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FindClient returns the client with clientID or core.ErrClientNotFound.
func (s *Store) FindClient(ctx context.Context, clientID string) (*models.Client, error) {
	var client models.Client
	err := s.db.WithContext(ctx).Where("client_id = ?", clientID).First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, core.ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find client: %w", err)
	}
	return &client, nil
}

// UpsertClient inserts the client or replaces every column of an existing one.
func (s *Store) UpsertClient(ctx context.Context, client *models.Client) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(client).Error
}

// SetClientActive enables or disables a client.
func (s *Store) SetClientActive(ctx context.Context, clientID string, active bool) error {
	res := s.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("client_id = ?", clientID).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return core.ErrClientNotFound
	}
	return nil
}

// ListClients returns one page of clients ordered by id. page is 1-indexed.
func (s *Store) ListClients(ctx context.Context, page, pageSize int) ([]models.Client, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Client{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clients []models.Client
	err := s.db.WithContext(ctx).
		Order("client_id").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&clients).Error
	if err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

// CountActiveClients counts enabled clients.
func (s *Store) CountActiveClients(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}
