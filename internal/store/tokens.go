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

// StoreToken persists token under handle, replacing an existing record.
func (s *Store) StoreToken(ctx context.Context, handle string, token *models.Token) error {
	row, err := models.NewReferenceToken(handle, token)
	if err != nil {
		return fmt.Errorf("encode reference token: %w", err)
	}
	row.ExpiresAt = row.ExpiresAt.UTC()

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(row).Error
}

// GetToken returns the record stored under handle. Rows whose expiration is
// at or before the current instant are reported as core.ErrTokenNotFound.
func (s *Store) GetToken(ctx context.Context, handle string) (*models.Token, error) {
	var row models.ReferenceToken
	err := s.db.WithContext(ctx).
		Where("handle = ? AND expires_at > ?", handle, s.clock.Now().UTC()).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, core.ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get reference token: %w", err)
	}

	token, err := row.Token()
	if err != nil {
		return nil, fmt.Errorf("decode reference token %s: %w", handle, err)
	}
	return token, nil
}

// RevokeToken deletes handle. Unknown handles are not an error.
func (s *Store) RevokeToken(ctx context.Context, handle string) error {
	return s.db.WithContext(ctx).
		Where("handle = ?", handle).
		Delete(&models.ReferenceToken{}).Error
}

// DeleteExpiredReferenceTokens removes rows past their expiration.
func (s *Store) DeleteExpiredReferenceTokens(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("expires_at <= ?", s.clock.Now().UTC()).
		Delete(&models.ReferenceToken{})
	return res.RowsAffected, res.Error
}

// CountActiveReferenceTokens counts unexpired rows.
func (s *Store) CountActiveReferenceTokens(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.ReferenceToken{}).
		Where("expires_at > ?", s.clock.Now().UTC()).
		Count(&count).Error
	return count, err
}
