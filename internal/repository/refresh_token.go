package repository

import (
	"context"
	"time"

	"staff-backoffice-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ensure RefreshTokenRepository implements RefreshTokenRepositoryInterface
var _ RefreshTokenRepositoryInterface = (*RefreshTokenRepository)(nil)

// RefreshTokenRepository persists refresh token hashes
type RefreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository creates a new refresh token repository
func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

// Create stores a newly issued refresh token
func (r *RefreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// GetByHash retrieves a refresh token by hash, revoked or not
func (r *RefreshTokenRepository) GetByHash(ctx context.Context, hash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := r.db.WithContext(ctx).First(&token, "token_hash = ?", hash).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// Rotate revokes current and stores next in one transaction.
// Only one caller can rotate a given token; the loser gets gorm.ErrRecordNotFound.
func (r *RefreshTokenRepository) Rotate(ctx context.Context, current *models.RefreshToken, next *models.RefreshToken) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(next).Error; err != nil {
			return err
		}
		now := time.Now().UTC()
		result := tx.Model(&models.RefreshToken{}).
			Where("id = ? AND revoked_at IS NULL", current.ID).
			UpdateColumns(map[string]interface{}{
				"revoked_at":     now,
				"replaced_by_id": next.ID,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		current.RevokedAt = &now
		current.ReplacedByID = &next.ID
		return nil
	})
}

// Revoke marks a single refresh token as revoked
func (r *RefreshTokenRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("id = ? AND revoked_at IS NULL", id).
		UpdateColumn("revoked_at", time.Now().UTC()).Error
}

// RevokeAllForUser revokes every outstanding refresh token of a user
func (r *RefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		UpdateColumn("revoked_at", time.Now().UTC()).Error
}
