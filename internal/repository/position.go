package repository

import (
	"context"

	"staff-backoffice-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ensure PositionRepository implements PositionRepositoryInterface
var _ PositionRepositoryInterface = (*PositionRepository)(nil)

// PositionRepository handles database operations for positions
type PositionRepository struct {
	db *gorm.DB
}

// NewPositionRepository creates a new position repository
func NewPositionRepository(db *gorm.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

// Create creates a new position
func (r *PositionRepository) Create(ctx context.Context, position *models.Position) error {
	return r.db.WithContext(ctx).Create(position).Error
}

// GetByID retrieves a position of the tenant by ID
func (r *PositionRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Position, error) {
	var position models.Position
	err := r.db.WithContext(ctx).
		Scopes(tenantScope("positions", tenantID)).
		First(&position, "positions.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &position, nil
}

// GetByName retrieves a position of the tenant by name, case-insensitive
func (r *PositionRepository) GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*models.Position, error) {
	var position models.Position
	err := r.db.WithContext(ctx).
		Scopes(tenantScope("positions", tenantID)).
		First(&position, "lower(positions.name) = lower(?)", name).Error
	if err != nil {
		return nil, err
	}
	return &position, nil
}

// GetAll retrieves the positions of a tenant with pagination
func (r *PositionRepository) GetAll(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]models.Position, int64, error) {
	var positions []models.Position
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Position{}).Scopes(tenantScope("positions", tenantID)).Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("name, id").Scopes(paginate(limit, offset)).Find(&positions).Error
	if err != nil {
		return nil, 0, err
	}

	return positions, total, nil
}

// Update updates a position
func (r *PositionRepository) Update(ctx context.Context, position *models.Position) error {
	return updateRecord(ctx, r.db, position, position.ID, position.TenantID)
}

// Delete soft-deletes a position
func (r *PositionRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	n, err := softDelete(ctx, r.db, &models.Position{}, "id = ? AND tenant_id = ?", id, tenantID)
	if err != nil {
		return err
	}
	if n == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
