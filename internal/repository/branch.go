package repository

import (
	"context"

	"staff-backoffice-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ensure BranchRepository implements BranchRepositoryInterface
var _ BranchRepositoryInterface = (*BranchRepository)(nil)

// BranchRepository handles database operations for branches
type BranchRepository struct {
	db *gorm.DB
}

// NewBranchRepository creates a new branch repository
func NewBranchRepository(db *gorm.DB) *BranchRepository {
	return &BranchRepository{db: db}
}

// Create creates a new branch
func (r *BranchRepository) Create(ctx context.Context, branch *models.Branch) error {
	return r.db.WithContext(ctx).Create(branch).Error
}

// GetByID retrieves a live branch by ID
func (r *BranchRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Branch, error) {
	var branch models.Branch
	err := r.db.WithContext(ctx).First(&branch, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

// GetByCode retrieves a live branch by code, case-insensitive
func (r *BranchRepository) GetByCode(ctx context.Context, code string) (*models.Branch, error) {
	var branch models.Branch
	err := r.db.WithContext(ctx).First(&branch, "lower(code) = lower(?)", code).Error
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

// GetAll retrieves all branches with pagination
func (r *BranchRepository) GetAll(ctx context.Context, limit, offset int) ([]models.Branch, int64, error) {
	var branches []models.Branch
	var total int64

	db := r.db.WithContext(ctx)
	if err := db.Model(&models.Branch{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Model(&models.Branch{}).Order("name, id").Scopes(paginate(limit, offset)).Find(&branches).Error; err != nil {
		return nil, 0, err
	}

	return branches, total, nil
}

// Update updates a branch
func (r *BranchRepository) Update(ctx context.Context, branch *models.Branch) error {
	return updateRecord(ctx, r.db, branch, branch.ID, branch.TenantID)
}

// Delete soft-deletes a branch
func (r *BranchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := softDelete(ctx, r.db, &models.Branch{}, "id = ?", id)
	if err != nil {
		return err
	}
	if n == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
