package repository

import (
	"context"

	"staff-backoffice-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ensure PermissionRepository implements PermissionRepositoryInterface
var _ PermissionRepositoryInterface = (*PermissionRepository)(nil)

// PermissionRepository handles database operations for permissions
type PermissionRepository struct {
	db *gorm.DB
}

// NewPermissionRepository creates a new permission repository
func NewPermissionRepository(db *gorm.DB) *PermissionRepository {
	return &PermissionRepository{db: db}
}

// Create creates a new permission
func (r *PermissionRepository) Create(ctx context.Context, permission *models.Permission) error {
	return r.db.WithContext(ctx).Create(permission).Error
}

// GetByID retrieves a permission of the tenant by ID
func (r *PermissionRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Permission, error) {
	var permission models.Permission
	err := r.db.WithContext(ctx).
		Scopes(tenantScope("permissions", tenantID)).
		First(&permission, "permissions.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &permission, nil
}

// GetByCode retrieves a permission of the tenant by its code
func (r *PermissionRepository) GetByCode(ctx context.Context, tenantID uuid.UUID, code string) (*models.Permission, error) {
	var permission models.Permission
	err := r.db.WithContext(ctx).
		Scopes(tenantScope("permissions", tenantID)).
		First(&permission, "permissions.code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &permission, nil
}

// GetByIDs retrieves the live permissions of the tenant among ids
func (r *PermissionRepository) GetByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]models.Permission, error) {
	var permissions []models.Permission
	if len(ids) == 0 {
		return permissions, nil
	}
	err := r.db.WithContext(ctx).
		Scopes(tenantScope("permissions", tenantID)).
		Where("permissions.id IN ?", ids).
		Find(&permissions).Error
	if err != nil {
		return nil, err
	}
	return permissions, nil
}

// GetAll retrieves the permissions of a tenant, optionally of one category, with pagination
func (r *PermissionRepository) GetAll(ctx context.Context, tenantID uuid.UUID, category string, limit, offset int) ([]models.Permission, int64, error) {
	var permissions []models.Permission
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Permission{}).Scopes(tenantScope("permissions", tenantID))
	if category != "" {
		query = query.Where("permissions.category = ?", category)
	}
	query = query.Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("category, code, id").Scopes(paginate(limit, offset)).Find(&permissions).Error
	if err != nil {
		return nil, 0, err
	}

	return permissions, total, nil
}

// Update updates a permission
func (r *PermissionRepository) Update(ctx context.Context, permission *models.Permission) error {
	return updateRecord(ctx, r.db, permission, permission.ID, permission.TenantID)
}

// Delete soft-deletes a permission and revokes it from every role
func (r *PermissionRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := softDelete(ctx, tx, &models.Permission{}, "id = ? AND tenant_id = ?", id, tenantID)
		if err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
		_, err = softDelete(ctx, tx, &models.RolePermission{}, "permission_id = ?", id)
		return err
	})
}
