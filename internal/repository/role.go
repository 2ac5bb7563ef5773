package repository

import (
	"context"

	"staff-backoffice-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ensure RoleRepository implements RoleRepositoryInterface
var _ RoleRepositoryInterface = (*RoleRepository)(nil)

// RoleRepository handles database operations for roles and their permission sets
type RoleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// Create creates a new role
func (r *RoleRepository) Create(ctx context.Context, role *models.Role) error {
	return r.db.WithContext(ctx).Create(role).Error
}

// GetByID retrieves a role of the tenant by ID
func (r *RoleRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Role, error) {
	var role models.Role
	err := r.db.WithContext(ctx).
		Scopes(tenantScope("roles", tenantID)).
		First(&role, "roles.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// GetByName retrieves a role of the tenant by name, case-insensitive
func (r *RoleRepository) GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*models.Role, error) {
	var role models.Role
	err := r.db.WithContext(ctx).
		Scopes(tenantScope("roles", tenantID)).
		First(&role, "lower(roles.name) = lower(?)", name).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// GetByIDs retrieves the live roles of the tenant among ids
func (r *RoleRepository) GetByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]models.Role, error) {
	var roles []models.Role
	if len(ids) == 0 {
		return roles, nil
	}
	err := r.db.WithContext(ctx).
		Scopes(tenantScope("roles", tenantID)).
		Where("roles.id IN ?", ids).
		Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

// GetAll retrieves the roles of a tenant with pagination
func (r *RoleRepository) GetAll(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]models.Role, int64, error) {
	var roles []models.Role
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Role{}).Scopes(tenantScope("roles", tenantID)).Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("name, id").Scopes(paginate(limit, offset)).Find(&roles).Error
	if err != nil {
		return nil, 0, err
	}

	return roles, total, nil
}

// Update updates a role
func (r *RoleRepository) Update(ctx context.Context, role *models.Role) error {
	return updateRecord(ctx, r.db, role, role.ID, role.TenantID)
}

// Delete soft-deletes a role and the associations it owns
func (r *RoleRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := softDelete(ctx, tx, &models.Role{}, "id = ? AND tenant_id = ?", id, tenantID)
		if err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
		if _, err := softDelete(ctx, tx, &models.RolePermission{}, "role_id = ?", id); err != nil {
			return err
		}
		_, err = softDelete(ctx, tx, &models.UserRole{}, "role_id = ?", id)
		return err
	})
}

// GetPermissions returns the live permissions granted to a role
func (r *RoleRepository) GetPermissions(ctx context.Context, tenantID, roleID uuid.UUID) ([]models.Permission, error) {
	var permissions []models.Permission
	err := r.db.WithContext(ctx).
		Model(&models.Permission{}).
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id AND role_permissions.deleted_at IS NULL").
		Where("role_permissions.role_id = ? AND permissions.tenant_id = ?", roleID, tenantID).
		Order("permissions.category, permissions.code").
		Find(&permissions).Error
	if err != nil {
		return nil, err
	}
	return permissions, nil
}

// ReplacePermissions swaps a role's permission set in one transaction
func (r *RoleRepository) ReplacePermissions(ctx context.Context, tenantID, roleID uuid.UUID, permissionIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the role row so concurrent replacements serialize
		var role models.Role
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Scopes(tenantScope("roles", tenantID)).
			First(&role, "roles.id = ?", roleID).Error; err != nil {
			return err
		}
		if _, err := softDelete(ctx, tx, &models.RolePermission{}, "role_id = ?", roleID); err != nil {
			return err
		}
		if len(permissionIDs) == 0 {
			return nil
		}
		grants := make([]models.RolePermission, 0, len(permissionIDs))
		for _, permissionID := range permissionIDs {
			grants = append(grants, models.RolePermission{
				TenantModel:  models.TenantModel{TenantID: tenantID},
				RoleID:       roleID,
				PermissionID: permissionID,
			})
		}
		return tx.Create(&grants).Error
	})
}

// GetActivePermissionCodes returns the distinct codes of active permissions attached to roles
func (r *RoleRepository) GetActivePermissionCodes(ctx context.Context, tenantID uuid.UUID, roleIDs []uuid.UUID) ([]string, error) {
	codes := []string{}
	if len(roleIDs) == 0 {
		return codes, nil
	}
	err := r.db.WithContext(ctx).
		Model(&models.Permission{}).
		Distinct("permissions.code").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id AND role_permissions.deleted_at IS NULL").
		Where("role_permissions.role_id IN ? AND permissions.tenant_id = ? AND permissions.is_active = ?", roleIDs, tenantID, true).
		Order("permissions.code").
		Pluck("permissions.code", &codes).Error
	if err != nil {
		return nil, err
	}
	return codes, nil
}
