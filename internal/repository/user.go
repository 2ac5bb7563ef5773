package repository

import (
	"context"
	"strings"
	"time"

	"staff-backoffice-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ensure UserRepository implements UserRepositoryInterface
var _ UserRepositoryInterface = (*UserRepository)(nil)

// UserRepository handles database operations for users
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID retrieves a user of the tenant by ID
func (r *UserRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Scopes(tenantScope("users", tenantID)).
		First(&user, "users.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByIDIncludingDeleted retrieves a user of the tenant by ID even when soft-deleted
func (r *UserRepository) GetByIDIncludingDeleted(ctx context.Context, tenantID, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Unscoped().
		Scopes(tenantScope("users", tenantID)).
		First(&user, "users.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a live user by email across all branches
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "lower(email) = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetAll retrieves the users of a tenant with pagination
func (r *UserRepository) GetAll(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	query := r.db.WithContext(ctx).Model(&models.User{}).Scopes(tenantScope("users", tenantID)).Session(&gorm.Session{})

	// Get total count
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Get paginated results
	err := query.Order("last_name, first_name, id").Scopes(paginate(limit, offset)).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// Update updates a user's profile columns; password and last login have their own paths
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	result := r.db.WithContext(ctx).
		Model(user).
		Where("id = ? AND tenant_id = ?", user.ID, user.TenantID).
		Select("email", "first_name", "last_name", "is_active", "updated_at", "updated_by").
		Updates(user)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, tenantID, id uuid.UUID, passwordHash string) error {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateLastLogin records a successful sign-in without touching audit columns
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
}

// Delete soft-deletes a user together with its role assignments
func (r *UserRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := softDelete(ctx, tx, &models.User{}, "id = ? AND tenant_id = ?", id, tenantID)
		if err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
		_, err = softDelete(ctx, tx, &models.UserRole{}, "user_id = ?", id)
		return err
	})
}

// GetRoles returns the live roles assigned to the user inside the tenant
func (r *UserRepository) GetRoles(ctx context.Context, tenantID, userID uuid.UUID) ([]models.Role, error) {
	var roles []models.Role
	err := r.db.WithContext(ctx).
		Model(&models.Role{}).
		Joins("JOIN user_roles ON user_roles.role_id = roles.id AND user_roles.deleted_at IS NULL").
		Where("user_roles.user_id = ? AND user_roles.tenant_id = ? AND roles.tenant_id = ?", userID, tenantID, tenantID).
		Order("roles.name").
		Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

// ReplaceRoles swaps the user's role assignments in the tenant in one transaction
func (r *UserRepository) ReplaceRoles(ctx context.Context, tenantID, userID uuid.UUID, roleIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := softDelete(ctx, tx, &models.UserRole{}, "user_id = ? AND tenant_id = ?", userID, tenantID); err != nil {
			return err
		}
		if len(roleIDs) == 0 {
			return nil
		}
		assignments := make([]models.UserRole, 0, len(roleIDs))
		for _, roleID := range roleIDs {
			assignments = append(assignments, models.UserRole{
				TenantModel: models.TenantModel{TenantID: tenantID},
				UserID:      userID,
				RoleID:      roleID,
			})
		}
		return tx.Create(&assignments).Error
	})
}
