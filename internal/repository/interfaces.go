package repository

import (
	"context"
	"time"

	"staff-backoffice-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// EmployeeFilter narrows an employee listing
type EmployeeFilter struct {
	ActiveOnly bool
	PositionID *uuid.UUID
}

// BranchRepositoryInterface defines the interface for branch repository operations
type BranchRepositoryInterface interface {
	Create(ctx context.Context, branch *models.Branch) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Branch, error)
	GetByCode(ctx context.Context, code string) (*models.Branch, error)
	GetAll(ctx context.Context, limit, offset int) ([]models.Branch, int64, error)
	Update(ctx context.Context, branch *models.Branch) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepositoryInterface defines the interface for user repository operations
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.User, error)
	GetByIDIncludingDeleted(ctx context.Context, tenantID, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetAll(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]models.User, int64, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, tenantID, id uuid.UUID, passwordHash string) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	GetRoles(ctx context.Context, tenantID, userID uuid.UUID) ([]models.Role, error)
	ReplaceRoles(ctx context.Context, tenantID, userID uuid.UUID, roleIDs []uuid.UUID) error
}

// RoleRepositoryInterface defines the interface for role repository operations
type RoleRepositoryInterface interface {
	Create(ctx context.Context, role *models.Role) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Role, error)
	GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*models.Role, error)
	GetByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]models.Role, error)
	GetAll(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]models.Role, int64, error)
	Update(ctx context.Context, role *models.Role) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	GetPermissions(ctx context.Context, tenantID, roleID uuid.UUID) ([]models.Permission, error)
	ReplacePermissions(ctx context.Context, tenantID, roleID uuid.UUID, permissionIDs []uuid.UUID) error
	GetActivePermissionCodes(ctx context.Context, tenantID uuid.UUID, roleIDs []uuid.UUID) ([]string, error)
}

// PermissionRepositoryInterface defines the interface for permission repository operations
type PermissionRepositoryInterface interface {
	Create(ctx context.Context, permission *models.Permission) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Permission, error)
	GetByCode(ctx context.Context, tenantID uuid.UUID, code string) (*models.Permission, error)
	GetByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]models.Permission, error)
	GetAll(ctx context.Context, tenantID uuid.UUID, category string, limit, offset int) ([]models.Permission, int64, error)
	Update(ctx context.Context, permission *models.Permission) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// PositionRepositoryInterface defines the interface for position repository operations
type PositionRepositoryInterface interface {
	Create(ctx context.Context, position *models.Position) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Position, error)
	GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*models.Position, error)
	GetAll(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]models.Position, int64, error)
	Update(ctx context.Context, position *models.Position) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// EmployeeRepositoryInterface defines the interface for employee repository operations
type EmployeeRepositoryInterface interface {
	Create(ctx context.Context, employee *models.Employee) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Employee, error)
	GetByNationalID(ctx context.Context, tenantID uuid.UUID, nationalID string) (*models.Employee, error)
	List(ctx context.Context, tenantID uuid.UUID, filter EmployeeFilter, limit, offset int) ([]models.Employee, int64, error)
	CountByPosition(ctx context.Context, tenantID, positionID uuid.UUID) (int64, error)
	Update(ctx context.Context, employee *models.Employee) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// RefreshTokenRepositoryInterface defines the interface for refresh token persistence
type RefreshTokenRepositoryInterface interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByHash(ctx context.Context, hash string) (*models.RefreshToken, error)
	Rotate(ctx context.Context, current *models.RefreshToken, next *models.RefreshToken) error
	Revoke(ctx context.Context, id uuid.UUID) error
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
}
