package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"staff-backoffice-backend/internal/auth"
	"staff-backoffice-backend/internal/database/models"
	apperrors "staff-backoffice-backend/internal/errors"
	"staff-backoffice-backend/internal/identity"
	"staff-backoffice-backend/internal/logger"
	"staff-backoffice-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService handles business logic for back office users
type UserService struct {
	users     repository.UserRepositoryInterface
	roles     repository.RoleRepositoryInterface
	hasher    *auth.PasswordHasher
	validator *validator.Validate
}

// NewUserService creates a new user service
func NewUserService(users repository.UserRepositoryInterface, roles repository.RoleRepositoryInterface, hasher *auth.PasswordHasher, validator *validator.Validate) *UserService {
	return &UserService{
		users:     users,
		roles:     roles,
		hasher:    hasher,
		validator: validator,
	}
}

// CreateUserRequest represents the data needed to create a user in the caller's branch
type CreateUserRequest struct {
	Email     string      `json:"email" validate:"required,email,max=255" example:"cajero@example.com"`
	Password  string      `json:"password" validate:"required,min=8,max=72"`
	FirstName string      `json:"first_name" validate:"required,max=100" example:"Ana"`
	LastName  string      `json:"last_name" validate:"required,max=100" example:"Pérez"`
	RoleIDs   []uuid.UUID `json:"role_ids"`
}

// UpdateUserRequest represents the data needed to update a user
type UpdateUserRequest struct {
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	IsActive  *bool   `json:"is_active"`
}

// AssignRolesRequest replaces the roles of a user
type AssignRolesRequest struct {
	RoleIDs []uuid.UUID `json:"role_ids" validate:"required"`
}

// ChangePasswordRequest changes a password. CurrentPassword is required when changing your own.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"max=72"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

// RoleSummary is a role as listed on a user
type RoleSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// UserResponse represents the response data for a user
type UserResponse struct {
	ID          uuid.UUID     `json:"id"`
	TenantID    uuid.UUID     `json:"tenant_id"`
	Email       string        `json:"email"`
	FirstName   string        `json:"first_name"`
	LastName    string        `json:"last_name"`
	FullName    string        `json:"full_name"`
	IsActive    bool          `json:"is_active"`
	LastLoginAt string        `json:"last_login_at,omitempty"`
	Roles       []RoleSummary `json:"roles,omitempty"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at,omitempty"`
}

// CreateUser creates a user in the caller's branch with an optional initial role set
func (s *UserService) CreateUser(ctx context.Context, req *CreateUserRequest) (*UserResponse, error) {
	me, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	tenantID := me.TenantID
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	roles, err := s.rolesOfTenant(ctx, tenantID, req.RoleIDs)
	if err != nil {
		return nil, err
	}
	if !me.IsAdministrator() && holdsAdministrator(roles) {
		return nil, apperrors.ErrAdministratorOnly
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		TenantModel:  models.TenantModel{TenantID: tenantID},
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		IsActive:     true,
	}
	for _, role := range roles {
		user.UserRoles = append(user.UserRoles, models.UserRole{
			TenantModel: models.TenantModel{TenantID: tenantID},
			RoleID:      role.ID,
		})
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, writeError(err, apperrors.ErrUserExists, nil, "create user")
	}

	logger.WithContext(ctx).WithField("new_user_id", user.ID).Info("user created")
	return s.convertToResponse(user, roles), nil
}

// GetUserByID retrieves a user of the caller's branch with its roles
func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	tenantID, err := callerTenant(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrUserNotFound, "user")
	}

	roles, err := s.users.GetRoles(ctx, tenantID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user roles: %w", err)
	}

	return s.convertToResponse(user, roles), nil
}

// ListUsers lists the users of the caller's branch
func (s *UserService) ListUsers(ctx context.Context, page PageRequest) (*PagedResponse[UserResponse], error) {
	tenantID, err := callerTenant(ctx)
	if err != nil {
		return nil, err
	}
	page, err = page.Normalize()
	if err != nil {
		return nil, err
	}

	users, total, err := s.users.GetAll(ctx, tenantID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	items := make([]UserResponse, len(users))
	for i := range users {
		items[i] = *s.convertToResponse(&users[i], nil)
	}
	return NewPagedResponse(items, page, total), nil
}

// UpdateUser updates the profile fields of a user
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, req *UpdateUserRequest) (*UserResponse, error) {
	me, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	tenantID := me.TenantID
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrUserNotFound, "user")
	}
	if me.UserID != user.ID {
		if err := s.guardAdministrator(ctx, me, user.ID); err != nil {
			return nil, err
		}
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != user.Email {
			if existing, err := s.users.GetByEmail(ctx, email); err == nil && existing.ID != user.ID {
				return nil, apperrors.ErrUserExists
			}
			user.Email = email
		}
	}
	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, writeError(err, apperrors.ErrUserExists, apperrors.ErrUserNotFound, "update user")
	}

	return s.convertToResponse(user, nil), nil
}

// DeleteUser soft-deletes a user and its role assignments
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	me, err := caller(ctx)
	if err != nil {
		return err
	}
	if me.UserID == id {
		return apperrors.ErrDeleteSelf
	}
	if err := s.guardAdministrator(ctx, me, id); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, me.TenantID, id); err != nil {
		return writeError(err, nil, apperrors.ErrUserNotFound, "delete user")
	}

	logger.WithContext(ctx).WithField("deleted_user_id", id).Info("user deleted")
	return nil
}

// AssignRoles replaces the roles of a user. Every role must belong to the caller's branch.
// Only administrators may grant, revoke or otherwise change the roles of an administrator.
func (s *UserService) AssignRoles(ctx context.Context, id uuid.UUID, req *AssignRolesRequest) (*UserResponse, error) {
	me, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	tenantID := me.TenantID
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrUserNotFound, "user")
	}

	roles, err := s.rolesOfTenant(ctx, tenantID, req.RoleIDs)
	if err != nil {
		return nil, err
	}
	if !me.IsAdministrator() && holdsAdministrator(roles) {
		return nil, apperrors.ErrAdministratorOnly
	}
	if err := s.guardAdministrator(ctx, me, user.ID); err != nil {
		return nil, err
	}

	roleIDs := make([]uuid.UUID, len(roles))
	for i, role := range roles {
		roleIDs[i] = role.ID
	}
	if err := s.users.ReplaceRoles(ctx, tenantID, user.ID, roleIDs); err != nil {
		return nil, writeError(err, apperrors.NewAlreadyExistsError("user role", ""), apperrors.ErrUserNotFound, "assign roles")
	}

	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"target_user_id": user.ID,
		"role_count":     len(roleIDs),
	}).Info("user roles replaced")
	return s.convertToResponse(user, roles), nil
}

// ChangePassword sets a new password. Users changing their own password must present the current one;
// the password of an administrator can only be reset by another administrator.
func (s *UserService) ChangePassword(ctx context.Context, id uuid.UUID, req *ChangePasswordRequest) error {
	me, err := caller(ctx)
	if err != nil {
		return err
	}
	if err := validate(s.validator, req); err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, me.TenantID, id)
	if err != nil {
		return lookupError(err, apperrors.ErrUserNotFound, "user")
	}

	if me.UserID == user.ID {
		if !s.hasher.Verify(req.CurrentPassword, user.PasswordHash) {
			return apperrors.ErrIncorrectPassword
		}
	} else if err := s.guardAdministrator(ctx, me, user.ID); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, me.TenantID, user.ID, hash); err != nil {
		return writeError(err, nil, apperrors.ErrUserNotFound, "change password")
	}

	logger.WithContext(ctx).WithField("target_user_id", user.ID).Info("password changed")
	return nil
}

// rolesOfTenant loads the requested roles, rejecting any id that is not a live role of the tenant
func (s *UserService) rolesOfTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]models.Role, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}

	roles, err := s.roles.GetByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get roles: %w", err)
	}
	if len(roles) != len(ids) {
		return nil, apperrors.ErrRoleNotInBranch
	}
	return roles, nil
}

// guardAdministrator rejects a non-administrator caller acting on a user that holds the administrator role
func (s *UserService) guardAdministrator(ctx context.Context, me *identity.Identity, userID uuid.UUID) error {
	if me.IsAdministrator() {
		return nil
	}
	current, err := s.users.GetRoles(ctx, me.TenantID, userID)
	if err != nil {
		return fmt.Errorf("failed to get user roles: %w", err)
	}
	if holdsAdministrator(current) {
		logger.WithContext(ctx).WithField("target_user_id", userID).Warn("administrator account change rejected")
		return apperrors.ErrAdministratorOnly
	}
	return nil
}

func holdsAdministrator(roles []models.Role) bool {
	for _, role := range roles {
		if role.Name == identity.AdministratorRole {
			return true
		}
	}
	return false
}

func (s *UserService) convertToResponse(user *models.User, roles []models.Role) *UserResponse {
	response := &UserResponse{
		ID:          user.ID,
		TenantID:    user.TenantID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		FullName:    user.FullName(),
		IsActive:    user.IsActive,
		LastLoginAt: formatTimestamp(user.LastLoginAt),
		CreatedAt:   formatTimestamp(&user.CreatedAt),
		UpdatedAt:   formatTimestamp(user.UpdatedAt),
	}
	if roles != nil {
		response.Roles = make([]RoleSummary, len(roles))
		for i, role := range roles {
			response.Roles[i] = RoleSummary{ID: role.ID, Name: role.Name}
		}
	}
	return response
}
