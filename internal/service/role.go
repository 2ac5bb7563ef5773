package service

import (
	"context"
	"fmt"
	"strings"

	"staff-backoffice-backend/internal/database/models"
	apperrors "staff-backoffice-backend/internal/errors"
	"staff-backoffice-backend/internal/logger"
	"staff-backoffice-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// RoleService handles business logic for roles
type RoleService struct {
	roles       repository.RoleRepositoryInterface
	permissions repository.PermissionRepositoryInterface
	validator   *validator.Validate
}

// NewRoleService creates a new role service
func NewRoleService(roles repository.RoleRepositoryInterface, permissions repository.PermissionRepositoryInterface, validator *validator.Validate) *RoleService {
	return &RoleService{
		roles:       roles,
		permissions: permissions,
		validator:   validator,
	}
}

// CreateRoleRequest represents the data needed to create a role
type CreateRoleRequest struct {
	Name        string `json:"name" validate:"required,max=100" example:"Cajero"`
	Description string `json:"description" validate:"max=255"`
}

// UpdateRoleRequest represents the data needed to update a role
type UpdateRoleRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=255"`
	IsActive    *bool   `json:"is_active"`
}

// SetPermissionsRequest replaces the permissions granted to a role
type SetPermissionsRequest struct {
	PermissionIDs []uuid.UUID `json:"permission_ids" validate:"required"`
}

// RoleResponse represents the response data for a role
type RoleResponse struct {
	ID          uuid.UUID            `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	IsActive    bool                 `json:"is_active"`
	Permissions []PermissionResponse `json:"permissions,omitempty"`
	CreatedAt   string               `json:"created_at"`
	UpdatedAt   string               `json:"updated_at,omitempty"`
}

// CreateRole creates a role in the caller's branch
func (s *RoleService) CreateRole(ctx context.Context, req *CreateRoleRequest) (*RoleResponse, error) {
	tenantID, err := callerTenant(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if _, err := s.roles.GetByName(ctx, tenantID, name); err == nil {
		return nil, apperrors.ErrRoleExists
	}

	role := &models.Role{
		TenantModel: models.TenantModel{TenantID: tenantID},
		Name:        name,
		Description: req.Description,
		IsActive:    true,
	}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, writeError(err, apperrors.ErrRoleExists, nil, "create role")
	}

	return s.convertToResponse(role, nil), nil
}

// GetRoleByID retrieves a role with its permissions
func (s *RoleService) GetRoleByID(ctx context.Context, id uuid.UUID) (*RoleResponse, error) {
	tenantID, err := callerTenant(ctx)
	if err != nil {
		return nil, err
	}

	role, err := s.roles.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrRoleNotFound, "role")
	}

	permissions, err := s.roles.GetPermissions(ctx, tenantID, role.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get role permissions: %w", err)
	}
	if permissions == nil {
		permissions = []models.Permission{}
	}

	return s.convertToResponse(role, permissions), nil
}

// ListRoles lists the roles of the caller's branch
func (s *RoleService) ListRoles(ctx context.Context, page PageRequest) (*PagedResponse[RoleResponse], error) {
	tenantID, err := callerTenant(ctx)
	if err != nil {
		return nil, err
	}
	page, err = page.Normalize()
	if err != nil {
		return nil, err
	}

	roles, total, err := s.roles.GetAll(ctx, tenantID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	items := make([]RoleResponse, len(roles))
	for i := range roles {
		items[i] = *s.convertToResponse(&roles[i], nil)
	}
	return NewPagedResponse(items, page, total), nil
}

// UpdateRole updates a role
func (s *RoleService) UpdateRole(ctx context.Context, id uuid.UUID, req *UpdateRoleRequest) (*RoleResponse, error) {
	tenantID, err := callerTenant(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	role, err := s.roles.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrRoleNotFound, "role")
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if !strings.EqualFold(name, role.Name) {
			if existing, err := s.roles.GetByName(ctx, tenantID, name); err == nil && existing.ID != role.ID {
				return nil, apperrors.ErrRoleExists
			}
		}
		role.Name = name
	}
	if req.Description != nil {
		role.Description = *req.Description
	}
	if req.IsActive != nil {
		role.IsActive = *req.IsActive
	}

	if err := s.roles.Update(ctx, role); err != nil {
		return nil, writeError(err, apperrors.ErrRoleExists, apperrors.ErrRoleNotFound, "update role")
	}

	return s.convertToResponse(role, nil), nil
}

// DeleteRole soft-deletes a role together with its grants and assignments
func (s *RoleService) DeleteRole(ctx context.Context, id uuid.UUID) error {
	tenantID, err := callerTenant(ctx)
	if err != nil {
		return err
	}

	if err := s.roles.Delete(ctx, tenantID, id); err != nil {
		return writeError(err, nil, apperrors.ErrRoleNotFound, "delete role")
	}

	logger.WithContext(ctx).WithField("role_id", id).Info("role deleted")
	return nil
}

// SetPermissions replaces the permission set of a role in one transaction.
// Every permission must belong to the caller's branch.
func (s *RoleService) SetPermissions(ctx context.Context, id uuid.UUID, req *SetPermissionsRequest) (*RoleResponse, error) {
	tenantID, err := callerTenant(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	role, err := s.roles.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrRoleNotFound, "role")
	}

	ids := uniqueIDs(req.PermissionIDs)
	permissions := []models.Permission{}
	if len(ids) > 0 {
		permissions, err = s.permissions.GetByIDs(ctx, tenantID, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to get permissions: %w", err)
		}
		if len(permissions) != len(ids) {
			return nil, apperrors.ErrPermissionNotInBranch
		}
	}

	if err := s.roles.ReplacePermissions(ctx, tenantID, role.ID, ids); err != nil {
		return nil, writeError(err, apperrors.NewAlreadyExistsError("role permission", ""), apperrors.ErrRoleNotFound, "set role permissions")
	}

	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"role_id":          role.ID,
		"permission_count": len(ids),
	}).Info("role permissions replaced")
	return s.convertToResponse(role, permissions), nil
}

func (s *RoleService) convertToResponse(role *models.Role, permissions []models.Permission) *RoleResponse {
	response := &RoleResponse{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		IsActive:    role.IsActive,
		CreatedAt:   formatTimestamp(&role.CreatedAt),
		UpdatedAt:   formatTimestamp(role.UpdatedAt),
	}
	if permissions != nil {
		response.Permissions = make([]PermissionResponse, len(permissions))
		for i := range permissions {
			response.Permissions[i] = *toPermissionResponse(&permissions[i])
		}
	}
	return response
}
