package service

import (
	"context"
	"fmt"
	"strings"

	"staff-backoffice-backend/internal/database/models"
	apperrors "staff-backoffice-backend/internal/errors"
	"staff-backoffice-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// PermissionService handles business logic for permissions
type PermissionService struct {
	repo      repository.PermissionRepositoryInterface
	validator *validator.Validate
}

// NewPermissionService creates a new permission service
func NewPermissionService(repo repository.PermissionRepositoryInterface, validator *validator.Validate) *PermissionService {
	return &PermissionService{
		repo:      repo,
		validator: validator,
	}
}

// CreatePermissionRequest represents the data needed to create a permission
type CreatePermissionRequest struct {
	Code        string `json:"code" validate:"required,max=100" example:"POS.Sell"`
	Category    string `json:"category" validate:"required,max=100" example:"POS"`
	Description string `json:"description" validate:"max=255"`
}

// UpdatePermissionRequest represents the data needed to update a permission
type UpdatePermissionRequest struct {
	Code        *string `json:"code" validate:"omitempty,min=1,max=100"`
	Category    *string `json:"category" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=255"`
	IsActive    *bool   `json:"is_active"`
}

// PermissionResponse represents the response data for a permission
type PermissionResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at,omitempty"`
}

// CreatePermission creates a permission code in the caller's branch
func (s *PermissionService) CreatePermission(ctx context.Context, req *CreatePermissionRequest) (*PermissionResponse, error) {
	tenantID, err := callerTenant(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	code := strings.TrimSpace(req.Code)
	if _, err := s.repo.GetByCode(ctx, tenantID, code); err == nil {
		return nil, apperrors.ErrPermissionExists
	}

	permission := &models.Permission{
		TenantModel: models.TenantModel{TenantID: tenantID},
		Code:        code,
		Category:    strings.TrimSpace(req.Category),
		Description: req.Description,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, permission); err != nil {
		return nil, writeError(err, apperrors.ErrPermissionExists, nil, "create permission")
	}

	return toPermissionResponse(permission), nil
}

// GetPermissionByID retrieves a permission of the caller's branch
func (s *PermissionService) GetPermissionByID(ctx context.Context, id uuid.UUID) (*PermissionResponse, error) {
	tenantID, err := callerTenant(ctx)
	if err != nil {
		return nil, err
	}

	permission, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrPermissionNotFound, "permission")
	}
	return toPermissionResponse(permission), nil
}

// ListPermissions lists the permissions of the caller's branch, optionally within one category
func (s *PermissionService) ListPermissions(ctx context.Context, category string, page PageRequest) (*PagedResponse[PermissionResponse], error) {
	tenantID, err := callerTenant(ctx)
	if err != nil {
		return nil, err
	}
	page, err = page.Normalize()
	if err != nil {
		return nil, err
	}

	permissions, total, err := s.repo.GetAll(ctx, tenantID, strings.TrimSpace(category), page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}

	items := make([]PermissionResponse, len(permissions))
	for i := range permissions {
		items[i] = *toPermissionResponse(&permissions[i])
	}
	return NewPagedResponse(items, page, total), nil
}

// UpdatePermission updates a permission
func (s *PermissionService) UpdatePermission(ctx context.Context, id uuid.UUID, req *UpdatePermissionRequest) (*PermissionResponse, error) {
	tenantID, err := callerTenant(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	permission, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrPermissionNotFound, "permission")
	}

	if req.Code != nil {
		code := strings.TrimSpace(*req.Code)
		if code != permission.Code {
			if existing, err := s.repo.GetByCode(ctx, tenantID, code); err == nil && existing.ID != permission.ID {
				return nil, apperrors.ErrPermissionExists
			}
			permission.Code = code
		}
	}
	if req.Category != nil {
		permission.Category = strings.TrimSpace(*req.Category)
	}
	if req.Description != nil {
		permission.Description = *req.Description
	}
	if req.IsActive != nil {
		permission.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, permission); err != nil {
		return nil, writeError(err, apperrors.ErrPermissionExists, apperrors.ErrPermissionNotFound, "update permission")
	}

	return toPermissionResponse(permission), nil
}

// DeletePermission soft-deletes a permission and removes it from every role
func (s *PermissionService) DeletePermission(ctx context.Context, id uuid.UUID) error {
	tenantID, err := callerTenant(ctx)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, tenantID, id); err != nil {
		return writeError(err, nil, apperrors.ErrPermissionNotFound, "delete permission")
	}
	return nil
}

func toPermissionResponse(permission *models.Permission) *PermissionResponse {
	return &PermissionResponse{
		ID:          permission.ID,
		Code:        permission.Code,
		Category:    permission.Category,
		Description: permission.Description,
		IsActive:    permission.IsActive,
		CreatedAt:   formatTimestamp(&permission.CreatedAt),
		UpdatedAt:   formatTimestamp(permission.UpdatedAt),
	}
}
