package service

import (
	"context"
	"fmt"
	"strings"

	"staff-backoffice-backend/internal/database/models"
	apperrors "staff-backoffice-backend/internal/errors"
	"staff-backoffice-backend/internal/identity"
	"staff-backoffice-backend/internal/logger"
	"staff-backoffice-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// BranchService handles business logic for branches
type BranchService struct {
	repo      repository.BranchRepositoryInterface
	validator *validator.Validate
}

// NewBranchService creates a new branch service
func NewBranchService(repo repository.BranchRepositoryInterface, validator *validator.Validate) *BranchService {
	return &BranchService{
		repo:      repo,
		validator: validator,
	}
}

// CreateBranchRequest represents the data needed to create a branch
type CreateBranchRequest struct {
	Name      string   `json:"name" validate:"required,max=100" example:"Sucursal Centro"`
	Code      string   `json:"code" validate:"required,max=20" example:"CENTRO"`
	Address   string   `json:"address" validate:"max=255"`
	Phone     string   `json:"phone" validate:"max=30"`
	Email     string   `json:"email" validate:"omitempty,email,max=255"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
}

// UpdateBranchRequest represents the data needed to update a branch
type UpdateBranchRequest struct {
	Name      *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Code      *string  `json:"code" validate:"omitempty,min=1,max=20"`
	Address   *string  `json:"address" validate:"omitempty,max=255"`
	Phone     *string  `json:"phone" validate:"omitempty,max=30"`
	Email     *string  `json:"email" validate:"omitempty,email,max=255"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
	IsActive  *bool    `json:"is_active"`
}

// BranchResponse represents the response data for a branch
type BranchResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at,omitempty"`
}

// CreateBranch creates a new branch. The branch is its own tenant.
func (s *BranchService) CreateBranch(ctx context.Context, req *CreateBranchRequest) (*BranchResponse, error) {
	if _, err := caller(ctx); err != nil {
		return nil, err
	}
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	code := normalizeBranchCode(req.Code)
	if _, err := s.repo.GetByCode(ctx, code); err == nil {
		return nil, apperrors.ErrBranchExists
	}

	branch := &models.Branch{
		Name:      strings.TrimSpace(req.Name),
		Code:      code,
		Address:   req.Address,
		Phone:     req.Phone,
		Email:     req.Email,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		IsActive:  true,
	}

	if err := s.repo.Create(ctx, branch); err != nil {
		return nil, writeError(err, apperrors.ErrBranchExists, nil, "create branch")
	}

	logger.WithContext(ctx).WithField("branch_id", branch.ID).Info("branch created")
	return s.convertToResponse(branch), nil
}

// GetBranchByID retrieves a branch visible to the caller
func (s *BranchService) GetBranchByID(ctx context.Context, id uuid.UUID) (*BranchResponse, error) {
	branch, err := s.visibleBranch(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.convertToResponse(branch), nil
}

// ListBranches lists the caller's branch, or every branch for administrators
func (s *BranchService) ListBranches(ctx context.Context, page PageRequest) (*PagedResponse[BranchResponse], error) {
	id, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	page, err = page.Normalize()
	if err != nil {
		return nil, err
	}

	if !id.IsAdministrator() {
		own, err := s.repo.GetByID(ctx, id.TenantID)
		if err != nil {
			return nil, lookupError(err, apperrors.ErrBranchNotFound, "branch")
		}
		items := []BranchResponse{}
		if page.PageNumber == 1 {
			items = append(items, *s.convertToResponse(own))
		}
		return NewPagedResponse(items, page, 1), nil
	}

	branches, total, err := s.repo.GetAll(ctx, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}

	items := make([]BranchResponse, len(branches))
	for i := range branches {
		items[i] = *s.convertToResponse(&branches[i])
	}
	return NewPagedResponse(items, page, total), nil
}

// UpdateBranch updates a branch visible to the caller
func (s *BranchService) UpdateBranch(ctx context.Context, id uuid.UUID, req *UpdateBranchRequest) (*BranchResponse, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	branch, err := s.visibleBranch(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		code := normalizeBranchCode(*req.Code)
		if code != branch.Code {
			if existing, err := s.repo.GetByCode(ctx, code); err == nil && existing.ID != branch.ID {
				return nil, apperrors.ErrBranchExists
			}
			branch.Code = code
		}
	}
	if req.Name != nil {
		branch.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		branch.Address = *req.Address
	}
	if req.Phone != nil {
		branch.Phone = *req.Phone
	}
	if req.Email != nil {
		branch.Email = *req.Email
	}
	if req.Latitude != nil {
		branch.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		branch.Longitude = req.Longitude
	}
	if req.IsActive != nil {
		branch.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, branch); err != nil {
		return nil, writeError(err, apperrors.ErrBranchExists, apperrors.ErrBranchNotFound, "update branch")
	}

	return s.convertToResponse(branch), nil
}

// DeleteBranch soft-deletes a branch. Callers cannot delete the branch they are signed in to.
func (s *BranchService) DeleteBranch(ctx context.Context, id uuid.UUID) error {
	branch, err := s.visibleBranch(ctx, id)
	if err != nil {
		return err
	}
	if tenantID, _ := callerTenant(ctx); tenantID == branch.ID {
		return apperrors.ErrDeleteOwnBranch
	}

	if err := s.repo.Delete(ctx, branch.ID); err != nil {
		return writeError(err, nil, apperrors.ErrBranchNotFound, "delete branch")
	}

	logger.WithContext(ctx).WithField("branch_id", branch.ID).Info("branch deleted")
	return nil
}

// visibleBranch loads a branch when the caller may see it. Other branches are reported as not found.
func (s *BranchService) visibleBranch(ctx context.Context, branchID uuid.UUID) (*models.Branch, error) {
	id, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if !canSeeBranch(id, branchID) {
		return nil, apperrors.ErrBranchNotFound
	}

	branch, err := s.repo.GetByID(ctx, branchID)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrBranchNotFound, "branch")
	}
	return branch, nil
}

func canSeeBranch(id *identity.Identity, branchID uuid.UUID) bool {
	return id.IsAdministrator() || id.TenantID == branchID
}

func normalizeBranchCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *BranchService) convertToResponse(branch *models.Branch) *BranchResponse {
	return &BranchResponse{
		ID:        branch.ID,
		Name:      branch.Name,
		Code:      branch.Code,
		Address:   branch.Address,
		Phone:     branch.Phone,
		Email:     branch.Email,
		Latitude:  branch.Latitude,
		Longitude: branch.Longitude,
		IsActive:  branch.IsActive,
		CreatedAt: formatTimestamp(&branch.CreatedAt),
		UpdatedAt: formatTimestamp(branch.UpdatedAt),
	}
}
