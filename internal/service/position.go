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

// PositionService handles business logic for positions
type PositionService struct {
	positions repository.PositionRepositoryInterface
	employees repository.EmployeeRepositoryInterface
	validator *validator.Validate
}

// NewPositionService creates a new position service
func NewPositionService(positions repository.PositionRepositoryInterface, employees repository.EmployeeRepositoryInterface, validator *validator.Validate) *PositionService {
	return &PositionService{
		positions: positions,
		employees: employees,
		validator: validator,
	}
}

// CreatePositionRequest represents the data needed to create a position
type CreatePositionRequest struct {
	Name        string `json:"name" validate:"required,max=100" example:"Mesero"`
	Description string `json:"description" validate:"max=255"`
}

// UpdatePositionRequest represents the data needed to update a position
type UpdatePositionRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

// PositionResponse represents the response data for a position
type PositionResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at,omitempty"`
}

// CreatePosition creates a position in the caller's branch
func (s *PositionService) CreatePosition(ctx context.Context, req *CreatePositionRequest) (*PositionResponse, error) {
	tenantID, err := callerTenant(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if _, err := s.positions.GetByName(ctx, tenantID, name); err == nil {
		return nil, apperrors.ErrPositionExists
	}

	position := &models.Position{
		TenantModel: models.TenantModel{TenantID: tenantID},
		Name:        name,
		Description: req.Description,
	}
	if err := s.positions.Create(ctx, position); err != nil {
		return nil, writeError(err, apperrors.ErrPositionExists, nil, "create position")
	}

	return toPositionResponse(position), nil
}

// GetPositionByID retrieves a position of the caller's branch
func (s *PositionService) GetPositionByID(ctx context.Context, id uuid.UUID) (*PositionResponse, error) {
	tenantID, err := callerTenant(ctx)
	if err != nil {
		return nil, err
	}

	position, err := s.positions.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrPositionNotFound, "position")
	}
	return toPositionResponse(position), nil
}

// ListPositions lists the positions of the caller's branch
func (s *PositionService) ListPositions(ctx context.Context, page PageRequest) (*PagedResponse[PositionResponse], error) {
	tenantID, err := callerTenant(ctx)
	if err != nil {
		return nil, err
	}
	page, err = page.Normalize()
	if err != nil {
		return nil, err
	}

	positions, total, err := s.positions.GetAll(ctx, tenantID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}

	items := make([]PositionResponse, len(positions))
	for i := range positions {
		items[i] = *toPositionResponse(&positions[i])
	}
	return NewPagedResponse(items, page, total), nil
}

// UpdatePosition updates a position
func (s *PositionService) UpdatePosition(ctx context.Context, id uuid.UUID, req *UpdatePositionRequest) (*PositionResponse, error) {
	tenantID, err := callerTenant(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	position, err := s.positions.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrPositionNotFound, "position")
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if !strings.EqualFold(name, position.Name) {
			if existing, err := s.positions.GetByName(ctx, tenantID, name); err == nil && existing.ID != position.ID {
				return nil, apperrors.ErrPositionExists
			}
		}
		position.Name = name
	}
	if req.Description != nil {
		position.Description = *req.Description
	}

	if err := s.positions.Update(ctx, position); err != nil {
		return nil, writeError(err, apperrors.ErrPositionExists, apperrors.ErrPositionNotFound, "update position")
	}

	return toPositionResponse(position), nil
}

// DeletePosition soft-deletes a position that no live employee holds
func (s *PositionService) DeletePosition(ctx context.Context, id uuid.UUID) error {
	tenantID, err := callerTenant(ctx)
	if err != nil {
		return err
	}

	if _, err := s.positions.GetByID(ctx, tenantID, id); err != nil {
		return lookupError(err, apperrors.ErrPositionNotFound, "position")
	}

	inUse, err := s.employees.CountByPosition(ctx, tenantID, id)
	if err != nil {
		return fmt.Errorf("failed to count employees: %w", err)
	}
	if inUse > 0 {
		return apperrors.ErrPositionInUse
	}

	if err := s.positions.Delete(ctx, tenantID, id); err != nil {
		return writeError(err, nil, apperrors.ErrPositionNotFound, "delete position")
	}
	return nil
}

func toPositionResponse(position *models.Position) *PositionResponse {
	return &PositionResponse{
		ID:          position.ID,
		Name:        position.Name,
		Description: position.Description,
		CreatedAt:   formatTimestamp(&position.CreatedAt),
		UpdatedAt:   formatTimestamp(position.UpdatedAt),
	}
}
