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
	"github.com/shopspring/decimal"
)

// EmployeeService handles business logic for employees
type EmployeeService struct {
	employees repository.EmployeeRepositoryInterface
	positions repository.PositionRepositoryInterface
	validator *validator.Validate
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(employees repository.EmployeeRepositoryInterface, positions repository.PositionRepositoryInterface, validator *validator.Validate) *EmployeeService {
	return &EmployeeService{
		employees: employees,
		positions: positions,
		validator: validator,
	}
}

// CreateEmployeeRequest represents the data needed to hire an employee
type CreateEmployeeRequest struct {
	PositionID uuid.UUID       `json:"position_id" validate:"required"`
	FirstName  string          `json:"first_name" validate:"required,max=100" example:"Luis"`
	LastName   string          `json:"last_name" validate:"required,max=100" example:"García"`
	NationalID string          `json:"national_id" validate:"required,max=30" example:"0801199912345"`
	Email      string          `json:"email" validate:"omitempty,email,max=255"`
	Phone      string          `json:"phone" validate:"max=30"`
	Address    string          `json:"address" validate:"max=255"`
	BirthDate  *string         `json:"birth_date" example:"1990-04-12"`
	HireDate   string          `json:"hire_date" validate:"required" example:"2024-01-15"`
	HourlyRate decimal.Decimal `json:"hourly_rate" swaggertype:"string" example:"85.50"`
}

// UpdateEmployeeRequest represents the data needed to update an employee
type UpdateEmployeeRequest struct {
	PositionID *uuid.UUID       `json:"position_id"`
	FirstName  *string          `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName   *string          `json:"last_name" validate:"omitempty,min=1,max=100"`
	NationalID *string          `json:"national_id" validate:"omitempty,min=1,max=30"`
	Email      *string          `json:"email" validate:"omitempty,email,max=255"`
	Phone      *string          `json:"phone" validate:"omitempty,max=30"`
	Address    *string          `json:"address" validate:"omitempty,max=255"`
	BirthDate  *string          `json:"birth_date" example:"1990-04-12"`
	HireDate   *string          `json:"hire_date" example:"2024-01-15"`
	HourlyRate *decimal.Decimal `json:"hourly_rate" swaggertype:"string" example:"85.50"`
	IsActive   *bool            `json:"is_active"`
}

// TerminateEmployeeRequest ends the employment of an employee
type TerminateEmployeeRequest struct {
	TerminationDate string `json:"termination_date" validate:"required" example:"2025-06-30"`
}

// EmployeeListFilter narrows an employee listing
type EmployeeListFilter struct {
	ActiveOnly bool
	PositionID *uuid.UUID
}

// EmployeeResponse represents the response data for an employee
type EmployeeResponse struct {
	ID              uuid.UUID         `json:"id"`
	PositionID      uuid.UUID         `json:"position_id"`
	Position        *PositionResponse `json:"position,omitempty"`
	FirstName       string            `json:"first_name"`
	LastName        string            `json:"last_name"`
	NationalID      string            `json:"national_id"`
	Email           string            `json:"email"`
	Phone           string            `json:"phone"`
	Address         string            `json:"address"`
	BirthDate       *string           `json:"birth_date,omitempty"`
	HireDate        string            `json:"hire_date"`
	TerminationDate *string           `json:"termination_date,omitempty"`
	HourlyRate      decimal.Decimal   `json:"hourly_rate" swaggertype:"string"`
	IsActive        bool              `json:"is_active"`
	CreatedAt       string            `json:"created_at"`
	UpdatedAt       string            `json:"updated_at,omitempty"`
}

// CreateEmployee hires an employee into a position of the caller's branch
func (s *EmployeeService) CreateEmployee(ctx context.Context, req *CreateEmployeeRequest) (*EmployeeResponse, error) {
	tenantID, err := callerTenant(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}
	if req.HourlyRate.IsNegative() {
		return nil, apperrors.NewValidationError("hourly_rate", "must not be negative")
	}

	hireDate, err := parseDate("hire_date", req.HireDate)
	if err != nil {
		return nil, err
	}
	birthDate, err := parseOptionalDate("birth_date", req.BirthDate)
	if err != nil {
		return nil, err
	}

	position, err := s.positionOfTenant(ctx, tenantID, req.PositionID)
	if err != nil {
		return nil, err
	}

	nationalID := strings.TrimSpace(req.NationalID)
	if _, err := s.employees.GetByNationalID(ctx, tenantID, nationalID); err == nil {
		return nil, apperrors.ErrEmployeeExists
	}

	employee := &models.Employee{
		TenantModel: models.TenantModel{TenantID: tenantID},
		PositionID:  position.ID,
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		NationalID:  nationalID,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		BirthDate:   birthDate,
		HireDate:    hireDate,
		HourlyRate:  req.HourlyRate,
		IsActive:    true,
	}
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, writeError(err, apperrors.ErrEmployeeExists, nil, "create employee")
	}
	employee.Position = position

	logger.WithContext(ctx).WithField("employee_id", employee.ID).Info("employee created")
	return toEmployeeResponse(employee), nil
}

// GetEmployeeByID retrieves an employee of the caller's branch
func (s *EmployeeService) GetEmployeeByID(ctx context.Context, id uuid.UUID) (*EmployeeResponse, error) {
	tenantID, err := callerTenant(ctx)
	if err != nil {
		return nil, err
	}

	employee, err := s.employees.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrEmployeeNotFound, "employee")
	}
	return toEmployeeResponse(employee), nil
}

// ListEmployees lists employees ordered by last name, first name and id
func (s *EmployeeService) ListEmployees(ctx context.Context, filter EmployeeListFilter, page PageRequest) (*PagedResponse[EmployeeResponse], error) {
	tenantID, err := callerTenant(ctx)
	if err != nil {
		return nil, err
	}
	page, err = page.Normalize()
	if err != nil {
		return nil, err
	}

	employees, total, err := s.employees.List(ctx, tenantID, repository.EmployeeFilter{
		ActiveOnly: filter.ActiveOnly,
		PositionID: filter.PositionID,
	}, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	items := make([]EmployeeResponse, len(employees))
	for i := range employees {
		items[i] = *toEmployeeResponse(&employees[i])
	}
	return NewPagedResponse(items, page, total), nil
}

// UpdateEmployee updates an employee
func (s *EmployeeService) UpdateEmployee(ctx context.Context, id uuid.UUID, req *UpdateEmployeeRequest) (*EmployeeResponse, error) {
	tenantID, err := callerTenant(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	employee, err := s.employees.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrEmployeeNotFound, "employee")
	}

	if req.PositionID != nil && *req.PositionID != employee.PositionID {
		position, err := s.positionOfTenant(ctx, tenantID, *req.PositionID)
		if err != nil {
			return nil, err
		}
		employee.PositionID = position.ID
		employee.Position = position
	}
	if req.NationalID != nil {
		nationalID := strings.TrimSpace(*req.NationalID)
		if nationalID != employee.NationalID {
			if existing, err := s.employees.GetByNationalID(ctx, tenantID, nationalID); err == nil && existing.ID != employee.ID {
				return nil, apperrors.ErrEmployeeExists
			}
			employee.NationalID = nationalID
		}
	}
	if req.FirstName != nil {
		employee.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		employee.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		employee.Email = *req.Email
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
	}
	if req.Address != nil {
		employee.Address = *req.Address
	}
	if req.BirthDate != nil {
		birthDate, err := parseOptionalDate("birth_date", req.BirthDate)
		if err != nil {
			return nil, err
		}
		employee.BirthDate = birthDate
	}
	if req.HireDate != nil {
		hireDate, err := parseDate("hire_date", *req.HireDate)
		if err != nil {
			return nil, err
		}
		employee.HireDate = hireDate
	}
	if req.HourlyRate != nil {
		if req.HourlyRate.IsNegative() {
			return nil, apperrors.NewValidationError("hourly_rate", "must not be negative")
		}
		employee.HourlyRate = *req.HourlyRate
	}
	if req.IsActive != nil {
		employee.IsActive = *req.IsActive
		if employee.IsActive {
			employee.TerminationDate = nil
		}
	}
	if employee.TerminationDate != nil && employee.TerminationDate.Before(employee.HireDate) {
		return nil, apperrors.ErrTerminationBeforeHire
	}

	if err := s.employees.Update(ctx, employee); err != nil {
		return nil, writeError(err, apperrors.ErrEmployeeExists, apperrors.ErrEmployeeNotFound, "update employee")
	}

	return toEmployeeResponse(employee), nil
}

// TerminateEmployee records the termination date and deactivates the employee
func (s *EmployeeService) TerminateEmployee(ctx context.Context, id uuid.UUID, req *TerminateEmployeeRequest) (*EmployeeResponse, error) {
	tenantID, err := callerTenant(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	terminationDate, err := parseDate("termination_date", req.TerminationDate)
	if err != nil {
		return nil, err
	}

	employee, err := s.employees.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrEmployeeNotFound, "employee")
	}
	if !employee.IsActive || employee.TerminationDate != nil {
		return nil, apperrors.ErrEmployeeAlreadyInactive
	}
	if terminationDate.Before(employee.HireDate) {
		return nil, apperrors.ErrTerminationBeforeHire
	}

	employee.TerminationDate = &terminationDate
	employee.IsActive = false
	if err := s.employees.Update(ctx, employee); err != nil {
		return nil, writeError(err, nil, apperrors.ErrEmployeeNotFound, "terminate employee")
	}

	logger.WithContext(ctx).WithField("employee_id", employee.ID).Info("employee terminated")
	return toEmployeeResponse(employee), nil
}

// DeleteEmployee soft-deletes an employee
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	tenantID, err := callerTenant(ctx)
	if err != nil {
		return err
	}

	if err := s.employees.Delete(ctx, tenantID, id); err != nil {
		return writeError(err, nil, apperrors.ErrEmployeeNotFound, "delete employee")
	}
	return nil
}

// positionOfTenant loads a position of the tenant. Positions of other branches are reported as missing.
func (s *EmployeeService) positionOfTenant(ctx context.Context, tenantID, positionID uuid.UUID) (*models.Position, error) {
	position, err := s.positions.GetByID(ctx, tenantID, positionID)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrPositionNotInBranch, "position")
	}
	return position, nil
}

func toEmployeeResponse(employee *models.Employee) *EmployeeResponse {
	response := &EmployeeResponse{
		ID:              employee.ID,
		PositionID:      employee.PositionID,
		FirstName:       employee.FirstName,
		LastName:        employee.LastName,
		NationalID:      employee.NationalID,
		Email:           employee.Email,
		Phone:           employee.Phone,
		Address:         employee.Address,
		BirthDate:       formatDate(employee.BirthDate),
		HireDate:        employee.HireDate.Format(dateLayout),
		TerminationDate: formatDate(employee.TerminationDate),
		HourlyRate:      employee.HourlyRate,
		IsActive:        employee.IsActive,
		CreatedAt:       formatTimestamp(&employee.CreatedAt),
		UpdatedAt:       formatTimestamp(employee.UpdatedAt),
	}
	if employee.Position != nil {
		response.Position = toPositionResponse(employee.Position)
	}
	return response
}
