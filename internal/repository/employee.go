package repository

import (
	"context"

	"staff-backoffice-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ensure EmployeeRepository implements EmployeeRepositoryInterface
var _ EmployeeRepositoryInterface = (*EmployeeRepository)(nil)

// EmployeeRepository handles database operations for employees
type EmployeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Create creates a new employee
func (r *EmployeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	return r.db.WithContext(ctx).Omit("Position").Create(employee).Error
}

// GetByID retrieves an employee of the tenant by ID with its position
func (r *EmployeeRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).
		Preload("Position").
		Scopes(tenantScope("employees", tenantID)).
		First(&employee, "employees.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// GetByNationalID retrieves an employee of the tenant by national id
func (r *EmployeeRepository) GetByNationalID(ctx context.Context, tenantID uuid.UUID, nationalID string) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).
		Scopes(tenantScope("employees", tenantID)).
		First(&employee, "employees.national_id = ?", nationalID).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// List retrieves the employees of a tenant ordered by last name, first name and id
func (r *EmployeeRepository) List(ctx context.Context, tenantID uuid.UUID, filter EmployeeFilter, limit, offset int) ([]models.Employee, int64, error) {
	var employees []models.Employee
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Employee{}).Scopes(tenantScope("employees", tenantID))
	if filter.ActiveOnly {
		query = query.Where("employees.is_active = ?", true)
	}
	if filter.PositionID != nil {
		query = query.Where("employees.position_id = ?", *filter.PositionID)
	}
	query = query.Session(&gorm.Session{})

	// Get total count
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Get paginated results
	err := query.Preload("Position").
		Order("employees.last_name, employees.first_name, employees.id").
		Scopes(paginate(limit, offset)).
		Find(&employees).Error
	if err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// CountByPosition counts the live employees holding a position
func (r *EmployeeRepository) CountByPosition(ctx context.Context, tenantID, positionID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Employee{}).
		Scopes(tenantScope("employees", tenantID)).
		Where("employees.position_id = ?", positionID).
		Count(&total).Error
	return total, err
}

// Update updates an employee
func (r *EmployeeRepository) Update(ctx context.Context, employee *models.Employee) error {
	return updateRecord(ctx, r.db, employee, employee.ID, employee.TenantID)
}

// Delete soft-deletes an employee
func (r *EmployeeRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	n, err := softDelete(ctx, r.db, &models.Employee{}, "id = ? AND tenant_id = ?", id, tenantID)
	if err != nil {
		return err
	}
	if n == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
