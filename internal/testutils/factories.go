package testutils

import (
	"fmt"
	"time"

	"staff-backoffice-backend/internal/database/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BranchFactory provides methods to create test Branch data
type BranchFactory struct{}

// NewBranchFactory creates a new BranchFactory
func NewBranchFactory() *BranchFactory {
	return &BranchFactory{}
}

// Create creates a test Branch with default values. The branch is its own tenant.
func (f *BranchFactory) Create() *models.Branch {
	id := uuid.New()
	return &models.Branch{
		TenantModel: models.TenantModel{ID: id, TenantID: id},
		Name:        "Sucursal Centro",
		Code:        "CTR-" + id.String()[:6],
		Address:     "Av. Principal 123",
		Phone:       "+52 555 000 0000",
		Email:       "centro@example.com",
		IsActive:    true,
	}
}

// WithCode sets a custom code for the branch
func (f *BranchFactory) WithCode(code string) *models.Branch {
	branch := f.Create()
	branch.Code = code
	return branch
}

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User with default values
func (f *UserFactory) Create(tenantID uuid.UUID) *models.User {
	id := uuid.New()
	return &models.User{
		TenantModel:  models.TenantModel{ID: id, TenantID: tenantID},
		Email:        fmt.Sprintf("user-%s@example.com", id.String()[:8]),
		PasswordHash: "$2a$04$invalidinvalidinvalidinvalidinvalidinvalidinvalidinva",
		FirstName:    "Ana",
		LastName:     "Lopez",
		IsActive:     true,
	}
}

// WithEmail sets a custom email for the user
func (f *UserFactory) WithEmail(tenantID uuid.UUID, email string) *models.User {
	user := f.Create(tenantID)
	user.Email = email
	return user
}

// RoleFactory provides methods to create test Role data
type RoleFactory struct{}

// NewRoleFactory creates a new RoleFactory
func NewRoleFactory() *RoleFactory {
	return &RoleFactory{}
}

// Create creates a test Role with default values
func (f *RoleFactory) Create(tenantID uuid.UUID) *models.Role {
	return &models.Role{
		TenantModel: models.TenantModel{ID: uuid.New(), TenantID: tenantID},
		Name:        "Cajero",
		Description: "Cashier",
		IsActive:    true,
	}
}

// WithName sets a custom name for the role
func (f *RoleFactory) WithName(tenantID uuid.UUID, name string) *models.Role {
	role := f.Create(tenantID)
	role.Name = name
	return role
}

// PermissionFactory provides methods to create test Permission data
type PermissionFactory struct{}

// NewPermissionFactory creates a new PermissionFactory
func NewPermissionFactory() *PermissionFactory {
	return &PermissionFactory{}
}

// Create creates a test Permission with default values
func (f *PermissionFactory) Create(tenantID uuid.UUID) *models.Permission {
	return &models.Permission{
		TenantModel: models.TenantModel{ID: uuid.New(), TenantID: tenantID},
		Code:        "POS.Sell",
		Category:    "POS",
		Description: "Sell at the point of sale",
		IsActive:    true,
	}
}

// WithCode sets a custom code for the permission
func (f *PermissionFactory) WithCode(tenantID uuid.UUID, code string) *models.Permission {
	permission := f.Create(tenantID)
	permission.Code = code
	return permission
}

// PositionFactory provides methods to create test Position data
type PositionFactory struct{}

// NewPositionFactory creates a new PositionFactory
func NewPositionFactory() *PositionFactory {
	return &PositionFactory{}
}

// Create creates a test Position with default values
func (f *PositionFactory) Create(tenantID uuid.UUID) *models.Position {
	return &models.Position{
		TenantModel: models.TenantModel{ID: uuid.New(), TenantID: tenantID},
		Name:        "Mesero",
		Description: "Waiter",
	}
}

// WithName sets a custom name for the position
func (f *PositionFactory) WithName(tenantID uuid.UUID, name string) *models.Position {
	position := f.Create(tenantID)
	position.Name = name
	return position
}

// EmployeeFactory provides methods to create test Employee data
type EmployeeFactory struct{}

// NewEmployeeFactory creates a new EmployeeFactory
func NewEmployeeFactory() *EmployeeFactory {
	return &EmployeeFactory{}
}

// Create creates a test Employee with default values
func (f *EmployeeFactory) Create(tenantID, positionID uuid.UUID) *models.Employee {
	id := uuid.New()
	return &models.Employee{
		TenantModel: models.TenantModel{ID: id, TenantID: tenantID},
		PositionID:  positionID,
		FirstName:   "Luis",
		LastName:    "Garcia",
		NationalID:  "NID-" + id.String()[:12],
		Email:       "luis@example.com",
		HireDate:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		HourlyRate:  decimal.RequireFromString("85.50"),
		IsActive:    true,
	}
}

// WithName sets custom names for the employee
func (f *EmployeeFactory) WithName(tenantID, positionID uuid.UUID, firstName, lastName string) *models.Employee {
	employee := f.Create(tenantID, positionID)
	employee.FirstName = firstName
	employee.LastName = lastName
	return employee
}

// FactorySet provides access to all factories
type FactorySet struct {
	Branch     *BranchFactory
	User       *UserFactory
	Role       *RoleFactory
	Permission *PermissionFactory
	Position   *PositionFactory
	Employee   *EmployeeFactory
}

// NewFactorySet creates a new FactorySet with all factories initialized
func NewFactorySet() *FactorySet {
	return &FactorySet{
		Branch:     NewBranchFactory(),
		User:       NewUserFactory(),
		Role:       NewRoleFactory(),
		Permission: NewPermissionFactory(),
		Position:   NewPositionFactory(),
		Employee:   NewEmployeeFactory(),
	}
}
