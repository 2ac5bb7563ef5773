package service

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// BranchServiceInterface defines the interface for branch service
type BranchServiceInterface interface {
	CreateBranch(ctx context.Context, req *CreateBranchRequest) (*BranchResponse, error)
	GetBranchByID(ctx context.Context, id uuid.UUID) (*BranchResponse, error)
	ListBranches(ctx context.Context, page PageRequest) (*PagedResponse[BranchResponse], error)
	UpdateBranch(ctx context.Context, id uuid.UUID, req *UpdateBranchRequest) (*BranchResponse, error)
	DeleteBranch(ctx context.Context, id uuid.UUID) error
}

// UserServiceInterface defines the interface for user service
type UserServiceInterface interface {
	CreateUser(ctx context.Context, req *CreateUserRequest) (*UserResponse, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*UserResponse, error)
	ListUsers(ctx context.Context, page PageRequest) (*PagedResponse[UserResponse], error)
	UpdateUser(ctx context.Context, id uuid.UUID, req *UpdateUserRequest) (*UserResponse, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	AssignRoles(ctx context.Context, id uuid.UUID, req *AssignRolesRequest) (*UserResponse, error)
	ChangePassword(ctx context.Context, id uuid.UUID, req *ChangePasswordRequest) error
}

// RoleServiceInterface defines the interface for role service
type RoleServiceInterface interface {
	CreateRole(ctx context.Context, req *CreateRoleRequest) (*RoleResponse, error)
	GetRoleByID(ctx context.Context, id uuid.UUID) (*RoleResponse, error)
	ListRoles(ctx context.Context, page PageRequest) (*PagedResponse[RoleResponse], error)
	UpdateRole(ctx context.Context, id uuid.UUID, req *UpdateRoleRequest) (*RoleResponse, error)
	DeleteRole(ctx context.Context, id uuid.UUID) error
	SetPermissions(ctx context.Context, id uuid.UUID, req *SetPermissionsRequest) (*RoleResponse, error)
}

// PermissionServiceInterface defines the interface for permission service
type PermissionServiceInterface interface {
	CreatePermission(ctx context.Context, req *CreatePermissionRequest) (*PermissionResponse, error)
	GetPermissionByID(ctx context.Context, id uuid.UUID) (*PermissionResponse, error)
	ListPermissions(ctx context.Context, category string, page PageRequest) (*PagedResponse[PermissionResponse], error)
	UpdatePermission(ctx context.Context, id uuid.UUID, req *UpdatePermissionRequest) (*PermissionResponse, error)
	DeletePermission(ctx context.Context, id uuid.UUID) error
}

// PositionServiceInterface defines the interface for position service
type PositionServiceInterface interface {
	CreatePosition(ctx context.Context, req *CreatePositionRequest) (*PositionResponse, error)
	GetPositionByID(ctx context.Context, id uuid.UUID) (*PositionResponse, error)
	ListPositions(ctx context.Context, page PageRequest) (*PagedResponse[PositionResponse], error)
	UpdatePosition(ctx context.Context, id uuid.UUID, req *UpdatePositionRequest) (*PositionResponse, error)
	DeletePosition(ctx context.Context, id uuid.UUID) error
}

// EmployeeServiceInterface defines the interface for employee service
type EmployeeServiceInterface interface {
	CreateEmployee(ctx context.Context, req *CreateEmployeeRequest) (*EmployeeResponse, error)
	GetEmployeeByID(ctx context.Context, id uuid.UUID) (*EmployeeResponse, error)
	ListEmployees(ctx context.Context, filter EmployeeListFilter, page PageRequest) (*PagedResponse[EmployeeResponse], error)
	UpdateEmployee(ctx context.Context, id uuid.UUID, req *UpdateEmployeeRequest) (*EmployeeResponse, error)
	DeleteEmployee(ctx context.Context, id uuid.UUID) error
	TerminateEmployee(ctx context.Context, id uuid.UUID, req *TerminateEmployeeRequest) (*EmployeeResponse, error)
}

// Ensure services implement their interfaces
var (
	_ BranchServiceInterface     = (*BranchService)(nil)
	_ UserServiceInterface       = (*UserService)(nil)
	_ RoleServiceInterface       = (*RoleService)(nil)
	_ PermissionServiceInterface = (*PermissionService)(nil)
	_ PositionServiceInterface   = (*PositionService)(nil)
	_ EmployeeServiceInterface   = (*EmployeeService)(nil)
)
