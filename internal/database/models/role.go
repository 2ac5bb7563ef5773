package models

import (
	"github.com/google/uuid"
)

// Role is a named set of permissions within a branch
type Role struct {
	TenantModel
	Name        string `json:"name" gorm:"not null;size:100"`
	Description string `json:"description" gorm:"size:255"`
	IsActive    bool   `json:"is_active" gorm:"not null;default:true"`

	// Relationships
	RolePermissions []RolePermission `json:"role_permissions,omitempty" gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"`
	UserRoles       []UserRole       `json:"user_roles,omitempty" gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Role
func (Role) TableName() string {
	return "roles"
}

// Permission is a stable permission code such as "POS.Sell"
type Permission struct {
	TenantModel
	Code        string `json:"code" gorm:"not null;size:100"`
	Category    string `json:"category" gorm:"not null;size:100"`
	Description string `json:"description" gorm:"size:255"`
	IsActive    bool   `json:"is_active" gorm:"not null;default:true"`
}

// TableName returns the table name for Permission
func (Permission) TableName() string {
	return "permissions"
}

// RolePermission grants a permission to a role
type RolePermission struct {
	TenantModel
	RoleID       uuid.UUID `json:"role_id" gorm:"type:uuid;not null;index"`
	PermissionID uuid.UUID `json:"permission_id" gorm:"type:uuid;not null;index"`

	Permission *Permission `json:"permission,omitempty" gorm:"foreignKey:PermissionID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for RolePermission
func (RolePermission) TableName() string {
	return "role_permissions"
}

// UserRole assigns a role to a user inside one branch
type UserRole struct {
	TenantModel
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	RoleID uuid.UUID `json:"role_id" gorm:"type:uuid;not null;index"`

	Role *Role `json:"role,omitempty" gorm:"foreignKey:RoleID"`
}

// TableName returns the table name for UserRole
func (UserRole) TableName() string {
	return "user_roles"
}
