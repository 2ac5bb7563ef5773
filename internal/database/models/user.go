package models

import (
	"time"
)

// User is an account that can sign in to the back office
type User struct {
	TenantModel
	Email        string     `json:"email" gorm:"not null;size:255"`
	PasswordHash string     `json:"-" gorm:"not null;size:255"`
	FirstName    string     `json:"first_name" gorm:"not null;size:100"`
	LastName     string     `json:"last_name" gorm:"not null;size:100"`
	IsActive     bool       `json:"is_active" gorm:"not null;default:true"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`

	// Relationships
	UserRoles []UserRole `json:"user_roles,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}

// FullName joins first and last name
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
