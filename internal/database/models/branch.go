package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Branch is the tenant: every other record belongs to exactly one branch
type Branch struct {
	TenantModel
	Name      string   `json:"name" gorm:"not null;size:100"`
	Code      string   `json:"code" gorm:"not null;size:20"`
	Address   string   `json:"address" gorm:"size:255"`
	Phone     string   `json:"phone" gorm:"size:30"`
	Email     string   `json:"email" gorm:"size:255"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	IsActive  bool     `json:"is_active" gorm:"not null;default:true"`

	// Relationships
	Positions []Position `json:"positions,omitempty" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
	Employees []Employee `json:"employees,omitempty" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Branch
func (Branch) TableName() string {
	return "branches"
}

// BeforeCreate makes a branch its own tenant
func (b *Branch) BeforeCreate(tx *gorm.DB) error {
	if err := b.TenantModel.BeforeCreate(tx); err != nil {
		return err
	}
	if b.TenantID == uuid.Nil {
		b.TenantID = b.ID
	}
	return nil
}
