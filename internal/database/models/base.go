package models

import (
	"time"

	"staff-backoffice-backend/internal/identity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TenantModel provides the tenant, audit and soft-delete columns shared by every table.
// Rows with DeletedAt set are excluded by gorm's default query scope.
type TenantModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	TenantID  uuid.UUID      `json:"tenant_id" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time      `json:"created_at" gorm:"not null"`
	CreatedBy uuid.UUID      `json:"created_by" gorm:"type:uuid"`
	UpdatedAt *time.Time     `json:"updated_at,omitempty" gorm:"autoUpdateTime:false"`
	UpdatedBy *uuid.UUID     `json:"updated_by,omitempty" gorm:"type:uuid"`
	IsDeleted bool           `json:"is_deleted" gorm:"not null;default:false"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
	DeletedBy *uuid.UUID     `json:"deleted_by,omitempty" gorm:"type:uuid"`
}

// BeforeCreate assigns the ID and records the creator from the statement context
func (base *TenantModel) BeforeCreate(tx *gorm.DB) error {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	if base.CreatedBy == uuid.Nil {
		base.CreatedBy = identity.ActorID(tx.Statement.Context)
	}
	base.IsDeleted = false
	return nil
}

// BeforeUpdate stamps the update time and the updating user
func (base *TenantModel) BeforeUpdate(tx *gorm.DB) error {
	now := time.Now().UTC()
	tx.Statement.SetColumn("UpdatedAt", &now)
	if actor := identity.ActorID(tx.Statement.Context); actor != uuid.Nil {
		tx.Statement.SetColumn("UpdatedBy", &actor)
	}
	return nil
}
