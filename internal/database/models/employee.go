package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Position is a job title within a branch
type Position struct {
	TenantModel
	Name        string `json:"name" gorm:"not null;size:100"`
	Description string `json:"description" gorm:"size:255"`
}

// TableName returns the table name for Position
func (Position) TableName() string {
	return "positions"
}

// Employee is a staff member of a branch holding one position
type Employee struct {
	TenantModel
	PositionID      uuid.UUID       `json:"position_id" gorm:"type:uuid;not null;index"`
	FirstName       string          `json:"first_name" gorm:"not null;size:100"`
	LastName        string          `json:"last_name" gorm:"not null;size:100"`
	NationalID      string          `json:"national_id" gorm:"not null;size:30"`
	Email           string          `json:"email" gorm:"size:255"`
	Phone           string          `json:"phone" gorm:"size:30"`
	Address         string          `json:"address" gorm:"size:255"`
	BirthDate       *time.Time      `json:"birth_date,omitempty" gorm:"type:date"`
	HireDate        time.Time       `json:"hire_date" gorm:"type:date;not null"`
	TerminationDate *time.Time      `json:"termination_date,omitempty" gorm:"type:date"`
	HourlyRate      decimal.Decimal `json:"hourly_rate" gorm:"type:numeric(12,2);not null;default:0"`
	IsActive        bool            `json:"is_active" gorm:"not null;default:true"`

	// Relationships
	Position *Position `json:"position,omitempty" gorm:"foreignKey:PositionID"`
}

// TableName returns the table name for Employee
func (Employee) TableName() string {
	return "employees"
}
