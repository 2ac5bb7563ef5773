package models

import (
	"time"

	"github.com/google/uuid"
)

// ShiftTemplate describes a recurring shift. Schedule generation is not implemented;
// these tables are filled by an external scheduler.
type ShiftTemplate struct {
	TenantModel
	PositionID  *uuid.UUID `json:"position_id,omitempty" gorm:"type:uuid;index"`
	Name        string     `json:"name" gorm:"not null;size:100"`
	StartMinute int        `json:"start_minute" gorm:"not null"` // minutes after midnight
	EndMinute   int        `json:"end_minute" gorm:"not null"`
	Weekdays    int        `json:"weekdays" gorm:"not null;default:0"` // bitmask of Weekday* constants
}

// TableName returns the table name for ShiftTemplate
func (ShiftTemplate) TableName() string {
	return "shift_templates"
}

// CoversWeekday reports whether the template runs on d
func (s *ShiftTemplate) CoversWeekday(d time.Weekday) bool {
	return s.Weekdays&(1<<uint(d)) != 0
}

// EmployeeAvailability is a weekly window in which an employee can work
type EmployeeAvailability struct {
	TenantModel
	EmployeeID  uuid.UUID `json:"employee_id" gorm:"type:uuid;not null;index"`
	Weekday     int       `json:"weekday" gorm:"not null"`
	StartMinute int       `json:"start_minute" gorm:"not null"`
	EndMinute   int       `json:"end_minute" gorm:"not null"`
}

// TableName returns the table name for EmployeeAvailability
func (EmployeeAvailability) TableName() string {
	return "employee_availabilities"
}

// ShiftAssignment places an employee on a shift template for one date
type ShiftAssignment struct {
	TenantModel
	EmployeeID      uuid.UUID             `json:"employee_id" gorm:"type:uuid;not null;index"`
	ShiftTemplateID uuid.UUID             `json:"shift_template_id" gorm:"type:uuid;not null;index"`
	ShiftDate       time.Time             `json:"shift_date" gorm:"type:date;not null"`
	Status          ShiftAssignmentStatus `json:"status" gorm:"type:varchar(20);not null;default:'planned'"`
}

// TableName returns the table name for ShiftAssignment
func (ShiftAssignment) TableName() string {
	return "shift_assignments"
}
