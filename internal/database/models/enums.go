package models

// ShiftAssignmentStatus defines the lifecycle states of a shift assignment
type ShiftAssignmentStatus string

const (
	ShiftAssignmentPlanned   ShiftAssignmentStatus = "planned"
	ShiftAssignmentConfirmed ShiftAssignmentStatus = "confirmed"
	ShiftAssignmentCompleted ShiftAssignmentStatus = "completed"
	ShiftAssignmentCancelled ShiftAssignmentStatus = "cancelled"
)

// IsValid checks if the ShiftAssignmentStatus is valid
func (s ShiftAssignmentStatus) IsValid() bool {
	switch s {
	case ShiftAssignmentPlanned, ShiftAssignmentConfirmed, ShiftAssignmentCompleted, ShiftAssignmentCancelled:
		return true
	}
	return false
}

// Weekday bits used by ShiftTemplate.Weekdays; Sunday is bit 0 as in time.Weekday
const (
	WeekdaySunday = 1 << iota
	WeekdayMonday
	WeekdayTuesday
	WeekdayWednesday
	WeekdayThursday
	WeekdayFriday
	WeekdaySaturday
)
