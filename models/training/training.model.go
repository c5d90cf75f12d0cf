package training

import (
	"time"

	"gorm.io/gorm"
)

// Training types
const (
	TypeMandatory = "Mandatory"
	TypeAssigned  = "Assigned"
)

// Training represents an assignable training program
type Training struct {
	gorm.Model
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type" gorm:"default:'Assigned'"` // Mandatory, Assigned
	// Deadline is either a day count from assignment or an absolute date.
	DeadlineDays int        `json:"deadline_days" gorm:"default:0"`
	DeadlineDate *time.Time `json:"deadline_date"`
	// Comma-separated target designations/branches for mandatory auto-assignment.
	Designations string `json:"designations"`
	Branches     string `json:"branches"`
	IsDeleted    bool   `gorm:"default:false"`
}

// ResolveDeadline computes the deadline for an assignment made now
func (t *Training) ResolveDeadline(now time.Time) *time.Time {
	if t.DeadlineDate != nil {
		return t.DeadlineDate
	}
	if t.DeadlineDays > 0 {
		d := now.AddDate(0, 0, t.DeadlineDays)
		return &d
	}
	return nil
}
