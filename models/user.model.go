package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name        string `gorm:"default:''"`
	Email       string `gorm:"unique;not null"`
	EmpID       string `json:"emp_id" gorm:"column:emp_id;index"`
	Designation string `gorm:"default:''"`
	Branch      string `gorm:"default:''"` // branch/location code
	Mobile      string `gorm:"default:''"`
	Role        string `gorm:"default:'USER'"` // USER, ADMIN
	Password    string `gorm:"not null" json:"-"`
	LastLogin   time.Time
	IsDeleted   bool `gorm:"default:false"`
}

// UserTraining is the denormalized training summary on the user (one row per
// assigned training). Status and Pass mirror the TrainingProgress record and
// are overwritten after every progress update.
type UserTraining struct {
	gorm.Model
	UserID     uint       `json:"user_id" gorm:"index;not null"`
	TrainingID uint       `json:"training_id" gorm:"index;not null"`
	Deadline   *time.Time `json:"deadline"`
	Pass       bool       `json:"pass" gorm:"default:false"`
	Status     string     `json:"status" gorm:"default:'Pending'"` // Pending, In Progress, Completed
}

// UserAssessment tracks an assessment assigned to a user
type UserAssessment struct {
	gorm.Model
	UserID       uint       `json:"user_id" gorm:"index;not null"`
	AssessmentID uint       `json:"assessment_id" gorm:"index;not null"`
	Deadline     *time.Time `json:"deadline"`
	Pass         bool       `json:"pass" gorm:"default:false"`
	Status       string     `json:"status" gorm:"default:'Pending'"`
}
