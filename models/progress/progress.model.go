package progress

import (
	"time"

	"gorm.io/gorm"
)

// Progress statuses
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// Sections mirror the training type the record was created under
const (
	SectionMandatory = "Mandatory"
	SectionAssigned  = "Assigned"
)

// TrainingProgress is the authoritative per-user-per-training completion
// record. The module/video rows snapshot the training's shape at assignment
// time; catalog edits after assignment do not alter an existing record.
type TrainingProgress struct {
	gorm.Model
	UserID       uint             `json:"user_id" gorm:"not null;uniqueIndex:idx_user_training"`
	TrainingID   uint             `json:"training_id" gorm:"not null;uniqueIndex:idx_user_training"`
	TrainingName string           `json:"training_name" gorm:"index"`
	Section      string           `json:"section" gorm:"default:'Assigned'"` // Mandatory, Assigned
	Deadline     *time.Time       `json:"deadline"`
	Pass         bool             `json:"pass" gorm:"default:false"`
	Status       string           `json:"status" gorm:"default:'Pending'"` // Pending, In Progress, Completed
	Score        int              `json:"score" gorm:"default:0"`
	Modules      []ModuleProgress `json:"modules" gorm:"foreignKey:ProgressID"`
}

// ModuleProgress holds the pass flag for one module within a progress record
type ModuleProgress struct {
	gorm.Model
	ProgressID uint            `json:"progress_id" gorm:"index;not null"`
	ModuleID   uint            `json:"module_id" gorm:"index;not null"`
	OrderIndex int             `json:"order_index" gorm:"default:0"`
	Pass       bool            `json:"pass" gorm:"default:false"`
	Videos     []VideoProgress `json:"videos" gorm:"foreignKey:ModuleProgressID"`
}

// VideoProgress holds the pass flag for one video. Pass is monotonic: once
// true it is only ever reset by reassignment, never by the update engine.
type VideoProgress struct {
	gorm.Model
	ModuleProgressID uint `json:"module_progress_id" gorm:"index;not null"`
	VideoID          uint `json:"video_id" gorm:"index;not null"`
	OrderIndex       int  `json:"order_index" gorm:"default:0"`
	Pass             bool `json:"pass" gorm:"default:false"`
}
