package training

import (
	"time"

	"gorm.io/gorm"
)

// Assessment is a standalone test assignable to users outside any training
type Assessment struct {
	gorm.Model
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	DeadlineDays int        `json:"deadline_days" gorm:"default:0"`
	DeadlineDate *time.Time `json:"deadline_date"`
	IsDeleted    bool       `gorm:"default:false"`
}

// AssessmentQuestion belongs to a standalone assessment
type AssessmentQuestion struct {
	gorm.Model
	AssessmentID  uint   `json:"assessment_id" gorm:"index;not null"`
	QuestionText  string `json:"question_text"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectAnswer string `json:"correct_answer"`
	IsDeleted     bool   `gorm:"default:false"`
}
