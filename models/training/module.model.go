package training

import "gorm.io/gorm"

// Module represents an ordered section within a training
type Module struct {
	gorm.Model
	TrainingID  uint   `json:"training_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"` // Module order in training
	IsDeleted   bool   `gorm:"default:false"`
}

// Video represents an ordered video within a module
type Video struct {
	gorm.Model
	ModuleID   uint   `json:"module_id" gorm:"index;not null"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	OrderIndex int    `json:"order_index" gorm:"default:0"` // Video order in module
	IsDeleted  bool   `gorm:"default:false"`
}

// Question is an optional assessment question attached to a video
type Question struct {
	gorm.Model
	VideoID       uint   `json:"video_id" gorm:"index;not null"`
	QuestionText  string `json:"question_text"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectAnswer string `json:"correct_answer"`
	IsDeleted     bool   `gorm:"default:false"`
}

// Complete reports whether the question payload has every required field.
// A module with any incomplete question gets its whole question set discarded.
func (q *Question) Complete() bool {
	return q.QuestionText != "" &&
		q.OptionA != "" && q.OptionB != "" && q.OptionC != "" && q.OptionD != "" &&
		q.CorrectAnswer != ""
}
