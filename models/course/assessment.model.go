package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AssessmentQuestion represents one question of a module's gating assessment.
// A module carries an assessment iff it has at least one question.
type AssessmentQuestion struct {
	gorm.Model
	CourseID      uint                       `json:"course_id" gorm:"index;not null"`
	ModuleID      uint                       `json:"module_id" gorm:"index;not null"`
	QuestionKey   string                     `json:"question_key" gorm:"index;not null"`
	Question      string                     `json:"question" gorm:"type:text"`
	Options       datatypes.JSONSlice[string] `json:"options"`
	CorrectAnswer int                        `json:"correct_answer"` // Index into Options
	Explanation   string                     `json:"explanation" gorm:"type:text"`
	OrderIndex    int                        `json:"order_index" gorm:"default:0"`
	IsDeleted     bool                       `gorm:"default:false"`
}

// AssessmentAttempt records a learner's submission against a module assessment
type AssessmentAttempt struct {
	gorm.Model
	UserID      uint                    `json:"user_id" gorm:"index;not null"`
	CourseID    uint                    `json:"course_id" gorm:"index;not null"`
	ModuleKey   string                  `json:"module_key" gorm:"index;not null"`
	Answers     datatypes.JSONMap       `json:"answers"` // question key -> selected option index
	Score       float64                 `json:"score"`
	Passed      bool                    `json:"passed" gorm:"default:false"`
	TimeSpent   int                     `json:"time_spent" gorm:"default:0"` // seconds
	SubmittedAt time.Time               `json:"submitted_at"`
	IsDeleted   bool                    `gorm:"default:false"`
}
