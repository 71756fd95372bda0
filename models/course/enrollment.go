package course

import (
	"time"

	"lms/progress"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Enrollment tracks a user's enrollment in a course with per-module progress.
// ModuleProgress is stored as a single JSON document and always written as a
// whole; Version backs the compare-and-swap on every progress write so
// concurrent updates to the same record surface as conflicts instead of
// silently losing lessons.
type Enrollment struct {
	gorm.Model
	UserID          uint                                           `json:"user_id" gorm:"index;not null"`
	CourseID        uint                                           `json:"course_id" gorm:"index;not null"`
	Status          string                                         `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, IN_PROGRESS, COMPLETED
	CurrentModule   string                                         `json:"current_module"`
	OverallProgress int                                            `json:"overall_progress" gorm:"default:0"` // Completed-module percentage (0-100)
	IsCompleted     bool                                           `json:"is_completed" gorm:"default:false"`
	ModuleProgress  datatypes.JSONType[[]progress.ModuleProgress]  `json:"module_progress"`
	Version         int                                            `json:"-" gorm:"default:1"`
	EnrollmentDate  time.Time                                      `json:"enrollment_date"`
	LastAccessDate  time.Time                                      `json:"last_access_date"`
	CompletedAt     *time.Time                                     `json:"completed_at"`

	CertificateIssued bool   `json:"certificate_issued" gorm:"default:false"`
	CertificateNumber string `json:"certificate_number"`

	IsDeleted bool `gorm:"default:false"`
}
