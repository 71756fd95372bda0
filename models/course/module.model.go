package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Module represents a section/module within a course. ModuleKey is the
// stable string id used in progress records and prerequisite lists.
type Module struct {
	gorm.Model
	CourseID            uint                       `json:"course_id" gorm:"index;not null"`
	ModuleKey           string                     `json:"module_key" gorm:"index;not null"`
	Title               string                     `json:"title"`
	Description         string                     `json:"description"`
	OrderIndex          int                        `json:"order_index" gorm:"default:0"` // Module order in course
	PrerequisiteModules datatypes.JSONSlice[string] `json:"prerequisite_modules"`
	PassingScore        int                        `json:"passing_score" gorm:"default:70"` // Assessment pass threshold (0-100)
	IsDeleted           bool                       `gorm:"default:false"`
}
