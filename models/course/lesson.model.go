package course

import "gorm.io/gorm"

// Lesson represents a trackable content unit inside a module
type Lesson struct {
	gorm.Model
	CourseID         uint   `json:"course_id" gorm:"index;not null"`
	ModuleID         uint   `json:"module_id" gorm:"index;not null"`
	LessonKey        string `json:"lesson_key" gorm:"index;not null"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	ContentType      string `json:"content_type" gorm:"default:'VIDEO'"` // VIDEO, TEXT
	VideoURL         string `json:"video_url"`                           // For VIDEO type
	TextContent      string `json:"text_content" gorm:"type:text"`       // For TEXT type
	EstimatedMinutes int    `json:"estimated_minutes" gorm:"default:0"`
	OrderIndex       int    `json:"order_index" gorm:"default:0"` // Order within module
	IsDeleted        bool   `gorm:"default:false"`
}
