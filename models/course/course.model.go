package course

import "gorm.io/gorm"

// Course represents a learning course in the catalog
type Course struct {
	gorm.Model
	Title        string `json:"title"`
	Description  string `json:"description"`
	Instructor   string `json:"instructor"`
	Category     string `json:"category"`
	Level        string `json:"level" gorm:"default:'Beginner'"` // Beginner, Intermediate, Advanced
	Duration     int64  `json:"duration" gorm:"default:0"`       // duration in hours
	Rating       uint   `json:"rating" gorm:"default:0"`
	ThumbnailURL string `json:"thumbnail_url"`
	PreviewVideo string `json:"preview_video"`
	IsPublished  bool   `json:"is_published" gorm:"default:false"`
	IsDeleted    bool   `gorm:"default:false"`
}
