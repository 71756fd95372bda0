package controllers

import (
	"errors"
	"time"

	courseModels "lms/models/course"
	"lms/progress"

	"gorm.io/gorm"
)

// errEnrollmentConflict signals a lost compare-and-swap on the enrollment row
var errEnrollmentConflict = errors.New("enrollment was modified concurrently")

// loadCourseDef assembles the in-memory course definition the progress
// engine works on: ordered modules with their lessons, prerequisites and
// question sets. The catalog rows are authoritative on every call; nothing
// is cached between requests.
func loadCourseDef(db *gorm.DB, courseID uint) (progress.CourseDef, error) {
	def := progress.CourseDef{CourseID: courseID}

	var modules []courseModels.Module
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&modules).Error; err != nil {
		return def, err
	}

	var lessons []courseModels.Lesson
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&lessons).Error; err != nil {
		return def, err
	}

	var questions []courseModels.AssessmentQuestion
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&questions).Error; err != nil {
		return def, err
	}

	lessonsByModule := make(map[uint][]progress.LessonDef)
	for _, l := range lessons {
		lessonsByModule[l.ModuleID] = append(lessonsByModule[l.ModuleID], progress.LessonDef{
			Key:         l.LessonKey,
			Title:       l.Title,
			ContentType: l.ContentType,
		})
	}

	questionsByModule := make(map[uint][]progress.QuestionDef)
	for _, q := range questions {
		questionsByModule[q.ModuleID] = append(questionsByModule[q.ModuleID], progress.QuestionDef{
			Key:           q.QuestionKey,
			CorrectAnswer: q.CorrectAnswer,
		})
	}

	for _, m := range modules {
		md := progress.ModuleDef{
			Key:           m.ModuleKey,
			Title:         m.Title,
			Lessons:       lessonsByModule[m.ID],
			Prerequisites: m.PrerequisiteModules,
		}
		if qs := questionsByModule[m.ID]; len(qs) > 0 {
			md.Assessment = &progress.AssessmentDef{
				Questions:    qs,
				PassingScore: m.PassingScore,
			}
		}
		def.Modules = append(def.Modules, md)
	}

	return def, nil
}

// saveEnrollmentProgress persists the enrollment as one atomic unit. The
// WHERE clause on version makes the write a compare-and-swap: a concurrent
// writer that got there first leaves RowsAffected at zero and the caller
// reports a conflict instead of overwriting the other update. lastAccessDate
// rides in the same statement, so a failed write advances nothing.
func saveEnrollmentProgress(db *gorm.DB, e *courseModels.Enrollment) error {
	res := db.Model(&courseModels.Enrollment{}).
		Where("id = ? AND version = ?", e.ID, e.Version).
		Updates(map[string]interface{}{
			"status":             e.Status,
			"current_module":     e.CurrentModule,
			"overall_progress":   e.OverallProgress,
			"is_completed":       e.IsCompleted,
			"module_progress":    e.ModuleProgress,
			"last_access_date":   e.LastAccessDate,
			"completed_at":       e.CompletedAt,
			"certificate_issued": e.CertificateIssued,
			"certificate_number": e.CertificateNumber,
			"version":            e.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errEnrollmentConflict
	}

	e.Version++
	return nil
}

// refreshEnrollment recomputes the derived enrollment fields after an engine
// step: overall percentage, current-module advance, completion flag and
// status. Returns true when the enrollment just transitioned to completed so
// the caller can trigger the certificate path.
func refreshEnrollment(def progress.CourseDef, e *courseModels.Enrollment) bool {
	mods := e.ModuleProgress.Data()

	e.OverallProgress = progress.OverallProgress(def, mods)
	if next := progress.NextAccessibleModule(def, e.CurrentModule, mods); next != "" {
		e.CurrentModule = next
	}

	wasCompleted := e.IsCompleted
	e.IsCompleted = progress.IsCourseCompleted(def, mods)

	if e.IsCompleted {
		e.Status = "COMPLETED"
	} else if e.OverallProgress > 0 {
		e.Status = "IN_PROGRESS"
	}

	if e.IsCompleted && !wasCompleted {
		now := time.Now()
		e.CompletedAt = &now
		return true
	}
	return false
}
