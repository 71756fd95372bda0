package controllers

import (
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/progress"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// moduleSummary is the module slice of a progress response
type moduleSummary struct {
	Completed           bool `json:"completed"`
	VideoProgress       int  `json:"videoProgress"`
	AssessmentCompleted bool `json:"assessmentCompleted"`
}

// UpdateLessonProgress folds one lesson watch/read signal into the
// enrollment's progress document and persists the result as a single
// compare-and-swap write.
func UpdateLessonProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	moduleKey := c.Locals("moduleKey").(string)
	lessonKey := c.Locals("lessonKey").(string)

	reqData, ok := c.Locals("validatedLessonProgress").(*struct {
		Progress *int `json:"progress" validate:"required,gte=0,lte=100"`
		Position *int `json:"position" validate:"omitempty,gte=0"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	def, err := loadCourseDef(database.Database.Db, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load course definition!", nil)
	}

	md := def.Module(moduleKey)
	if md == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	lessonDefined := false
	for _, l := range md.Lessons {
		if l.Key == lessonKey {
			lessonDefined = true
			break
		}
	}
	if !lessonDefined {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	mods := enrollment.ModuleProgress.Data()
	mods, mp, lp, err := progress.RecordLessonProgress(mods, moduleKey, lessonKey, *reqData.Progress, reqData.Position)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Progress must be between 0 and 100!", nil)
	}

	// Snapshot the touched entries before the slice is re-marshalled
	lessonState := *lp
	moduleState := moduleSummary{
		Completed:           mp.Completed,
		VideoProgress:       mp.VideoProgress,
		AssessmentCompleted: mp.AssessmentCompleted,
	}

	enrollment.ModuleProgress = datatypes.NewJSONType(mods)
	justCompleted := refreshEnrollment(def, &enrollment)
	enrollment.LastAccessDate = time.Now()

	if err := saveEnrollmentProgress(database.Database.Db, &enrollment); err != nil {
		if err == errEnrollmentConflict {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Progress was updated concurrently, please retry!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson progress!", nil)
	}

	if justCompleted {
		issueCertificate(&enrollment, user)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson progress updated!", fiber.Map{
		"progress":        lessonState.Progress,
		"completed":       lessonState.Completed,
		"moduleProgress":  moduleState,
		"overallProgress": enrollment.OverallProgress,
		"currentModule":   enrollment.CurrentModule,
		"isCompleted":     enrollment.IsCompleted,
	})
}

// GetLessonProgress returns the stored progress for one lesson plus its
// module summary. Lessons never touched report zeros.
func GetLessonProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	moduleKey := c.Locals("moduleKey").(string)
	lessonKey := c.Locals("lessonKey").(string)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	mods := enrollment.ModuleProgress.Data()
	mp := progress.FindModule(mods, moduleKey)
	if mp == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson progress fetched!", fiber.Map{
			"progress":     0,
			"completed":    false,
			"lastPosition": 0,
		})
	}

	lastPosition := 0
	lessonProgress := 0
	lessonCompleted := false
	if lp := mp.FindLesson(lessonKey); lp != nil {
		lessonProgress = lp.Progress
		lessonCompleted = lp.Completed
		if lp.LastPosition != nil {
			lastPosition = *lp.LastPosition
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson progress fetched!", fiber.Map{
		"progress":     lessonProgress,
		"completed":    lessonCompleted,
		"lastPosition": lastPosition,
		"moduleProgress": moduleSummary{
			Completed:           mp.Completed,
			VideoProgress:       mp.VideoProgress,
			AssessmentCompleted: mp.AssessmentCompleted,
		},
	})
}

// GetCourseProgress returns the enrollment with per-module accessibility
func GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	def, err := loadCourseDef(database.Database.Db, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load course definition!", nil)
	}

	mods := enrollment.ModuleProgress.Data()

	type ModuleState struct {
		ModuleKey            string   `json:"module_key"`
		Title                string   `json:"title"`
		Completed            bool     `json:"completed"`
		AssessmentCompleted  bool     `json:"assessment_completed"`
		HasAssessment        bool     `json:"has_assessment"`
		VideoProgress        int      `json:"video_progress"`
		IsAccessible         bool     `json:"is_accessible"`
		MissingPrerequisites []string `json:"missing_prerequisites,omitempty"`
	}

	states := make([]ModuleState, len(def.Modules))
	for i, m := range def.Modules {
		state := ModuleState{
			ModuleKey:            m.Key,
			Title:                m.Title,
			HasAssessment:        m.Assessment != nil,
			IsAccessible:         progress.IsModuleAccessible(def, m.Key, mods),
			MissingPrerequisites: progress.MissingPrerequisites(def, m.Key, mods),
		}
		if mp := progress.FindModule(mods, m.Key); mp != nil {
			state.Completed = mp.Completed
			state.AssessmentCompleted = mp.AssessmentCompleted
			state.VideoProgress = mp.VideoProgress
		}
		states[i] = state
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"enrollment": enrollment,
		"modules":    states,
	})
}
