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

// GetModuleAssessment returns a module's question set with the correct
// answers and explanations stripped.
func GetModuleAssessment(c *fiber.Ctx) error {
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

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	var module courseModels.Module
	if err := database.Database.Db.Where("course_id = ? AND module_key = ? AND is_deleted = ?", courseID, moduleKey, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	var questions []courseModels.AssessmentQuestion
	database.Database.Db.Where("module_id = ? AND is_deleted = ?", module.ID, false).Order("order_index asc").Find(&questions)

	if len(questions) == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module has no assessment!", nil)
	}

	// Don't leak answers to the client
	type QuestionView struct {
		QuestionKey string   `json:"question_key"`
		Question    string   `json:"question"`
		Options     []string `json:"options"`
	}

	view := make([]QuestionView, len(questions))
	for i, q := range questions {
		view[i] = QuestionView{
			QuestionKey: q.QuestionKey,
			Question:    q.Question,
			Options:     q.Options,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assessment fetched successfully!", fiber.Map{
		"module_key":    moduleKey,
		"passing_score": module.PassingScore,
		"questions":     view,
	})
}

// SubmitAssessment scores a submission against the module's question set,
// records the attempt, and on a pass marks the module's assessment complete.
// Failed attempts change nothing on the enrollment and can be retried.
func SubmitAssessment(c *fiber.Ctx) error {
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

	reqData, ok := c.Locals("validatedAssessment").(*struct {
		Answers   map[string]int `json:"answers" validate:"required,min=1"`
		TimeSpent int            `json:"time_spent" validate:"omitempty,gte=0"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	def, err := loadCourseDef(database.Database.Db, uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load course definition!", nil)
	}

	md := def.Module(moduleKey)
	if md == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}
	if md.Assessment == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module has no assessment!", nil)
	}

	result, err := progress.ScoreAssessment(*md.Assessment, reqData.Answers)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to score assessment!", nil)
	}

	// Record the attempt regardless of outcome
	answers := datatypes.JSONMap{}
	for k, v := range reqData.Answers {
		answers[k] = v
	}
	attempt := courseModels.AssessmentAttempt{
		UserID:      userID,
		CourseID:    uint(courseID),
		ModuleKey:   moduleKey,
		Answers:     answers,
		Score:       result.Score,
		Passed:      result.Passed,
		TimeSpent:   reqData.TimeSpent,
		SubmittedAt: time.Now(),
	}
	if err := database.Database.Db.Create(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record attempt!", nil)
	}

	justCompleted := false
	if result.Passed {
		mods := enrollment.ModuleProgress.Data()
		mp := progress.FindModule(mods, moduleKey)
		if mp == nil {
			mods = append(mods, progress.NewModuleProgress(moduleKey))
			mp = &mods[len(mods)-1]
		}
		mp.AssessmentCompleted = true

		enrollment.ModuleProgress = datatypes.NewJSONType(mods)
		justCompleted = refreshEnrollment(def, &enrollment)
		enrollment.LastAccessDate = time.Now()

		if err := saveEnrollmentProgress(database.Database.Db, &enrollment); err != nil {
			if err == errEnrollmentConflict {
				return middleware.JsonResponse(c, fiber.StatusConflict, false, "Progress was updated concurrently, please retry!", nil)
			}
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
		}
	}

	if justCompleted {
		issueCertificate(&enrollment, user)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assessment submitted!", fiber.Map{
		"score":       result.Score,
		"passed":      result.Passed,
		"correct":     result.Correct,
		"total":       result.Total,
		"isCompleted": enrollment.IsCompleted,
	})
}
