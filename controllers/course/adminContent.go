package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// AdminCreateLesson adds a lesson to a module
func AdminCreateLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	moduleKey := c.Locals("moduleKey").(string)

	var module courseModels.Module
	if err := database.Database.Db.Where("course_id = ? AND module_key = ? AND is_deleted = ?", courseID, moduleKey, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	reqData, ok := c.Locals("validatedLesson").(*struct {
		LessonKey        string `json:"lesson_key"`
		Title            string `json:"title"`
		Description      string `json:"description"`
		ContentType      string `json:"content_type"`
		VideoURL         string `json:"video_url"`
		TextContent      string `json:"text_content"`
		EstimatedMinutes int    `json:"estimated_minutes"`
		OrderIndex       int    `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var existing courseModels.Lesson
	if err := database.Database.Db.Where("module_id = ? AND lesson_key = ? AND is_deleted = ?", module.ID, reqData.LessonKey, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Lesson key already exists in this module!", nil)
	}

	orderIndex := reqData.OrderIndex
	if orderIndex == 0 {
		var maxOrder int
		database.Database.Db.Model(&courseModels.Lesson{}).Where("module_id = ? AND is_deleted = ?", module.ID, false).Select("COALESCE(MAX(order_index), 0)").Scan(&maxOrder)
		orderIndex = maxOrder + 1
	}

	lesson := courseModels.Lesson{
		CourseID:         uint(courseID),
		ModuleID:         module.ID,
		LessonKey:        reqData.LessonKey,
		Title:            reqData.Title,
		Description:      reqData.Description,
		ContentType:      reqData.ContentType,
		VideoURL:         reqData.VideoURL,
		TextContent:      reqData.TextContent,
		EstimatedMinutes: reqData.EstimatedMinutes,
		OrderIndex:       orderIndex,
	}

	if err := database.Database.Db.Create(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	if lesson.ContentType == "VIDEO" {
		go utils.ProbeVideoURL(lesson.LessonKey, lesson.VideoURL)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// AdminUpdateLesson updates lesson fields; blank fields stay untouched
func AdminUpdateLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	moduleKey := c.Locals("moduleKey").(string)
	lessonKey := c.Locals("lessonKey").(string)

	var module courseModels.Module
	if err := database.Database.Db.Where("course_id = ? AND module_key = ? AND is_deleted = ?", courseID, moduleKey, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("module_id = ? AND lesson_key = ? AND is_deleted = ?", module.ID, lessonKey, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	reqData, ok := c.Locals("validatedLessonUpdate").(*struct {
		Title            string `json:"title"`
		Description      string `json:"description"`
		VideoURL         string `json:"video_url"`
		TextContent      string `json:"text_content"`
		EstimatedMinutes *int   `json:"estimated_minutes"`
		OrderIndex       *int   `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		lesson.Title = reqData.Title
	}
	if reqData.Description != "" {
		lesson.Description = reqData.Description
	}
	if reqData.VideoURL != "" {
		lesson.VideoURL = reqData.VideoURL
	}
	if reqData.TextContent != "" {
		lesson.TextContent = reqData.TextContent
	}
	if reqData.EstimatedMinutes != nil {
		lesson.EstimatedMinutes = *reqData.EstimatedMinutes
	}
	if reqData.OrderIndex != nil {
		lesson.OrderIndex = *reqData.OrderIndex
	}

	if err := database.Database.Db.Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	if lesson.ContentType == "VIDEO" && reqData.VideoURL != "" {
		go utils.ProbeVideoURL(lesson.LessonKey, lesson.VideoURL)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

// AdminDeleteLesson soft-deletes a lesson
func AdminDeleteLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	moduleKey := c.Locals("moduleKey").(string)
	lessonKey := c.Locals("lessonKey").(string)

	var module courseModels.Module
	if err := database.Database.Db.Where("course_id = ? AND module_key = ? AND is_deleted = ?", courseID, moduleKey, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("module_id = ? AND lesson_key = ? AND is_deleted = ?", module.ID, lessonKey, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	lesson.IsDeleted = true
	if err := database.Database.Db.Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}

// AdminCreateQuestion adds an assessment question to a module
func AdminCreateQuestion(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	moduleKey := c.Locals("moduleKey").(string)

	var module courseModels.Module
	if err := database.Database.Db.Where("course_id = ? AND module_key = ? AND is_deleted = ?", courseID, moduleKey, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	reqData, ok := c.Locals("validatedQuestion").(*struct {
		QuestionKey   string   `json:"question_key"`
		Question      string   `json:"question"`
		Options       []string `json:"options"`
		CorrectAnswer int      `json:"correct_answer"`
		Explanation   string   `json:"explanation"`
		OrderIndex    int      `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var existing courseModels.AssessmentQuestion
	if err := database.Database.Db.Where("module_id = ? AND question_key = ? AND is_deleted = ?", module.ID, reqData.QuestionKey, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Question key already exists in this module!", nil)
	}

	orderIndex := reqData.OrderIndex
	if orderIndex == 0 {
		var maxOrder int
		database.Database.Db.Model(&courseModels.AssessmentQuestion{}).Where("module_id = ? AND is_deleted = ?", module.ID, false).Select("COALESCE(MAX(order_index), 0)").Scan(&maxOrder)
		orderIndex = maxOrder + 1
	}

	question := courseModels.AssessmentQuestion{
		CourseID:      uint(courseID),
		ModuleID:      module.ID,
		QuestionKey:   reqData.QuestionKey,
		Question:      reqData.Question,
		Options:       datatypes.NewJSONSlice(reqData.Options),
		CorrectAnswer: reqData.CorrectAnswer,
		Explanation:   reqData.Explanation,
		OrderIndex:    orderIndex,
	}

	if err := database.Database.Db.Create(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question created successfully!", question)
}

// AdminUpdateQuestion updates an assessment question
func AdminUpdateQuestion(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	moduleKey := c.Locals("moduleKey").(string)
	questionKey := c.Locals("questionKey").(string)

	var module courseModels.Module
	if err := database.Database.Db.Where("course_id = ? AND module_key = ? AND is_deleted = ?", courseID, moduleKey, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	var question courseModels.AssessmentQuestion
	if err := database.Database.Db.Where("module_id = ? AND question_key = ? AND is_deleted = ?", module.ID, questionKey, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	reqData, ok := c.Locals("validatedQuestionUpdate").(*struct {
		Question      string    `json:"question"`
		Options       *[]string `json:"options"`
		CorrectAnswer *int      `json:"correct_answer"`
		Explanation   string    `json:"explanation"`
		OrderIndex    *int      `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Question != "" {
		question.Question = reqData.Question
	}
	if reqData.Options != nil {
		question.Options = datatypes.NewJSONSlice(*reqData.Options)
	}
	if reqData.CorrectAnswer != nil {
		question.CorrectAnswer = *reqData.CorrectAnswer
	}
	if reqData.Explanation != "" {
		question.Explanation = reqData.Explanation
	}
	if reqData.OrderIndex != nil {
		question.OrderIndex = *reqData.OrderIndex
	}

	// The stored answer index must still land inside the option list
	if question.CorrectAnswer < 0 || question.CorrectAnswer >= len(question.Options) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Correct answer must be a valid option index!", nil)
	}

	if err := database.Database.Db.Save(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question updated successfully!", question)
}

// AdminDeleteQuestion soft-deletes an assessment question
func AdminDeleteQuestion(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	moduleKey := c.Locals("moduleKey").(string)
	questionKey := c.Locals("questionKey").(string)

	var module courseModels.Module
	if err := database.Database.Db.Where("course_id = ? AND module_key = ? AND is_deleted = ?", courseID, moduleKey, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	var question courseModels.AssessmentQuestion
	if err := database.Database.Db.Where("module_id = ? AND question_key = ? AND is_deleted = ?", module.ID, questionKey, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	question.IsDeleted = true
	if err := database.Database.Db.Save(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted successfully!", nil)
}
