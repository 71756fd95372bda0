package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/progress"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// validateGraphWith checks the course's prerequisite graph as it would look
// with the given module definition applied. Rejecting bad graphs here keeps
// runtime gating cycle-free.
func validateGraphWith(courseID uint, moduleKey string, prerequisites []string) error {
	def, err := loadCourseDef(database.Database.Db, courseID)
	if err != nil {
		return err
	}

	replaced := false
	for i := range def.Modules {
		if def.Modules[i].Key == moduleKey {
			def.Modules[i].Prerequisites = prerequisites
			replaced = true
			break
		}
	}
	if !replaced {
		def.Modules = append(def.Modules, progress.ModuleDef{
			Key:           moduleKey,
			Prerequisites: prerequisites,
		})
	}

	return progress.ValidateModuleGraph(def)
}

// AdminCreateModule creates a new module in a course
func AdminCreateModule(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedModule").(*struct {
		ModuleKey           string   `json:"module_key"`
		Title               string   `json:"title"`
		Description         string   `json:"description"`
		OrderIndex          int      `json:"order_index"`
		PrerequisiteModules []string `json:"prerequisite_modules"`
		PassingScore        *int     `json:"passing_score"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Module keys must stay unique within the course
	var existing courseModels.Module
	if err := database.Database.Db.Where("course_id = ? AND module_key = ? AND is_deleted = ?", courseID, reqData.ModuleKey, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Module key already exists in this course!", nil)
	}

	if err := validateGraphWith(uint(courseID), reqData.ModuleKey, reqData.PrerequisiteModules); err != nil {
		switch err {
		case progress.ErrUnknownPrerequisite:
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Prerequisite references an unknown module!", nil)
		case progress.ErrPrerequisiteCycle:
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Prerequisites would create a cycle!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to validate prerequisites!", nil)
		}
	}

	// Get the next order index if not provided
	orderIndex := reqData.OrderIndex
	if orderIndex == 0 {
		var maxOrder int
		database.Database.Db.Model(&courseModels.Module{}).Where("course_id = ? AND is_deleted = ?", courseID, false).Select("COALESCE(MAX(order_index), 0)").Scan(&maxOrder)
		orderIndex = maxOrder + 1
	}

	module := courseModels.Module{
		CourseID:            uint(courseID),
		ModuleKey:           reqData.ModuleKey,
		Title:               reqData.Title,
		Description:         reqData.Description,
		OrderIndex:          orderIndex,
		PrerequisiteModules: datatypes.NewJSONSlice(reqData.PrerequisiteModules),
	}
	if reqData.PassingScore != nil {
		module.PassingScore = *reqData.PassingScore
	}

	if err := database.Database.Db.Create(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

// AdminUpdateModule updates an existing module
func AdminUpdateModule(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	moduleKey := c.Locals("moduleKey").(string)

	var module courseModels.Module
	if err := database.Database.Db.Where("course_id = ? AND module_key = ? AND is_deleted = ?", courseID, moduleKey, false).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	reqData, ok := c.Locals("validatedModuleUpdate").(*struct {
		Title               string    `json:"title"`
		Description         string    `json:"description"`
		OrderIndex          int       `json:"order_index"`
		PrerequisiteModules *[]string `json:"prerequisite_modules"`
		PassingScore        *int      `json:"passing_score"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.PrerequisiteModules != nil {
		if err := validateGraphWith(uint(courseID), moduleKey, *reqData.PrerequisiteModules); err != nil {
			switch err {
			case progress.ErrUnknownPrerequisite:
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Prerequisite references an unknown module!", nil)
			case progress.ErrPrerequisiteCycle:
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Prerequisites would create a cycle!", nil)
			default:
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to validate prerequisites!", nil)
			}
		}
		module.PrerequisiteModules = datatypes.NewJSONSlice(*reqData.PrerequisiteModules)
	}

	if reqData.Title != "" {
		module.Title = reqData.Title
	}
	if reqData.Description != "" {
		module.Description = reqData.Description
	}
	if reqData.OrderIndex > 0 {
		module.OrderIndex = reqData.OrderIndex
	}
	if reqData.PassingScore != nil {
		module.PassingScore = *reqData.PassingScore
	}

	if err := database.Database.Db.Save(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", module)
}
