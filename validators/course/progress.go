package courseValidator

import (
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CourseProgressParams validates the :course_id route param
func CourseProgressParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("course_id"))
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// CourseModuleParams validates :course_id and :module_id route params
func CourseModuleParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("course_id"))
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		moduleKey := strings.TrimSpace(c.Params("module_id"))
		if moduleKey == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Module ID is required!", nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("moduleKey", moduleKey)
		return c.Next()
	}
}

// LessonParams validates :course_id, :module_id and :lesson_id route params
func LessonParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("course_id"))
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		moduleKey := strings.TrimSpace(c.Params("module_id"))
		lessonKey := strings.TrimSpace(c.Params("lesson_id"))
		if moduleKey == "" || lessonKey == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Module ID and Lesson ID are required!", nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("moduleKey", moduleKey)
		c.Locals("lessonKey", lessonKey)
		return c.Next()
	}
}

// UpdateLessonProgress validates the lesson progress payload.
// Progress is a required percentage; position is an optional playback offset.
func UpdateLessonProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Progress *int `json:"progress" validate:"required,gte=0,lte=100"`
			Position *int `json:"position" validate:"omitempty,gte=0"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "Progress":
					errors["progress"] = "Progress must be between 0 and 100!"
				case "Position":
					errors["position"] = "Position must be 0 or greater!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLessonProgress", reqData)
		return c.Next()
	}
}

// SubmitAssessment validates the assessment submission payload
func SubmitAssessment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Answers   map[string]int `json:"answers" validate:"required,min=1"`
			TimeSpent int            `json:"time_spent" validate:"omitempty,gte=0"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				switch fieldErr.Field() {
				case "Answers":
					errors["answers"] = "At least one answer is required!"
				case "TimeSpent":
					errors["time_spent"] = "Time spent must be 0 or greater!"
				}
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAssessment", reqData)
		return c.Next()
	}
}
