package courseValidator

import (
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// QuestionParams validates :question_id on top of the course/module params
func QuestionParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		questionKey := strings.TrimSpace(c.Params("question_id"))
		if questionKey == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Question ID is required!", nil)
		}

		c.Locals("questionKey", questionKey)
		return c.Next()
	}
}

func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			LessonKey        string `json:"lesson_key"`
			Title            string `json:"title"`
			Description      string `json:"description"`
			ContentType      string `json:"content_type"`
			VideoURL         string `json:"video_url"`
			TextContent      string `json:"text_content"`
			EstimatedMinutes int    `json:"estimated_minutes"`
			OrderIndex       int    `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.LessonKey) == "" {
			errors["lesson_key"] = "Lesson key is required!"
		}

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}

		switch reqData.ContentType {
		case "VIDEO":
			if strings.TrimSpace(reqData.VideoURL) == "" {
				errors["video_url"] = "Video URL is required for VIDEO lessons!"
			}
		case "TEXT":
			if strings.TrimSpace(reqData.TextContent) == "" {
				errors["text_content"] = "Text content is required for TEXT lessons!"
			}
		default:
			errors["content_type"] = "Content type must be VIDEO or TEXT!"
		}

		if reqData.EstimatedMinutes < 0 {
			errors["estimated_minutes"] = "Estimated minutes must be 0 or greater!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title            string `json:"title"`
			Description      string `json:"description"`
			VideoURL         string `json:"video_url"`
			TextContent      string `json:"text_content"`
			EstimatedMinutes *int   `json:"estimated_minutes"`
			OrderIndex       *int   `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.EstimatedMinutes != nil && *reqData.EstimatedMinutes < 0 {
			errors["estimated_minutes"] = "Estimated minutes must be 0 or greater!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLessonUpdate", reqData)
		return c.Next()
	}
}

func CreateQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			QuestionKey   string   `json:"question_key"`
			Question      string   `json:"question"`
			Options       []string `json:"options"`
			CorrectAnswer int      `json:"correct_answer"`
			Explanation   string   `json:"explanation"`
			OrderIndex    int      `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.QuestionKey) == "" {
			errors["question_key"] = "Question key is required!"
		}

		if strings.TrimSpace(reqData.Question) == "" {
			errors["question"] = "Question text is required!"
		}

		if len(reqData.Options) < 2 {
			errors["options"] = "At least two options are required!"
		}

		// The answer must point at one of the options
		if reqData.CorrectAnswer < 0 || reqData.CorrectAnswer >= len(reqData.Options) {
			errors["correct_answer"] = "Correct answer must be a valid option index!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}

func UpdateQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Question      string    `json:"question"`
			Options       *[]string `json:"options"`
			CorrectAnswer *int      `json:"correct_answer"`
			Explanation   string    `json:"explanation"`
			OrderIndex    *int      `json:"order_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Options != nil && len(*reqData.Options) < 2 {
			errors["options"] = "At least two options are required!"
		}

		if reqData.CorrectAnswer != nil && *reqData.CorrectAnswer < 0 {
			errors["correct_answer"] = "Correct answer must be a valid option index!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestionUpdate", reqData)
		return c.Next()
	}
}
