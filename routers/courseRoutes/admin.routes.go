package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up the admin catalog management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))

	// Course catalog
	adminGroup.Post("/course", validators.CreateCourse(), controllers.AdminCreateCourse)
	adminGroup.Get("/course/list", validators.CourseList(), controllers.AdminListCourses)
	adminGroup.Patch("/course/:id", validators.CourseID(), validators.UpdateCourse(), controllers.AdminUpdateCourse)
	adminGroup.Patch("/course/:id/publish", validators.CourseID(), controllers.AdminPublishCourse)

	// Modules
	adminGroup.Post("/course/:id/module", validators.CourseID(), validators.CreateModule(), controllers.AdminCreateModule)
	adminGroup.Patch("/course/:course_id/module/:module_id",
		validators.CourseModuleParams(), validators.UpdateModule(), controllers.AdminUpdateModule)

	// Lessons
	adminGroup.Post("/course/:course_id/module/:module_id/lesson",
		validators.CourseModuleParams(), validators.CreateLesson(), controllers.AdminCreateLesson)
	adminGroup.Patch("/course/:course_id/module/:module_id/lesson/:lesson_id",
		validators.LessonParams(), validators.UpdateLesson(), controllers.AdminUpdateLesson)
	adminGroup.Delete("/course/:course_id/module/:module_id/lesson/:lesson_id",
		validators.LessonParams(), controllers.AdminDeleteLesson)

	// Assessment questions
	adminGroup.Post("/course/:course_id/module/:module_id/question",
		validators.CourseModuleParams(), validators.CreateQuestion(), controllers.AdminCreateQuestion)
	adminGroup.Patch("/course/:course_id/module/:module_id/question/:question_id",
		validators.CourseModuleParams(), validators.QuestionParams(), validators.UpdateQuestion(), controllers.AdminUpdateQuestion)
	adminGroup.Delete("/course/:course_id/module/:module_id/question/:question_id",
		validators.CourseModuleParams(), validators.QuestionParams(), controllers.AdminDeleteQuestion)

	// Dashboard
	adminGroup.Get("/dashboard", controllers.AdminDashboard)
}
