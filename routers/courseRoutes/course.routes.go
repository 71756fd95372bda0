package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all learner-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Course listing and details (published courses)
	courseGroup.Get("/list", middleware.JWTMiddleware, validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseDetails)

	// Enrollment
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.EnrollCourse(), controllers.EnrollInCourse)

	// Lesson progress tracking
	courseGroup.Post("/:course_id/module/:module_id/lesson/:lesson_id/progress",
		middleware.JWTMiddleware, validators.LessonParams(), validators.UpdateLessonProgress(), controllers.UpdateLessonProgress)
	courseGroup.Get("/:course_id/module/:module_id/lesson/:lesson_id/progress",
		middleware.JWTMiddleware, validators.LessonParams(), controllers.GetLessonProgress)

	// Module assessments
	courseGroup.Get("/:course_id/module/:module_id/assessment",
		middleware.JWTMiddleware, validators.CourseModuleParams(), controllers.GetModuleAssessment)
	courseGroup.Post("/:course_id/module/:module_id/assessment/submit",
		middleware.JWTMiddleware, validators.CourseModuleParams(), validators.SubmitAssessment(), controllers.SubmitAssessment)

	// Course-level progress
	courseGroup.Get("/:course_id/progress", middleware.JWTMiddleware, validators.CourseProgressParams(), controllers.GetCourseProgress)

	// User enrollments and certificates
	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, validators.GetUserEnrollments(), controllers.GetEnrollments)
	userGroup.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)
}
