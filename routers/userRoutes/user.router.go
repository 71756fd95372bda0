package userProfileRoutes

import (
	userProfileController "lms/controllers/userControllers"
	"lms/middleware"
	userPorfileValidator "lms/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/profile", middleware.JWTMiddleware, userProfileController.GetProfile)
	userGroup.Patch("/profile", userPorfileValidator.UpdateProfile(), middleware.JWTMiddleware, userProfileController.UpdateProfile)
}
