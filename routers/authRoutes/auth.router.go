package authRoutes

import (
	authControllers "lms/controllers/auth"
	"lms/middleware"
	authValidators "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidators.Signup(), authControllers.Signup)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Post("/verify-2fa", authControllers.Verify2FA)
	authGroup.Post("/send-otp", authControllers.SendOTP)
	authGroup.Patch("/verify-email", authControllers.VerifyEmail)
	authGroup.Get("/login/history", authValidators.LoginHistory(), middleware.JWTMiddleware, authControllers.LoginHistoryList)
	authGroup.Put("/change/login/password", middleware.JWTMiddleware, authControllers.ChangeLoginPassword)
}
