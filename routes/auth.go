package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nabhacare/telemed/controllers"
	"github.com/nabhacare/telemed/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")

	auth.Post("/admin/login", middleware.AuthRateLimit(), controllers.AdminLogin)
	auth.Post("/doctor/signup", controllers.DoctorSignup)
	auth.Post("/doctor/signin", middleware.AuthRateLimit(), controllers.DoctorSignin)
	auth.Post("/doctor/verify-otp", controllers.VerifyOTP)
}
