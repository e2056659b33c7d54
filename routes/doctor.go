package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nabhacare/telemed/controllers"
	"github.com/nabhacare/telemed/middleware"
	"github.com/nabhacare/telemed/models"
)

// SetupDoctorRoutes configures the doctor's own-profile routes
func SetupDoctorRoutes(app *fiber.App) {
	doctor := app.Group("/api/doctor", middleware.Protected(), middleware.RequireRole(models.RoleDoctor))

	doctor.Get("/profile", controllers.GetDoctorProfile)
	doctor.Put("/profile", controllers.UpdateDoctorProfile)
	doctor.Post("/profile/picture", controllers.UpdateProfilePicture)
}
