package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nabhacare/telemed/controllers"
	"github.com/nabhacare/telemed/middleware"
	"github.com/nabhacare/telemed/models"
)

// SetupConsultationRoutes configures consultation finalize and contact routes
func SetupConsultationRoutes(app *fiber.App) {
	app.Post("/api/consultation/finalize",
		middleware.Protected(), middleware.RequireRole(models.RoleDoctor),
		controllers.FinalizeConsultation)

	app.Post("/api/contact", controllers.SubmitContact)
}
