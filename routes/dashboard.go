package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nabhacare/telemed/controllers"
)

// SetupDashboardRoutes configures the specialty dashboard routes
func SetupDashboardRoutes(app *fiber.App) {
	dashboard := app.Group("/api/dashboard")

	dashboard.Get("/ayurvedic", controllers.AyurvedicDashboard)
	dashboard.Get("/homeopathy", controllers.HomeopathyDashboard)
	dashboard.Get("/general", controllers.GeneralDashboard)
}
