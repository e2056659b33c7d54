package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nabhacare/telemed/controllers"
	"github.com/nabhacare/telemed/middleware"
	"github.com/nabhacare/telemed/models"
)

// SetupAdminRoutes configures the admin moderation routes
func SetupAdminRoutes(app *fiber.App) {
	api := app.Group("/api", middleware.Protected(), middleware.RequireRole(models.RoleAdmin))

	api.Get("/users", controllers.GetUsers)
	api.Get("/admin/stats", controllers.GetAdminStats)
	api.Put("/admin/users/:id/status", controllers.UpdateUserStatus)
}
