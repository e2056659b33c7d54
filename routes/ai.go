package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nabhacare/telemed/controllers"
	"github.com/nabhacare/telemed/middleware"
	"github.com/nabhacare/telemed/models"
)

// SetupAIRoutes configures the AI consultation helper routes
func SetupAIRoutes(app *fiber.App) {
	ai := app.Group("/api/ai", middleware.Protected(), middleware.RequireRole(models.RoleDoctor))

	ai.Post("/session/start", controllers.StartAISession)
	ai.Post("/speech/stream", controllers.StreamSpeech)
	ai.Post("/records/draft", controllers.DraftRecord)
	ai.Post("/rx/suggest", controllers.SuggestRx)
}
