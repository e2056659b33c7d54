package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nabhacare/telemed/ws"
)

// SetupRealtimeRoutes configures the WebSocket signaling endpoint
func SetupRealtimeRoutes(app *fiber.App, hub *ws.Hub) {
	app.Use("/ws", ws.UpgradeRequired)
	app.Get("/ws", ws.Handler(hub))
}
