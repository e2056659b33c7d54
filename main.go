package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/nabhacare/telemed/clients/analytics"
	"github.com/nabhacare/telemed/clients/genai"
	"github.com/nabhacare/telemed/controllers"
	"github.com/nabhacare/telemed/cron"
	"github.com/nabhacare/telemed/db"
	"github.com/nabhacare/telemed/queue"
	"github.com/nabhacare/telemed/redis"
	"github.com/nabhacare/telemed/routes"
	"github.com/nabhacare/telemed/ws"
)

func main() {
	app := fiber.New()
	db.Init()
	db.Migrate()
	redis.InitRedis()

	controllers.Analytics = analytics.New(os.Getenv("ANALYTICS_URL"))
	controllers.GenAI = genai.New(os.Getenv("GEMINI_API_KEY"))
	controllers.Notifications = queue.NewProducer(
		os.Getenv("KAFKA_BROKER"),
		os.Getenv("KAFKA_TOPIC"),
	)

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("NabhaCare API is running")
	})

	routes.SetupAuthRoutes(app)
	routes.SetupDoctorRoutes(app)
	routes.SetupAdminRoutes(app)
	routes.SetupDashboardRoutes(app)
	routes.SetupAIRoutes(app)
	routes.SetupConsultationRoutes(app)

	hub := ws.NewHub()
	routes.SetupRealtimeRoutes(app, hub)
	cron.StartCronJobs(hub, controllers.Analytics)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	log.Fatal(app.Listen(":" + port))
}
