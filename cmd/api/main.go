package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"

	config "github.com/omerfman/yeni-nesil-sinif/configs"
	"github.com/omerfman/yeni-nesil-sinif/database"
	"github.com/omerfman/yeni-nesil-sinif/handlers"
	"github.com/omerfman/yeni-nesil-sinif/jobs"
	"github.com/omerfman/yeni-nesil-sinif/notifications"
	"github.com/omerfman/yeni-nesil-sinif/routes"
	"github.com/omerfman/yeni-nesil-sinif/services"
	"github.com/omerfman/yeni-nesil-sinif/websocket"
)

func main() {
	db := database.ConnectDB()
	database.Migrate(db)
	database.SeedAdmin(db)
	notifications.InitEmailService()

	hub := websocket.NewHub()
	go hub.Run()

	store := database.NewStore(db)
	bookingSvc := services.NewBookingService(store, hub)
	reminderSvc := services.NewReminderService(store, hub)

	c := cron.New()
	c.AddFunc("*/30 * * * *", jobs.NewReminderJob(reminderSvc).Run)
	go c.Start()
	log.Println("✅ Cron job for lesson reminders scheduled successfully.")

	app := fiber.New(fiber.Config{
		AppName:       "Yeni Nesil Sinif",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to Yeni Nesil Sinif API",
		})
	})

	routes.AuthRoutes(app)
	routes.ProfileRoutes(app)
	routes.TeacherRoutes(app)
	routes.BookingRoutes(app, handlers.NewBookingHandler(bookingSvc))
	routes.NotificationRoutes(app, handlers.NewWsHandler(hub))
	routes.CronRoutes(app, handlers.NewCronHandler(reminderSvc, config.Config("CRON_SECRET")))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	log.Println("✅ Server is running on port 8080")
	if err := app.Listen(":8080"); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
