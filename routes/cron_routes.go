package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/omerfman/yeni-nesil-sinif/handlers"
)

// CronRoutes is not behind the JWT middleware; the handler checks the
// scheduler's shared secret itself.
func CronRoutes(app *fiber.App, h *handlers.CronHandler) {
	api := app.Group("/api/v1")
	api.Post("/cron/reminders", h.RunReminders)
}
