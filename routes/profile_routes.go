package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/omerfman/yeni-nesil-sinif/handlers"
	"github.com/omerfman/yeni-nesil-sinif/middleware"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group("/api/v1")
	api.Put("/profile", middleware.Protected(), handlers.UpdateProfile)
}
