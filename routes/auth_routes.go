package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/omerfman/yeni-nesil-sinif/handlers"
	"github.com/omerfman/yeni-nesil-sinif/middleware"
)

func AuthRoutes(app *fiber.App) {
	auth := app.Group("/api/v1/auth")
	auth.Post("/register", handlers.RegisterUser)
	auth.Post("/login", handlers.LoginUser)
	auth.Get("/me", middleware.Protected(), handlers.GetMe)
}
