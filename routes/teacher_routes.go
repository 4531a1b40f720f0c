package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/omerfman/yeni-nesil-sinif/handlers"
	"github.com/omerfman/yeni-nesil-sinif/middleware"
)

func TeacherRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/teachers", handlers.ListTeachers)
	api.Get("/teachers/:teacherId", handlers.GetTeacher)

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Post("/teachers", handlers.CreateTeacher)
}
