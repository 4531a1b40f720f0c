package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/omerfman/yeni-nesil-sinif/handlers"
	"github.com/omerfman/yeni-nesil-sinif/middleware"
)

func BookingRoutes(app *fiber.App, h *handlers.BookingHandler) {
	api := app.Group("/api/v1")

	booking := api.Group("/bookings", middleware.Protected())
	booking.Get("/me", h.GetMyBookings)
	booking.Post("", h.CreateBooking)
	booking.Get("/:bookingId", h.GetBooking)
	booking.Patch("/:bookingId/status", h.UpdateBookingStatus)
}
