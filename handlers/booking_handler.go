package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/omerfman/yeni-nesil-sinif/database"
	"github.com/omerfman/yeni-nesil-sinif/models"
	"github.com/omerfman/yeni-nesil-sinif/notifications"
	"github.com/omerfman/yeni-nesil-sinif/services"
)

type BookingHandler struct {
	svc *services.BookingService
}

func NewBookingHandler(svc *services.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// CreateBooking books a lesson for the authenticated student. Double-booking
// a teacher is rejected with 409 by the service's transactional overlap
// check.
func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	studentID, _ := uuid.Parse(claims["user_id"].(string))

	var req services.CreateBookingInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	booking, err := h.svc.Create(c.Context(), studentID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidArgument):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrTeacherNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrSlotTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		default:
			log.Printf("🔥 CreateBooking failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create booking, please try again."})
		}
	}

	go sendBookingEmails(booking)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":   true,
		"bookingId": booking.ID.String(),
		"booking":   booking,
	})
}

func (h *BookingHandler) GetMyBookings(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))
	role := claims["role"].(string)

	bookings, err := h.svc.ListForUser(c.Context(), userID, role)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch bookings"})
	}
	return c.JSON(bookings)
}

func (h *BookingHandler) GetBooking(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	booking, err := h.svc.GetForUser(c.Context(), userID, bookingID)
	switch {
	case errors.Is(err, services.ErrBookingNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrNotParticipant):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch booking"})
	}
	return c.JSON(booking)
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed cancelled completed"`
}

func (h *BookingHandler) UpdateBookingStatus(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	var req UpdateBookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	booking, err := h.svc.UpdateStatus(c.Context(), userID, bookingID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrNotParticipant):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrBadTransition), errors.Is(err, services.ErrInvalidArgument):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			log.Printf("🔥 UpdateBookingStatus failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update booking"})
		}
	}
	return c.JSON(booking)
}

func sendBookingEmails(booking *models.Booking) {
	if notifications.EmailClient == nil {
		return
	}

	var student, teacher models.User
	if err := database.DB.First(&student, "id = ?", booking.StudentID).Error; err != nil {
		log.Printf("Could not load student for booking email: %v", err)
		return
	}
	if err := database.DB.First(&teacher, "id = ?", booking.TeacherID).Error; err != nil {
		log.Printf("Could not load teacher for booking email: %v", err)
		return
	}

	when := booking.StartTime.Format("Monday, Jan 2 2006 at 15:04")
	notifications.SendEmail(student.DisplayName, student.Email,
		"Your Booking is Confirmed!",
		fmt.Sprintf("<h1>Booking Confirmed</h1><p>Your %s lesson with %s is booked for %s.</p>",
			booking.Subject, booking.TeacherName, when))
	notifications.SendEmail(teacher.DisplayName, teacher.Email,
		"You Have a New Booking!",
		fmt.Sprintf("<h1>New Booking</h1><p>%s booked a %s lesson for %s.</p>",
			booking.StudentName, booking.Subject, when))
}
