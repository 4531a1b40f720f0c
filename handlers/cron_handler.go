package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/omerfman/yeni-nesil-sinif/services"
)

// CronHandler exposes the reminder sweep to an external scheduler. The
// caller proves itself with a shared bearer secret; anything else is
// rejected before any store access.
type CronHandler struct {
	reminders *services.ReminderService
	secret    string
}

func NewCronHandler(reminders *services.ReminderService, secret string) *CronHandler {
	return &CronHandler{reminders: reminders, secret: secret}
}

func (h *CronHandler) RunReminders(c *fiber.Ctx) error {
	if h.secret == "" || c.Get("Authorization") != "Bearer "+h.secret {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	created, err := h.reminders.Run(c.Context(), time.Now())
	if err != nil {
		log.Printf("🔥 Reminder sweep failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Reminder sweep failed"})
	}

	return c.JSON(fiber.Map{
		"success":              true,
		"notificationsCreated": created,
	})
}
