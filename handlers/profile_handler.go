package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/omerfman/yeni-nesil-sinif/database"
	"github.com/omerfman/yeni-nesil-sinif/models"
)

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name,omitempty" validate:"omitempty,min=3"`
	Phone       string `json:"phone,omitempty"`
	Bio         string `json:"bio,omitempty"`

	// Teacher-only fields, ignored for students.
	Subjects     []string            `json:"subjects,omitempty"`
	HourlyRate   *float64            `json:"hourly_rate,omitempty" validate:"omitempty,gte=0"`
	Availability map[string][]string `json:"availability,omitempty"`
}

func UpdateProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	if req.DisplayName != "" {
		user.DisplayName = req.DisplayName
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if user.Role == models.RoleTeacher {
		if req.Subjects != nil {
			user.Subjects = req.Subjects
		}
		if req.HourlyRate != nil {
			user.HourlyRate = *req.HourlyRate
		}
		if req.Availability != nil {
			user.Availability = req.Availability
		}
	}

	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(user)
}
