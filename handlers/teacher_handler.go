package handlers

import (
	"errors"
	"slices"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/omerfman/yeni-nesil-sinif/database"
	"github.com/omerfman/yeni-nesil-sinif/models"
	"github.com/omerfman/yeni-nesil-sinif/utils"
)

// ListTeachers returns active teachers ordered by rating, optionally
// narrowed to those offering ?subject=.
func ListTeachers(c *fiber.Ctx) error {
	subject := c.Query("subject")

	var teachers []models.User
	err := database.DB.
		Where("role = ? AND is_active = ?", models.RoleTeacher, true).
		Order("rating desc").
		Find(&teachers).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch teachers"})
	}

	if subject != "" {
		filtered := teachers[:0]
		for _, t := range teachers {
			if slices.Contains(t.Subjects, subject) {
				filtered = append(filtered, t)
			}
		}
		teachers = filtered
	}

	return c.JSON(teachers)
}

func GetTeacher(c *fiber.Ctx) error {
	var teacher models.User
	err := database.DB.First(&teacher, "id = ?", c.Params("teacherId")).Error
	if err != nil || !teacher.IsTeacher() {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
	}
	return c.JSON(teacher)
}

type CreateTeacherRequest struct {
	Email       string   `json:"email" validate:"required,email"`
	Password    string   `json:"password" validate:"required,min=6"`
	DisplayName string   `json:"display_name" validate:"required,min=3"`
	Phone       string   `json:"phone,omitempty"`
	Bio         string   `json:"bio,omitempty"`
	Subjects    []string `json:"subjects,omitempty"`
	HourlyRate  float64  `json:"hourly_rate,omitempty" validate:"gte=0"`
	ImageURL    string   `json:"image_url,omitempty"`
}

// CreateTeacher provisions a teacher account. Admin only; teachers do not
// self-register on this platform.
func CreateTeacher(c *fiber.Ctx) error {
	var req CreateTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	imageURL := req.ImageURL
	if imageURL == "" {
		imageURL = utils.AvatarURL(req.DisplayName)
	}
	subjects := req.Subjects
	if subjects == nil {
		subjects = []string{}
	}

	teacher := models.User{
		Email:       req.Email,
		Password:    string(hashedPassword),
		DisplayName: req.DisplayName,
		Role:        models.RoleTeacher,
		Phone:       req.Phone,
		Bio:         req.Bio,
		Subjects:    subjects,
		HourlyRate:  req.HourlyRate,
		ImageURL:    imageURL,
		IsActive:    true,
	}
	if err := database.DB.Create(&teacher).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create teacher"})
	}

	return c.Status(fiber.StatusCreated).JSON(teacher)
}
