package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email       string    `gorm:"size:255;not null;unique" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	DisplayName string    `gorm:"size:255;not null" json:"display_name"`
	Role        string    `gorm:"size:20;not null;default:'student'" json:"role"`

	Phone    string   `gorm:"size:30" json:"phone"`
	Bio      string   `gorm:"type:text" json:"bio"`
	ImageURL string   `gorm:"size:255" json:"image_url"`
	Subjects []string `gorm:"serializer:json" json:"subjects"`

	HourlyRate   float64 `gorm:"type:numeric(10,2);default:0.00" json:"hourly_rate"`
	Rating       float32 `gorm:"default:0" json:"rating"`
	TotalReviews int     `gorm:"default:0" json:"total_reviews"`

	// Weekday name -> list of "HH:MM-HH:MM" windows the teacher accepts.
	Availability map[string][]string `gorm:"serializer:json" json:"availability"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsTeacher() bool {
	return u.Role == RoleTeacher && u.IsActive
}
