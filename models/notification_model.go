package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationBooking       = "booking"
	NotificationReminder      = "reminder"
	NotificationBookingStatus = "booking_status"
)

type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID  `gorm:"not null;index" json:"user_id"`
	Type      string     `gorm:"size:30;not null" json:"type"`
	Title     string     `gorm:"size:255;not null" json:"title"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	BookingID *uuid.UUID `gorm:"index" json:"booking_id,omitempty"`
	Link      string     `gorm:"size:255" json:"link"`
	IsRead    bool       `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time  `json:"created_at"`
}
