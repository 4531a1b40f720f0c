package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

type Booking struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID uuid.UUID `gorm:"not null;index" json:"student_id"`
	TeacherID uuid.UUID `gorm:"not null;index:idx_bookings_teacher_start" json:"teacher_id"`

	StudentName string `gorm:"size:255" json:"student_name"`
	TeacherName string `gorm:"size:255" json:"teacher_name"`

	Subject   string    `gorm:"size:255;not null" json:"subject"`
	StartTime time.Time `gorm:"not null;index:idx_bookings_teacher_start" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`
	Duration  int       `gorm:"not null" json:"duration"`
	Price     float64   `gorm:"type:numeric(10,2);not null" json:"price"`
	Status    string    `gorm:"size:20;not null;default:'confirmed'" json:"status"`
	Notes     string    `gorm:"type:text;not null;default:''" json:"notes"`

	Student User `gorm:"foreignkey:StudentID" json:"-"`
	Teacher User `gorm:"foreignkey:TeacherID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Blocking reports whether the booking still reserves its time slot.
func (b *Booking) Blocking() bool {
	return b.Status == BookingPending || b.Status == BookingConfirmed
}

// Overlaps tests the booking's interval against [start, end). Intervals are
// half-open, so a lesson ending exactly when another starts does not collide.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && start.Before(b.EndTime)
}
