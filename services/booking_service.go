package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omerfman/yeni-nesil-sinif/models"
)

// BookingStore is the slice of the document store the booking core touches.
// It is injected rather than reached through a package global so tests can
// substitute an in-memory implementation.
type BookingStore interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	// CreateBookingIfFree persists the booking only if no pending or confirmed
	// booking for the same teacher overlaps it, returning ErrSlotTaken
	// otherwise. The check and the write happen in one isolation unit.
	CreateBookingIfFree(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	SaveBooking(ctx context.Context, booking *models.Booking) error
	ListBookingsByStudent(ctx context.Context, studentID uuid.UUID) ([]models.Booking, error)
	ListBookingsByTeacher(ctx context.Context, teacherID uuid.UUID) ([]models.Booking, error)
	ConfirmedStartingBetween(ctx context.Context, from, to time.Time) ([]models.Booking, error)
	ReminderExists(ctx context.Context, userID, bookingID uuid.UUID) (bool, error)
	CreateNotifications(ctx context.Context, notifs []models.Notification) error
}

// Notifier receives freshly persisted notifications for realtime delivery.
// Delivery is best-effort; the persisted row is the source of truth.
type Notifier interface {
	Push(n models.Notification)
}

type BookingService struct {
	store    BookingStore
	notifier Notifier
}

func NewBookingService(store BookingStore, notifier Notifier) *BookingService {
	return &BookingService{store: store, notifier: notifier}
}

type CreateBookingInput struct {
	TeacherID string `json:"teacher_id"`
	Subject   string `json:"subject"`
	StartTime string `json:"start_time"`
	Duration  int    `json:"duration"`
	Notes     string `json:"notes,omitempty"`
}

// Create books a lesson with the given teacher after verifying no other
// pending or confirmed booking overlaps the requested window. All input
// checks happen before the store is touched, so a malformed request never
// opens a transaction.
func (s *BookingService) Create(ctx context.Context, studentID uuid.UUID, in CreateBookingInput) (*models.Booking, error) {
	teacherID, err := uuid.Parse(in.TeacherID)
	if err != nil {
		return nil, fmt.Errorf("%w: teacher_id", ErrInvalidArgument)
	}
	if in.Subject == "" {
		return nil, fmt.Errorf("%w: subject", ErrInvalidArgument)
	}
	start, err := time.Parse(time.RFC3339, in.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: start_time", ErrInvalidArgument)
	}
	if in.Duration <= 0 {
		return nil, fmt.Errorf("%w: duration", ErrInvalidArgument)
	}
	end := start.Add(time.Duration(in.Duration) * time.Minute)

	teacher, err := s.store.GetUser(ctx, teacherID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTeacherNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load teacher: %w", err)
	}
	if !teacher.IsTeacher() {
		return nil, ErrTeacherNotFound
	}

	student, err := s.store.GetUser(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("load student: %w", err)
	}

	booking := &models.Booking{
		// Assigned up front so the notification rows can reference it.
		ID:          uuid.New(),
		StudentID:   studentID,
		TeacherID:   teacherID,
		StudentName: student.DisplayName,
		TeacherName: teacher.DisplayName,
		Subject:     in.Subject,
		StartTime:   start,
		EndTime:     end,
		Duration:    in.Duration,
		Price:       teacher.HourlyRate * float64(in.Duration) / 60,
		Status:      models.BookingConfirmed,
		Notes:       in.Notes,
	}

	if err := s.store.CreateBookingIfFree(ctx, booking); err != nil {
		return nil, err
	}

	notifs := bookingCreatedNotifications(booking)
	if err := s.store.CreateNotifications(ctx, notifs); err != nil {
		// The booking itself is committed; a booking without its notification
		// rows is an acceptable state, the reverse is not.
		log.Printf("Failed to write notifications for booking %s: %v", booking.ID, err)
		return booking, nil
	}
	s.push(notifs)

	return booking, nil
}

// UpdateStatus applies a lifecycle transition requested by one of the two
// participants and notifies the other one.
func (s *BookingService) UpdateStatus(ctx context.Context, callerID, bookingID uuid.UUID, next string) (*models.Booking, error) {
	booking, err := s.store.GetBooking(ctx, bookingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}

	isTeacher := callerID == booking.TeacherID
	isStudent := callerID == booking.StudentID
	if !isTeacher && !isStudent {
		return nil, ErrNotParticipant
	}

	switch next {
	case models.BookingConfirmed:
		if !isTeacher || booking.Status != models.BookingPending {
			return nil, ErrBadTransition
		}
	case models.BookingCancelled:
		if !booking.Blocking() {
			return nil, ErrBadTransition
		}
	case models.BookingCompleted:
		if !isTeacher || booking.Status != models.BookingConfirmed || booking.EndTime.After(time.Now()) {
			return nil, ErrBadTransition
		}
	default:
		return nil, fmt.Errorf("%w: status", ErrInvalidArgument)
	}

	booking.Status = next
	if err := s.store.SaveBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("save booking: %w", err)
	}

	recipient := booking.TeacherID
	counterpartName := booking.StudentName
	if isTeacher {
		recipient = booking.StudentID
		counterpartName = booking.TeacherName
	}
	notifs := []models.Notification{{
		UserID:    recipient,
		Type:      models.NotificationBookingStatus,
		Title:     "Booking Updated",
		Message:   fmt.Sprintf("Your %s lesson with %s is now %s.", booking.Subject, counterpartName, next),
		BookingID: &booking.ID,
		Link:      bookingLink(booking.ID),
	}}
	if err := s.store.CreateNotifications(ctx, notifs); err != nil {
		log.Printf("Failed to write status notification for booking %s: %v", booking.ID, err)
	} else {
		s.push(notifs)
	}

	return booking, nil
}

// ListForUser returns the caller's bookings, teacher-side or student-side
// depending on role.
func (s *BookingService) ListForUser(ctx context.Context, userID uuid.UUID, role string) ([]models.Booking, error) {
	if role == models.RoleTeacher {
		return s.store.ListBookingsByTeacher(ctx, userID)
	}
	return s.store.ListBookingsByStudent(ctx, userID)
}

// GetForUser fetches one booking, visible to its participants only.
func (s *BookingService) GetForUser(ctx context.Context, userID, bookingID uuid.UUID) (*models.Booking, error) {
	booking, err := s.store.GetBooking(ctx, bookingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	if booking.StudentID != userID && booking.TeacherID != userID {
		return nil, ErrNotParticipant
	}
	return booking, nil
}

func (s *BookingService) push(notifs []models.Notification) {
	if s.notifier == nil {
		return
	}
	for _, n := range notifs {
		s.notifier.Push(n)
	}
}

func bookingCreatedNotifications(b *models.Booking) []models.Notification {
	when := b.StartTime.Format("Jan 2, 2006 at 15:04")
	return []models.Notification{
		{
			UserID:    b.StudentID,
			Type:      models.NotificationBooking,
			Title:     "Booking Confirmed",
			Message:   fmt.Sprintf("Your %s lesson with %s is booked for %s.", b.Subject, b.TeacherName, when),
			BookingID: &b.ID,
			Link:      bookingLink(b.ID),
		},
		{
			UserID:    b.TeacherID,
			Type:      models.NotificationBooking,
			Title:     "New Booking",
			Message:   fmt.Sprintf("%s booked a %s lesson for %s.", b.StudentName, b.Subject, when),
			BookingID: &b.ID,
			Link:      bookingLink(b.ID),
		},
	}
}

func bookingLink(id uuid.UUID) string {
	return fmt.Sprintf("/bookings/detail.html?id=%s", id)
}
