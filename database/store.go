package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/omerfman/yeni-nesil-sinif/models"
	"github.com/omerfman/yeni-nesil-sinif/services"
)

// Window scanned backwards from a requested start time when collecting
// overlap candidates. Any booking starting earlier than this has ended by
// the time the requested slot begins, since no lesson runs longer.
const maxLessonLength = 2 * time.Hour

// Store backs the booking services with Postgres through GORM.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateBookingIfFree writes the booking unless it overlaps an existing
// pending or confirmed booking for the same teacher. The teacher's user row
// is locked first so two concurrent creations for the same teacher serialize
// instead of both passing the candidate scan; different teachers proceed in
// parallel.
func (s *Store) CreateBookingIfFree(ctx context.Context, booking *models.Booking) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var teacher models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&teacher, "id = ?", booking.TeacherID).Error; err != nil {
			return err
		}

		var candidates []models.Booking
		err := tx.
			Where("teacher_id = ? AND status IN ?", booking.TeacherID,
				[]string{models.BookingPending, models.BookingConfirmed}).
			Where("start_time BETWEEN ? AND ?",
				booking.StartTime.Add(-maxLessonLength), booking.EndTime).
			Find(&candidates).Error
		if err != nil {
			return err
		}

		for i := range candidates {
			if candidates[i].Overlaps(booking.StartTime, booking.EndTime) {
				return services.ErrSlotTaken
			}
		}

		return tx.Create(booking).Error
	})
}

func (s *Store) GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *Store) SaveBooking(ctx context.Context, booking *models.Booking) error {
	return s.db.WithContext(ctx).Save(booking).Error
}

func (s *Store) ListBookingsByStudent(ctx context.Context, studentID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("start_time desc").
		Find(&bookings).Error
	return bookings, err
}

func (s *Store) ListBookingsByTeacher(ctx context.Context, teacherID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("start_time desc").
		Find(&bookings).Error
	return bookings, err
}

func (s *Store) ConfirmedStartingBetween(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Where("status = ? AND start_time BETWEEN ? AND ?", models.BookingConfirmed, from, to).
		Find(&bookings).Error
	return bookings, err
}

func (s *Store) ReminderExists(ctx context.Context, userID, bookingID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND booking_id = ? AND type = ?",
			userID, bookingID, models.NotificationReminder).
		Count(&count).Error
	return count > 0, err
}

// CreateNotifications inserts the batch in a single statement so the rows
// land together or not at all.
func (s *Store) CreateNotifications(ctx context.Context, notifs []models.Notification) error {
	if len(notifs) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&notifs).Error
}
