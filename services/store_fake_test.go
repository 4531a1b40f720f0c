package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omerfman/yeni-nesil-sinif/models"
)

// fakeStore is an in-memory BookingStore. CreateBookingIfFree serializes on
// the store mutex, mirroring the per-teacher row lock the real store takes.
type fakeStore struct {
	mu            sync.Mutex
	users         map[uuid.UUID]models.User
	bookings      map[uuid.UUID]models.Booking
	notifications []models.Notification

	// Booking IDs whose notification writes should fail.
	failNotifyFor map[uuid.UUID]bool

	calls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:         make(map[uuid.UUID]models.User),
		bookings:      make(map[uuid.UUID]models.Booking),
		failNotifyFor: make(map[uuid.UUID]bool),
	}
}

func (f *fakeStore) addUser(u models.User) models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeStore) addBooking(b models.Booking) models.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	f.bookings[b.ID] = b
	return b
}

func (f *fakeStore) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeStore) notificationCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.notifications)
}

func (f *fakeStore) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (f *fakeStore) CreateBookingIfFree(_ context.Context, booking *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	for _, existing := range f.bookings {
		if existing.TeacherID != booking.TeacherID || !existing.Blocking() {
			continue
		}
		if existing.Overlaps(booking.StartTime, booking.EndTime) {
			return ErrSlotTaken
		}
	}
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	f.bookings[booking.ID] = *booking
	return nil
}

func (f *fakeStore) GetBooking(_ context.Context, id uuid.UUID) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	b, ok := f.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &b, nil
}

func (f *fakeStore) SaveBooking(_ context.Context, booking *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.bookings[booking.ID] = *booking
	return nil
}

func (f *fakeStore) ListBookingsByStudent(_ context.Context, studentID uuid.UUID) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	var out []models.Booking
	for _, b := range f.bookings {
		if b.StudentID == studentID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) ListBookingsByTeacher(_ context.Context, teacherID uuid.UUID) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	var out []models.Booking
	for _, b := range f.bookings {
		if b.TeacherID == teacherID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) ConfirmedStartingBetween(_ context.Context, from, to time.Time) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	var out []models.Booking
	for _, b := range f.bookings {
		if b.Status != models.BookingConfirmed {
			continue
		}
		if b.StartTime.Before(from) || b.StartTime.After(to) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeStore) ReminderExists(_ context.Context, userID, bookingID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	for _, n := range f.notifications {
		if n.Type == models.NotificationReminder && n.UserID == userID &&
			n.BookingID != nil && *n.BookingID == bookingID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CreateNotifications(_ context.Context, notifs []models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	for _, n := range notifs {
		if n.BookingID != nil && f.failNotifyFor[*n.BookingID] {
			return gorm.ErrInvalidTransaction
		}
	}
	f.notifications = append(f.notifications, notifs...)
	return nil
}
