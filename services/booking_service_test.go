package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omerfman/yeni-nesil-sinif/models"
)

func seedTeacherAndStudent(store *fakeStore, hourlyRate float64) (models.User, models.User) {
	teacher := store.addUser(models.User{
		DisplayName: "Ayse Yilmaz",
		Role:        models.RoleTeacher,
		HourlyRate:  hourlyRate,
		IsActive:    true,
	})
	student := store.addUser(models.User{
		DisplayName: "Mehmet Demir",
		Role:        models.RoleStudent,
		IsActive:    true,
	})
	return teacher, student
}

func bookingInput(teacherID uuid.UUID, start time.Time, duration int) CreateBookingInput {
	return CreateBookingInput{
		TeacherID: teacherID.String(),
		Subject:   "Mathematics",
		StartTime: start.Format(time.RFC3339),
		Duration:  duration,
	}
}

func TestCreateBookingRejectsOverlap(t *testing.T) {
	store := newFakeStore()
	teacher, student := seedTeacherAndStudent(store, 100)
	svc := NewBookingService(store, nil)
	ctx := context.Background()

	at10 := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	_, err := svc.Create(ctx, student.ID, bookingInput(teacher.ID, at10, 60))
	require.NoError(t, err)

	// [10:30, 11:30) collides with [10:00, 11:00).
	_, err = svc.Create(ctx, student.ID, bookingInput(teacher.ID, at10.Add(30*time.Minute), 60))
	assert.ErrorIs(t, err, ErrSlotTaken)

	// Back-to-back at 11:00 is fine: intervals are half-open.
	_, err = svc.Create(ctx, student.ID, bookingInput(teacher.ID, at10.Add(60*time.Minute), 60))
	assert.NoError(t, err)
}

func TestCreateBookingIndependentTeachers(t *testing.T) {
	store := newFakeStore()
	teacherA, student := seedTeacherAndStudent(store, 100)
	teacherB := store.addUser(models.User{
		DisplayName: "Fatma Kaya",
		Role:        models.RoleTeacher,
		HourlyRate:  80,
		IsActive:    true,
	})
	svc := NewBookingService(store, nil)
	ctx := context.Background()

	start := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)

	_, err := svc.Create(ctx, student.ID, bookingInput(teacherA.ID, start, 60))
	require.NoError(t, err)
	_, err = svc.Create(ctx, student.ID, bookingInput(teacherB.ID, start, 60))
	assert.NoError(t, err, "identical window for a different teacher must succeed")
}

func TestCreateBookingConcurrentSameSlot(t *testing.T) {
	store := newFakeStore()
	teacher, _ := seedTeacherAndStudent(store, 100)
	svc := NewBookingService(store, nil)
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	const n = 8
	students := make([]models.User, n)
	for i := range students {
		students[i] = store.addUser(models.User{
			DisplayName: fmt.Sprintf("Student %d", i),
			Role:        models.RoleStudent,
			IsActive:    true,
		})
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(context.Background(), students[i].ID, bookingInput(teacher.ID, start, 60))
		}(i)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, ErrSlotTaken):
			conflicts++
		}
	}
	assert.Equal(t, 1, successes, "exactly one concurrent request may win the slot")
	assert.Equal(t, n-1, conflicts)
}

func TestCreateBookingPriceAndDefaults(t *testing.T) {
	store := newFakeStore()
	teacher, student := seedTeacherAndStudent(store, 150)
	svc := NewBookingService(store, nil)

	start := time.Date(2026, 9, 2, 16, 0, 0, 0, time.UTC)
	booking, err := svc.Create(context.Background(), student.ID, bookingInput(teacher.ID, start, 30))
	require.NoError(t, err)

	assert.Equal(t, 75.0, booking.Price, "150/h for 30 minutes")
	assert.Equal(t, models.BookingConfirmed, booking.Status)
	assert.Equal(t, "", booking.Notes, "omitted notes stored as empty string")
	assert.Equal(t, start.Add(30*time.Minute), booking.EndTime)
	assert.Equal(t, 30, booking.Duration)
	assert.Equal(t, teacher.DisplayName, booking.TeacherName)
	assert.Equal(t, student.DisplayName, booking.StudentName)
}

func TestCreateBookingValidatesBeforeStoreAccess(t *testing.T) {
	start := time.Now().Add(24 * time.Hour)
	cases := []struct {
		name string
		in   CreateBookingInput
	}{
		{"missing teacher id", CreateBookingInput{Subject: "Math", StartTime: start.Format(time.RFC3339), Duration: 60}},
		{"malformed teacher id", CreateBookingInput{TeacherID: "not-a-uuid", Subject: "Math", StartTime: start.Format(time.RFC3339), Duration: 60}},
		{"missing subject", CreateBookingInput{TeacherID: uuid.NewString(), StartTime: start.Format(time.RFC3339), Duration: 60}},
		{"bad start time", CreateBookingInput{TeacherID: uuid.NewString(), Subject: "Math", StartTime: "tomorrow-ish", Duration: 60}},
		{"zero duration", CreateBookingInput{TeacherID: uuid.NewString(), Subject: "Math", StartTime: start.Format(time.RFC3339), Duration: 0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeStore()
			svc := NewBookingService(store, nil)

			_, err := svc.Create(context.Background(), uuid.New(), tc.in)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Zero(t, store.callCount(), "invalid input must be rejected before any store access")
		})
	}
}

func TestCreateBookingTeacherNotFound(t *testing.T) {
	store := newFakeStore()
	_, student := seedTeacherAndStudent(store, 100)
	svc := NewBookingService(store, nil)
	start := time.Date(2026, 9, 3, 11, 0, 0, 0, time.UTC)

	_, err := svc.Create(context.Background(), student.ID, bookingInput(uuid.New(), start, 60))
	assert.ErrorIs(t, err, ErrTeacherNotFound)

	// A student id in the teacher slot is just as absent.
	_, err = svc.Create(context.Background(), student.ID, bookingInput(student.ID, start, 60))
	assert.ErrorIs(t, err, ErrTeacherNotFound)
}

func TestCreateBookingWritesBothNotifications(t *testing.T) {
	store := newFakeStore()
	teacher, student := seedTeacherAndStudent(store, 100)
	svc := NewBookingService(store, nil)

	start := time.Date(2026, 9, 4, 10, 0, 0, 0, time.UTC)
	booking, err := svc.Create(context.Background(), student.ID, bookingInput(teacher.ID, start, 60))
	require.NoError(t, err)

	require.Len(t, store.notifications, 2)
	recipients := map[uuid.UUID]bool{}
	for _, n := range store.notifications {
		assert.Equal(t, models.NotificationBooking, n.Type)
		require.NotNil(t, n.BookingID)
		assert.Equal(t, booking.ID, *n.BookingID)
		recipients[n.UserID] = true
	}
	assert.True(t, recipients[student.ID], "student must be notified")
	assert.True(t, recipients[teacher.ID], "teacher must be notified")
}

func TestUpdateStatusTransitions(t *testing.T) {
	store := newFakeStore()
	teacher, student := seedTeacherAndStudent(store, 100)
	stranger := store.addUser(models.User{DisplayName: "Someone Else", Role: models.RoleStudent, IsActive: true})
	svc := NewBookingService(store, nil)
	ctx := context.Background()

	past := store.addBooking(models.Booking{
		StudentID:   student.ID,
		TeacherID:   teacher.ID,
		StudentName: student.DisplayName,
		TeacherName: teacher.DisplayName,
		Subject:     "Physics",
		StartTime:   time.Now().Add(-2 * time.Hour),
		EndTime:     time.Now().Add(-1 * time.Hour),
		Status:      models.BookingConfirmed,
	})
	future := store.addBooking(models.Booking{
		StudentID:   student.ID,
		TeacherID:   teacher.ID,
		StudentName: student.DisplayName,
		TeacherName: teacher.DisplayName,
		Subject:     "Physics",
		StartTime:   time.Now().Add(24 * time.Hour),
		EndTime:     time.Now().Add(25 * time.Hour),
		Status:      models.BookingConfirmed,
	})

	_, err := svc.UpdateStatus(ctx, stranger.ID, future.ID, models.BookingCancelled)
	assert.ErrorIs(t, err, ErrNotParticipant)

	_, err = svc.UpdateStatus(ctx, teacher.ID, future.ID, models.BookingCompleted)
	assert.ErrorIs(t, err, ErrBadTransition, "cannot complete a lesson before it ends")

	_, err = svc.UpdateStatus(ctx, student.ID, past.ID, models.BookingCompleted)
	assert.ErrorIs(t, err, ErrBadTransition, "only the teacher completes a lesson")

	updated, err := svc.UpdateStatus(ctx, teacher.ID, past.ID, models.BookingCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, updated.Status)

	updated, err = svc.UpdateStatus(ctx, student.ID, future.ID, models.BookingCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, updated.Status)

	_, err = svc.UpdateStatus(ctx, student.ID, future.ID, models.BookingCancelled)
	assert.ErrorIs(t, err, ErrBadTransition, "cancelled bookings stay cancelled")

	_, err = svc.UpdateStatus(ctx, student.ID, uuid.New(), models.BookingCancelled)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancelledSlotCanBeRebooked(t *testing.T) {
	store := newFakeStore()
	teacher, student := seedTeacherAndStudent(store, 100)
	svc := NewBookingService(store, nil)
	ctx := context.Background()

	start := time.Now().Add(48 * time.Hour).Truncate(time.Hour)
	booking, err := svc.Create(ctx, student.ID, bookingInput(teacher.ID, start, 60))
	require.NoError(t, err)

	_, err = svc.Create(ctx, student.ID, bookingInput(teacher.ID, start, 60))
	require.ErrorIs(t, err, ErrSlotTaken)

	_, err = svc.UpdateStatus(ctx, student.ID, booking.ID, models.BookingCancelled)
	require.NoError(t, err)

	_, err = svc.Create(ctx, student.ID, bookingInput(teacher.ID, start, 60))
	assert.NoError(t, err, "a cancelled booking no longer blocks the slot")
}
