package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/omerfman/yeni-nesil-sinif/models"
)

// Lookahead for the reminder sweep. The window is as wide as the sweep
// cadence, so a booking is normally seen by one run, occasionally two; the
// per-booking existence check is what keeps reminders unique.
const (
	reminderLookaheadMin = 30 * time.Minute
	reminderLookaheadMax = 60 * time.Minute
)

type ReminderService struct {
	store    BookingStore
	notifier Notifier
}

func NewReminderService(store BookingStore, notifier Notifier) *ReminderService {
	return &ReminderService{store: store, notifier: notifier}
}

// Run scans for confirmed bookings starting 30 to 60 minutes after now and
// writes one reminder per participant, skipping bookings already reminded.
// A failure on one booking never aborts the rest of the sweep. Returns the
// number of notifications created.
func (s *ReminderService) Run(ctx context.Context, now time.Time) (int, error) {
	from := now.Add(reminderLookaheadMin)
	to := now.Add(reminderLookaheadMax)

	upcoming, err := s.store.ConfirmedStartingBetween(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("query upcoming bookings: %w", err)
	}

	created := 0
	for i := range upcoming {
		booking := &upcoming[i]

		exists, err := s.store.ReminderExists(ctx, booking.StudentID, booking.ID)
		if err != nil {
			log.Printf("Reminder check failed for booking %s: %v", booking.ID, err)
			continue
		}
		if exists {
			continue
		}

		notifs := reminderNotifications(booking)
		if err := s.store.CreateNotifications(ctx, notifs); err != nil {
			log.Printf("Failed to create reminders for booking %s: %v", booking.ID, err)
			continue
		}
		created += len(notifs)

		if s.notifier != nil {
			for _, n := range notifs {
				s.notifier.Push(n)
			}
		}
	}
	return created, nil
}

func reminderNotifications(b *models.Booking) []models.Notification {
	return []models.Notification{
		{
			UserID:    b.StudentID,
			Type:      models.NotificationReminder,
			Title:     "Upcoming Lesson",
			Message:   fmt.Sprintf("Your %s lesson with %s starts in about 30 minutes.", b.Subject, b.TeacherName),
			BookingID: &b.ID,
			Link:      bookingLink(b.ID),
		},
		{
			UserID:    b.TeacherID,
			Type:      models.NotificationReminder,
			Title:     "Upcoming Lesson",
			Message:   fmt.Sprintf("Your %s lesson with %s starts in about 30 minutes.", b.Subject, b.StudentName),
			BookingID: &b.ID,
			Link:      bookingLink(b.ID),
		},
	}
}
