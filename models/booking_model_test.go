package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingOverlaps(t *testing.T) {
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	at := func(min int) time.Time { return base.Add(time.Duration(min) * time.Minute) }

	booked := Booking{StartTime: at(0), EndTime: at(60)} // [10:00, 11:00)

	cases := []struct {
		name     string
		start    time.Time
		end      time.Time
		overlaps bool
	}{
		{"identical window", at(0), at(60), true},
		{"starts inside", at(30), at(90), true},
		{"ends inside", at(-30), at(30), true},
		{"fully contains", at(-30), at(90), true},
		{"fully contained", at(15), at(45), true},
		{"back-to-back after", at(60), at(120), false},
		{"back-to-back before", at(-60), at(0), false},
		{"disjoint after", at(120), at(180), false},
		{"disjoint before", at(-120), at(-60), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overlaps, booked.Overlaps(tc.start, tc.end))
		})
	}
}

func TestBookingBlocking(t *testing.T) {
	assert.True(t, (&Booking{Status: BookingPending}).Blocking())
	assert.True(t, (&Booking{Status: BookingConfirmed}).Blocking())
	assert.False(t, (&Booking{Status: BookingCancelled}).Blocking())
	assert.False(t, (&Booking{Status: BookingCompleted}).Blocking())
}
