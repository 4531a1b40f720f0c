package services

import "errors"

// Expected failures the handlers translate into HTTP statuses. Anything else
// coming out of the services is an infrastructure problem worth a 500.
var (
	ErrInvalidArgument = errors.New("missing or invalid booking details")
	ErrTeacherNotFound = errors.New("teacher not found")
	ErrSlotTaken       = errors.New("this time slot is no longer available")
	ErrBookingNotFound = errors.New("booking not found")
	ErrNotParticipant  = errors.New("you are not part of this booking")
	ErrBadTransition   = errors.New("booking cannot move to that status")
)
