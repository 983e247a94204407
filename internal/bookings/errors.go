package bookings

import "errors"

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrDraftIncomplete  = errors.New("draft is not ready for payment")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
	ErrAlreadyPaid      = errors.New("booking is already paid")
	ErrRequestInFlight  = errors.New("an identical request is still being processed")
	ErrInvalidStatus    = errors.New("invalid payment status")
)
