package bookings

import "flyviet/internal/payments"

// CreateBookingRequest submits a completed draft for payment. The draft
// token rides in the X-Draft-Token header; the body only carries how the
// customer wants to pay.
type CreateBookingRequest struct {
	PaymentMethod  string           `json:"paymentMethod" binding:"required"`
	PaymentDetails payments.Details `json:"paymentDetails"`
}

// UpdatePaymentRequest drives PATCH /bookings/:id/payment, used by
// deferred settlement methods once the transfer clears.
type UpdatePaymentRequest struct {
	Status string `json:"status" binding:"required"`
}

type BookingListQuery struct {
	Page          int    `form:"page"`
	Limit         int    `form:"limit"`
	Status        string `form:"status"`
	PaymentStatus string `form:"paymentStatus"`
	DateFrom      string `form:"dateFrom"`
	DateTo        string `form:"dateTo"`
	Search        string `form:"search"` // booking number, contact name or email
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}
