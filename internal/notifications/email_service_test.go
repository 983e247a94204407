package notifications

import (
	"testing"

	"flyviet/internal/bookings"

	"github.com/stretchr/testify/assert"
)

func TestRenderBookingEmailCreated(t *testing.T) {
	subject, body := renderBookingEmail(bookings.BookingEvent{
		Type:          bookings.EventBookingCreated,
		BookingNumber: "FV-20260915-ABCDEF",
		ContactName:   "Nguyen Van A",
		TotalAmount:   3025000,
		PaymentMethod: "credit_card",
		PaymentStatus: "paid",
	})

	assert.Contains(t, subject, "FV-20260915-ABCDEF")
	assert.Contains(t, body, "Nguyen Van A")
	assert.Contains(t, body, "3025000 VND")
	assert.NotContains(t, body, "pending")
}

func TestRenderBookingEmailUnpaidMentionsTransfer(t *testing.T) {
	_, body := renderBookingEmail(bookings.BookingEvent{
		Type:          bookings.EventBookingCreated,
		BookingNumber: "FV-20260915-ABCDEF",
		ContactName:   "Nguyen Van A",
		TotalAmount:   3025000,
		PaymentMethod: "bank_transfer",
		PaymentStatus: "unpaid",
	})

	assert.Contains(t, body, "bank transfer")
}

func TestRenderBookingEmailCancelled(t *testing.T) {
	subject, body := renderBookingEmail(bookings.BookingEvent{
		Type:          bookings.EventBookingCancelled,
		BookingNumber: "FV-20260915-ABCDEF",
		ContactName:   "Nguyen Van A",
	})

	assert.Contains(t, subject, "cancelled")
	assert.Contains(t, body, "FV-20260915-ABCDEF")
}
