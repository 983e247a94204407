package bookings

import (
	"time"

	"flyviet/internal/flights"
)

// BookingResponse is the confirmation payload the ticket page renders.
type BookingResponse struct {
	BookingID     string `json:"bookingId"`
	BookingNumber string `json:"bookingNumber"`
	Status        Status `json:"status"`

	TripType  string `json:"trip_type"`
	SeatClass string `json:"seat_class"`

	OutboundFlight *flights.FlightResponse `json:"outbound_flight,omitempty"`
	ReturnFlight   *flights.FlightResponse `json:"return_flight,omitempty"`

	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`

	Passengers []PassengerInfo `json:"passengers"`

	BaseFare       float64 `json:"baseFare"`
	Taxes          float64 `json:"taxes"`
	ServicesCost   float64 `json:"servicesCost"`
	DiscountAmount float64 `json:"discountAmount"`
	TotalAmount    float64 `json:"totalAmount"`
	PromoCode      string  `json:"promoCode,omitempty"`

	Payment PaymentInfo `json:"payment"`

	CreatedAt   time.Time  `json:"created_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

type PassengerInfo struct {
	Type     string `json:"type"`
	FullName string `json:"full_name"`
	Gender   string `json:"gender"`
	DOB      string `json:"dob"`
	IDNumber string `json:"id_number,omitempty"`
}

type PaymentInfo struct {
	Method         string     `json:"paymentMethod"`
	Status         string     `json:"status"`
	Amount         float64    `json:"amount"`
	Currency       string     `json:"currency"`
	TransactionRef string     `json:"transactionRef"`
	PaidAt         *time.Time `json:"paymentDate,omitempty"`
}

type PaginatedBookings struct {
	Bookings   []BookingResponse `json:"bookings"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// ToResponse maps a booking row onto the client shape.
func (b *Booking) ToResponse() BookingResponse {
	resp := BookingResponse{
		BookingID:      b.ID.String(),
		BookingNumber:  b.BookingNumber,
		Status:         b.Status,
		TripType:       b.TripType,
		SeatClass:      string(b.SeatClass),
		ContactName:    b.ContactName,
		ContactEmail:   b.ContactEmail,
		ContactPhone:   b.ContactPhone,
		BaseFare:       b.BaseFare,
		Taxes:          b.Taxes,
		ServicesCost:   b.ServicesCost,
		DiscountAmount: b.DiscountAmount,
		TotalAmount:    b.TotalAmount,
		PromoCode:      b.PromoCode,
		CreatedAt:      b.CreatedAt,
		CancelledAt:    b.CancelledAt,
	}

	for _, p := range b.Passengers {
		resp.Passengers = append(resp.Passengers, PassengerInfo{
			Type:     string(p.Type),
			FullName: p.FullName,
			Gender:   p.Gender,
			DOB:      p.DOB,
			IDNumber: p.IDNumber,
		})
	}

	if b.Payment != nil {
		resp.Payment = PaymentInfo{
			Method:         b.Payment.Method,
			Status:         b.Payment.Status,
			Amount:         b.Payment.Amount,
			Currency:       b.Payment.Currency,
			TransactionRef: b.Payment.TransactionRef,
			PaidAt:         b.Payment.PaidAt,
		}
	}

	if b.OutboundFlight != nil {
		fr := b.OutboundFlight.ToResponse(b.SeatClass)
		resp.OutboundFlight = &fr
	}
	if b.ReturnFlight != nil {
		fr := b.ReturnFlight.ToResponse(b.SeatClass)
		resp.ReturnFlight = &fr
	}

	return resp
}
