package bookings

import (
	"time"

	"flyviet/internal/flights"
	"flyviet/internal/pricing"

	"github.com/google/uuid"
)

// Booking is a confirmed reservation persisted from a completed draft.
type Booking struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingNumber string    `gorm:"type:varchar(24);unique;not null" json:"booking_number"`

	TripType  string            `gorm:"type:varchar(12);not null" json:"trip_type"`
	SeatClass pricing.SeatClass `gorm:"type:varchar(20);not null" json:"seat_class"`

	OutboundFlightID uuid.UUID  `gorm:"type:uuid;index;not null" json:"outbound_flight_id"`
	ReturnFlightID   *uuid.UUID `gorm:"type:uuid;index" json:"return_flight_id,omitempty"`

	ContactName  string `gorm:"type:varchar(100);not null" json:"contact_name"`
	ContactEmail string `gorm:"type:varchar(255);not null" json:"contact_email"`
	ContactPhone string `gorm:"type:varchar(20);not null" json:"contact_phone"`

	NumAdults   int `gorm:"not null" json:"numAdults"`
	NumChildren int `gorm:"not null;default:0" json:"numChildren"`
	NumInfants  int `gorm:"not null;default:0" json:"numInfants"`

	ServiceFood      bool `gorm:"not null;default:false" json:"service_food"`
	ServiceLuggage   bool `gorm:"not null;default:false" json:"service_luggage"`
	ServiceInsurance bool `gorm:"not null;default:false" json:"service_insurance"`

	PromoCode      string  `gorm:"type:varchar(30)" json:"promo_code,omitempty"`
	BaseFare       float64 `gorm:"not null" json:"base_fare"`
	Taxes          float64 `gorm:"not null" json:"taxes"`
	ServicesCost   float64 `gorm:"not null;default:0" json:"services_cost"`
	DiscountAmount float64 `gorm:"not null;default:0" json:"discount_amount"`
	TotalAmount    float64 `gorm:"not null" json:"total_amount"`

	Status      Status     `gorm:"type:varchar(20);not null;default:'confirmed'" json:"status"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Passengers     []BookingPassenger `json:"passengers,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
	Payment        *Payment           `json:"payment,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
	OutboundFlight *flights.Flight    `json:"outbound_flight,omitempty" gorm:"foreignKey:OutboundFlightID;constraint:OnDelete:RESTRICT;"`
	ReturnFlight   *flights.Flight    `json:"return_flight,omitempty" gorm:"foreignKey:ReturnFlightID;constraint:OnDelete:RESTRICT;"`
}

// BookingPassenger is one traveler on a booking.
type BookingPassenger struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;index;not null" json:"booking_id"`

	Type     pricing.PassengerType `gorm:"type:varchar(10);not null" json:"type"`
	FullName string                `gorm:"type:varchar(100);not null" json:"full_name"`
	Gender   string                `gorm:"type:varchar(10);not null" json:"gender"`
	DOB      string                `gorm:"type:varchar(10);not null" json:"dob"`
	IDNumber string                `gorm:"type:varchar(30)" json:"id_number,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Payment tracks how a booking was settled.
type Payment struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"booking_id"`

	Amount         float64    `gorm:"not null" json:"amount"`
	Currency       string     `gorm:"type:varchar(3);default:'VND'" json:"currency"`
	Method         string     `gorm:"type:varchar(30);not null" json:"method"`
	Status         string     `gorm:"type:varchar(10);not null" json:"status"`
	TransactionRef string     `gorm:"type:varchar(64);unique" json:"transaction_ref"`
	PaidAt         *time.Time `json:"paid_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (BookingPassenger) TableName() string {
	return "booking_passengers"
}

func (Payment) TableName() string {
	return "payments"
}
