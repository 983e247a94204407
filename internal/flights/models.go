package flights

import (
	"math"
	"time"

	"flyviet/internal/pricing"

	"github.com/google/uuid"
)

type Flight struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	FlightCode  string    `json:"flight_code" gorm:"not null;uniqueIndex;size:10"`
	AirlineCode string    `json:"airline_code" gorm:"not null;size:5"`
	Airline     string    `json:"airline" gorm:"not null;size:100"`
	Origin      string    `json:"origin" gorm:"not null;size:5"`
	Destination string    `json:"destination" gorm:"not null;size:5"`

	// Departure date is stored separately from the clock times so route/date
	// queries stay index-friendly. Times are local "HH:MM" strings.
	DepartureDate string `json:"departure_date" gorm:"not null;size:10"`
	DepartureTime string `json:"departure_time" gorm:"not null;size:5"`
	ArrivalTime   string `json:"arrival_time" gorm:"not null;size:5"`
	Duration      string `json:"duration" gorm:"size:10"`

	Status FlightStatus `json:"status" gorm:"type:varchar(20);default:'scheduled'"`

	// Per-class pricing in whole VND. Zero means no price data for the class;
	// the fare calculator derives it from economy via the class multiplier.
	PriceEconomy        float64 `json:"price_economy" gorm:"not null;check:price_economy >= 0"`
	PricePremiumEconomy float64 `json:"price_premium_economy" gorm:"default:0"`
	PriceBusiness       float64 `json:"price_business" gorm:"default:0"`
	PriceFirst          float64 `json:"price_first" gorm:"default:0"`

	// Remaining seat inventory per class
	SeatsEconomy        int `json:"seats_economy" gorm:"default:0;check:seats_economy >= 0"`
	SeatsPremiumEconomy int `json:"seats_premium_economy" gorm:"default:0;check:seats_premium_economy >= 0"`
	SeatsBusiness       int `json:"seats_business" gorm:"default:0;check:seats_business >= 0"`
	SeatsFirst          int `json:"seats_first" gorm:"default:0;check:seats_first >= 0"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Flight) TableName() string {
	return "flights"
}

// PriceTable returns the per-class price map the fare calculator consumes.
// Classes without price data are omitted so the calculator can apply its
// missing-price policy.
func (f *Flight) PriceTable() map[pricing.SeatClass]float64 {
	table := make(map[pricing.SeatClass]float64, 4)
	if f.PriceEconomy > 0 {
		table[pricing.SeatClassEconomy] = f.PriceEconomy
	}
	if f.PricePremiumEconomy > 0 {
		table[pricing.SeatClassPremiumEconomy] = f.PricePremiumEconomy
	}
	if f.PriceBusiness > 0 {
		table[pricing.SeatClassBusiness] = f.PriceBusiness
	}
	if f.PriceFirst > 0 {
		table[pricing.SeatClassFirst] = f.PriceFirst
	}
	return table
}

// SeatsFor returns remaining inventory for a seat class
func (f *Flight) SeatsFor(class pricing.SeatClass) int {
	switch class {
	case pricing.SeatClassEconomy:
		return f.SeatsEconomy
	case pricing.SeatClassPremiumEconomy:
		return f.SeatsPremiumEconomy
	case pricing.SeatClassBusiness:
		return f.SeatsBusiness
	case pricing.SeatClassFirst:
		return f.SeatsFirst
	}
	return 0
}

// FlightResponse is the public flight shape. The legacy web client read both
// "id"/"flight_id" and "price"/"price_economy", so responses carry both names.
type FlightResponse struct {
	ID          string `json:"id"`
	FlightID    string `json:"flight_id"`
	FlightCode  string `json:"flight_code"`
	AirlineCode string `json:"airline_code"`
	Airline     string `json:"airline"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`

	DepartureDate string `json:"departure_date"`
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
	Duration      string `json:"duration"`

	Status FlightStatus `json:"status"`

	// Price is the fare for the seat class the search was made with
	Price          float64 `json:"price"`
	PriceEconomy   float64 `json:"price_economy"`
	AvailableSeats int     `json:"available_seats"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SearchQuery holds the route parameters of a flight search
type SearchQuery struct {
	Origin      string `form:"departure" binding:"required,len=3"`
	Destination string `form:"destination" binding:"required,len=3"`
	DepartDate  string `form:"departDate" binding:"required"`
	SeatClass   string `form:"seatClass"`

	// Optional filters, all conjunctive
	MaxPrice  float64 `form:"maxPrice" binding:"omitempty,min=0"`
	Airlines  string  `form:"airlines"`  // comma-separated airline codes
	TimeSlots string  `form:"timeSlots"` // comma-separated buckets: 00-06,06-12,12-18,18-24

	SortBy    string `form:"sortBy" binding:"omitempty,oneof=price time"`
	SortOrder string `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
}

// SearchResult distinguishes a route with no service from one filtered to
// empty; controllers map the two to different user-facing messages.
type SearchResult struct {
	Flights    []FlightResponse `json:"flights"`
	TotalCount int              `json:"total_count"`
	Filtered   int              `json:"filtered_out"`
}

type CreateFlightRequest struct {
	FlightCode  string `json:"flight_code" binding:"required,min=3,max=10"`
	AirlineCode string `json:"airline_code" binding:"required,min=2,max=5"`
	Airline     string `json:"airline" binding:"required,min=2,max=100"`
	Origin      string `json:"origin" binding:"required,len=3"`
	Destination string `json:"destination" binding:"required,len=3"`

	DepartureDate string `json:"departure_date" binding:"required"`
	DepartureTime string `json:"departure_time" binding:"required"`
	ArrivalTime   string `json:"arrival_time" binding:"required"`
	Duration      string `json:"duration"`

	PriceEconomy        float64 `json:"price_economy" binding:"required,min=0"`
	PricePremiumEconomy float64 `json:"price_premium_economy" binding:"omitempty,min=0"`
	PriceBusiness       float64 `json:"price_business" binding:"omitempty,min=0"`
	PriceFirst          float64 `json:"price_first" binding:"omitempty,min=0"`

	SeatsEconomy        int `json:"seats_economy" binding:"required,min=0"`
	SeatsPremiumEconomy int `json:"seats_premium_economy" binding:"omitempty,min=0"`
	SeatsBusiness       int `json:"seats_business" binding:"omitempty,min=0"`
	SeatsFirst          int `json:"seats_first" binding:"omitempty,min=0"`
}

type UpdateFlightRequest struct {
	Airline       *string  `json:"airline" binding:"omitempty,min=2,max=100"`
	DepartureDate *string  `json:"departure_date"`
	DepartureTime *string  `json:"departure_time"`
	ArrivalTime   *string  `json:"arrival_time"`
	Duration      *string  `json:"duration"`
	Status        *string  `json:"status" binding:"omitempty,oneof=scheduled delayed cancelled completed"`
	PriceEconomy  *float64 `json:"price_economy" binding:"omitempty,min=0"`

	PricePremiumEconomy *float64 `json:"price_premium_economy" binding:"omitempty,min=0"`
	PriceBusiness       *float64 `json:"price_business" binding:"omitempty,min=0"`
	PriceFirst          *float64 `json:"price_first" binding:"omitempty,min=0"`

	SeatsEconomy        *int `json:"seats_economy" binding:"omitempty,min=0"`
	SeatsPremiumEconomy *int `json:"seats_premium_economy" binding:"omitempty,min=0"`
	SeatsBusiness       *int `json:"seats_business" binding:"omitempty,min=0"`
	SeatsFirst          *int `json:"seats_first" binding:"omitempty,min=0"`
}

type FlightListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search string `form:"search"`
	Status string `form:"status" binding:"omitempty,oneof=scheduled delayed cancelled completed"`
	Origin string `form:"origin"`
	Date   string `form:"date"`
}

type PaginatedFlights struct {
	Flights    []FlightResponse `json:"flights"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

// ToResponse converts a Flight to its public shape for the given seat class
func (f *Flight) ToResponse(class pricing.SeatClass) FlightResponse {
	price := f.PriceEconomy
	if explicit, ok := f.PriceTable()[class]; ok {
		price = explicit
	} else if class.IsValid() && class != pricing.SeatClassEconomy {
		price = math.Round(f.PriceEconomy * class.Multiplier())
	}

	return FlightResponse{
		ID:             f.ID.String(),
		FlightID:       f.ID.String(),
		FlightCode:     f.FlightCode,
		AirlineCode:    f.AirlineCode,
		Airline:        f.Airline,
		Origin:         f.Origin,
		Destination:    f.Destination,
		DepartureDate:  f.DepartureDate,
		DepartureTime:  f.DepartureTime,
		ArrivalTime:    f.ArrivalTime,
		Duration:       f.Duration,
		Status:         f.Status,
		Price:          price,
		PriceEconomy:   f.PriceEconomy,
		AvailableSeats: f.SeatsFor(class),
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
	}
}
