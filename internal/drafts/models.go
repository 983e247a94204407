package drafts

import (
	"time"

	"flyviet/internal/pricing"
)

// Stage of the selection flow a draft is in
type Stage string

const (
	StageSelectingDeparture Stage = "selecting_departure"
	StageSelectingReturn    Stage = "selecting_return"
	StageComplete           Stage = "complete"
)

type TripType string

const (
	TripOneWay    TripType = "one_way"
	TripRoundTrip TripType = "round_trip"
)

// SearchParams are the route parameters a leg was searched with
type SearchParams struct {
	Origin      string                  `json:"origin"`
	Destination string                  `json:"destination"`
	DepartDate  string                  `json:"depart_date"`
	ReturnDate  string                  `json:"return_date,omitempty"`
	SeatClass   pricing.SeatClass       `json:"seat_class"`
	Counts      pricing.PassengerCounts `json:"counts"`
}

// Swapped returns the leg-2 search: origin and destination exchanged,
// departing on the return date.
func (p SearchParams) Swapped() SearchParams {
	return SearchParams{
		Origin:      p.Destination,
		Destination: p.Origin,
		DepartDate:  p.ReturnDate,
		SeatClass:   p.SeatClass,
		Counts:      p.Counts,
	}
}

// FlightSelection is the snapshot of a chosen flight a draft carries.
// Prices are copied in at selection time so later fare edits do not move
// an in-progress booking's total.
type FlightSelection struct {
	FlightID      string                        `json:"flight_id"`
	FlightCode    string                        `json:"flight_code"`
	Airline       string                        `json:"airline"`
	Origin        string                        `json:"origin"`
	Destination   string                        `json:"destination"`
	DepartureDate string                        `json:"departure_date"`
	DepartureTime string                        `json:"departure_time"`
	ArrivalTime   string                        `json:"arrival_time"`
	Prices        map[pricing.SeatClass]float64 `json:"prices"`
}

// Contact holds the customer the booking belongs to
type Contact struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// Passenger is one traveler on the draft, always carrying an explicit type
type Passenger struct {
	Type     pricing.PassengerType `json:"type"`
	FullName string                `json:"full_name"`
	Gender   string                `json:"gender"`
	DOB      string                `json:"dob"` // YYYY-MM-DD
	IDNumber string                `json:"id_number,omitempty"`
}

// Draft is the authoritative in-progress booking, held server-side in Redis
// and keyed by an opaque token. Version supports optimistic concurrency:
// every write checks and bumps it, so two tabs racing on the same draft
// cannot silently clobber each other.
type Draft struct {
	Token   string `json:"token"`
	Version int64  `json:"version"`

	Stage    Stage    `json:"stage"`
	TripType TripType `json:"trip_type"`

	Search   SearchParams     `json:"search"`
	Outbound *FlightSelection `json:"outbound,omitempty"`
	Return   *FlightSelection `json:"return,omitempty"`

	Contact    *Contact    `json:"contact,omitempty"`
	Passengers []Passenger `json:"passengers,omitempty"`

	Services  pricing.Services `json:"services"`
	PromoCode string           `json:"promo_code,omitempty"`

	Quote           *pricing.Quote `json:"quote,omitempty"`
	TotalForPayment float64        `json:"total_for_payment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DraftResponse mirrors the legacy session-storage key names so existing
// clients can read the draft the way they read their local state.
type DraftResponse struct {
	Token    string   `json:"token"`
	Version  int64    `json:"version"`
	Stage    Stage    `json:"stage"`
	TripType TripType `json:"trip_type"`

	Search     SearchParams  `json:"search"`
	NextSearch *SearchParams `json:"next_search,omitempty"`

	SelectedDepartureFlight *FlightSelection `json:"selectedDepartureFlight,omitempty"`
	SelectedFlight          *FlightSelection `json:"selectedFlight,omitempty"`

	CustomerInfo     *Contact         `json:"customerInfo,omitempty"`
	Passengers       []Passenger      `json:"passengers,omitempty"`
	SelectedServices pricing.Services `json:"selectedServices"`

	AppliedPromoCode     string         `json:"appliedPromoCode,omitempty"`
	CalculatedTotalPrice *pricing.Quote `json:"calculatedTotalPrice,omitempty"`
	TotalPriceForPayment float64        `json:"totalPriceForPayment"`
}

// ToResponse maps the draft onto the legacy client shape. One-way drafts
// expose their single leg as selectedFlight; round trips expose the
// outbound as selectedDepartureFlight and the return as selectedFlight.
func (d *Draft) ToResponse() DraftResponse {
	resp := DraftResponse{
		Token:                d.Token,
		Version:              d.Version,
		Stage:                d.Stage,
		TripType:             d.TripType,
		Search:               d.Search,
		CustomerInfo:         d.Contact,
		Passengers:           d.Passengers,
		SelectedServices:     d.Services,
		AppliedPromoCode:     d.PromoCode,
		CalculatedTotalPrice: d.Quote,
		TotalPriceForPayment: d.TotalForPayment,
	}

	if d.TripType == TripRoundTrip {
		resp.SelectedDepartureFlight = d.Outbound
		resp.SelectedFlight = d.Return
		if d.Stage == StageSelectingReturn {
			next := d.Search.Swapped()
			resp.NextSearch = &next
		}
	} else {
		resp.SelectedFlight = d.Outbound
	}

	return resp
}

type StartDraftRequest struct {
	TripType    string `json:"trip_type" binding:"required,oneof=one_way round_trip"`
	Origin      string `json:"origin" binding:"required,len=3"`
	Destination string `json:"destination" binding:"required,len=3"`
	DepartDate  string `json:"depart_date" binding:"required"`
	ReturnDate  string `json:"return_date"`
	SeatClass   string `json:"seat_class" binding:"omitempty"`

	NumAdults   int `json:"numAdults" binding:"required,min=1,max=9"`
	NumChildren int `json:"numChildren" binding:"omitempty,min=0,max=9"`
	NumInfants  int `json:"numInfants" binding:"omitempty,min=0,max=9"`
}

// SelectFlightRequest accepts either identifier name; the legacy client
// sent whichever it had.
type SelectFlightRequest struct {
	ID       string `json:"id"`
	FlightID string `json:"flight_id"`
}

// FlightRef returns whichever identifier was provided
func (r SelectFlightRequest) FlightRef() string {
	if r.FlightID != "" {
		return r.FlightID
	}
	return r.ID
}

type PassengerInput struct {
	// Type is optional; when absent it is inferred from list position as a
	// compatibility shim for older clients.
	Type     string `json:"type"`
	FullName string `json:"full_name" binding:"required,min=2,max=100"`
	Gender   string `json:"gender" binding:"required,oneof=male female other"`
	DOB      string `json:"dob" binding:"required"`
	IDNumber string `json:"id_number"`
}

type SetCustomerRequest struct {
	FullName string `json:"full_name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`

	Passengers []PassengerInput `json:"passengers" binding:"required,min=1,dive"`
}

type SetServicesRequest struct {
	Food      bool `json:"food"`
	Luggage   bool `json:"luggage"`
	Insurance bool `json:"insurance"`
}

type ApplyPromoRequest struct {
	Code string `json:"code" binding:"required,min=2,max=30"`
}
