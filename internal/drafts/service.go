package drafts

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"flyviet/internal/flights"
	"flyviet/internal/pricing"
	"flyviet/internal/promotions"

	"github.com/google/uuid"
)

// FlightProvider is the slice of the flight service the draft flow needs
type FlightProvider interface {
	ResolveFlight(ref string) (*flights.Flight, error)
}

// PromotionValidator checks promo codes against a total
type PromotionValidator interface {
	Validate(ctx context.Context, code string, total float64) (*promotions.ValidateResponse, error)
}

type Service interface {
	StartDraft(ctx context.Context, req StartDraftRequest) (*DraftResponse, error)
	GetDraft(ctx context.Context, token string) (*DraftResponse, error)
	SelectFlight(ctx context.Context, token string, req SelectFlightRequest) (*DraftResponse, error)
	ResetSelection(ctx context.Context, token string) (*DraftResponse, error)
	SetCustomer(ctx context.Context, token string, req SetCustomerRequest) (*DraftResponse, error)
	SetServices(ctx context.Context, token string, req SetServicesRequest) (*DraftResponse, error)
	ApplyPromo(ctx context.Context, token string, req ApplyPromoRequest) (*DraftResponse, error)
	ClearDraft(ctx context.Context, token string) error

	// GetRaw exposes the full draft for booking submission
	GetRaw(ctx context.Context, token string) (*Draft, error)
}

type service struct {
	store      Store
	flights    FlightProvider
	promotions PromotionValidator
	calculator *pricing.Calculator
}

func NewService(store Store, flightProvider FlightProvider, promoValidator PromotionValidator, calculator *pricing.Calculator) Service {
	return &service{
		store:      store,
		flights:    flightProvider,
		promotions: promoValidator,
		calculator: calculator,
	}
}

var vnPhonePattern = regexp.MustCompile(`^(0|\+84)\d{9,10}$`)

func (s *service) StartDraft(ctx context.Context, req StartDraftRequest) (*DraftResponse, error) {
	counts := pricing.PassengerCounts{
		Adults:   req.NumAdults,
		Children: req.NumChildren,
		Infants:  req.NumInfants,
	}
	if err := counts.Validate(); err != nil {
		return nil, err
	}

	class := pricing.SeatClassEconomy
	if req.SeatClass != "" {
		class = pricing.SeatClass(strings.ToUpper(req.SeatClass))
		if !class.IsValid() {
			return nil, fmt.Errorf("invalid seat class: %s", req.SeatClass)
		}
	}

	tripType := TripType(req.TripType)
	if tripType == TripRoundTrip && req.ReturnDate == "" {
		return nil, fmt.Errorf("return_date is required for round trips")
	}

	now := time.Now()
	draft := &Draft{
		Token:    uuid.NewString(),
		Stage:    StageSelectingDeparture,
		TripType: tripType,
		Search: SearchParams{
			Origin:      strings.ToUpper(req.Origin),
			Destination: strings.ToUpper(req.Destination),
			DepartDate:  req.DepartDate,
			ReturnDate:  req.ReturnDate,
			SeatClass:   class,
			Counts:      counts,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Create(ctx, draft); err != nil {
		return nil, err
	}

	resp := draft.ToResponse()
	return &resp, nil
}

func (s *service) GetDraft(ctx context.Context, token string) (*DraftResponse, error) {
	draft, err := s.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	resp := draft.ToResponse()
	return &resp, nil
}

func (s *service) GetRaw(ctx context.Context, token string) (*Draft, error) {
	return s.store.Get(ctx, token)
}

func (s *service) SelectFlight(ctx context.Context, token string, req SelectFlightRequest) (*DraftResponse, error) {
	ref := req.FlightRef()
	if ref == "" {
		return nil, fmt.Errorf("flight id is required")
	}

	draft, err := s.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	flight, err := s.flights.ResolveFlight(ref)
	if err != nil {
		return nil, err
	}
	if flight.Status != flights.FlightStatusScheduled {
		return nil, fmt.Errorf("flight %s is not open for booking", flight.FlightCode)
	}

	selection := selectionFromFlight(flight)

	switch draft.Stage {
	case StageSelectingDeparture:
		if err := matchRoute(selection, draft.Search); err != nil {
			return nil, err
		}
		draft.Outbound = &selection
		if draft.TripType == TripRoundTrip {
			draft.Stage = StageSelectingReturn
		} else {
			draft.Stage = StageComplete
		}

	case StageSelectingReturn:
		if err := matchRoute(selection, draft.Search.Swapped()); err != nil {
			return nil, err
		}
		draft.Return = &selection
		draft.Stage = StageComplete

	default:
		return nil, fmt.Errorf("%w: selection already complete", ErrWrongStage)
	}

	if draft.Stage == StageComplete {
		if err := s.recompute(ctx, draft); err != nil {
			return nil, err
		}
	}

	if err := s.store.Update(ctx, draft); err != nil {
		return nil, err
	}

	resp := draft.ToResponse()
	return &resp, nil
}

// ResetSelection implements "modify search": both legs and everything
// derived from them are discarded and the flow starts over.
func (s *service) ResetSelection(ctx context.Context, token string) (*DraftResponse, error) {
	draft, err := s.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	draft.Stage = StageSelectingDeparture
	draft.Outbound = nil
	draft.Return = nil
	draft.Passengers = nil
	draft.Services = pricing.Services{}
	draft.PromoCode = ""
	draft.Quote = nil
	draft.TotalForPayment = 0

	if err := s.store.Update(ctx, draft); err != nil {
		return nil, err
	}

	resp := draft.ToResponse()
	return &resp, nil
}

func (s *service) SetCustomer(ctx context.Context, token string, req SetCustomerRequest) (*DraftResponse, error) {
	draft, err := s.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if draft.Stage != StageComplete {
		return nil, fmt.Errorf("%w: flight selection is not complete", ErrWrongStage)
	}

	if !vnPhonePattern.MatchString(strings.TrimSpace(req.Phone)) {
		return nil, ErrInvalidPhone
	}

	passengers, err := buildPassengers(req.Passengers, draft.Search.Counts, draft.Outbound.DepartureDate)
	if err != nil {
		return nil, err
	}

	draft.Contact = &Contact{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    strings.TrimSpace(req.Phone),
	}
	draft.Passengers = passengers

	if err := s.recompute(ctx, draft); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, draft); err != nil {
		return nil, err
	}

	resp := draft.ToResponse()
	return &resp, nil
}

func (s *service) SetServices(ctx context.Context, token string, req SetServicesRequest) (*DraftResponse, error) {
	draft, err := s.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if draft.Stage != StageComplete {
		return nil, fmt.Errorf("%w: flight selection is not complete", ErrWrongStage)
	}

	draft.Services = pricing.Services{
		Food:      req.Food,
		Luggage:   req.Luggage,
		Insurance: req.Insurance,
	}

	if err := s.recompute(ctx, draft); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, draft); err != nil {
		return nil, err
	}

	resp := draft.ToResponse()
	return &resp, nil
}

// ApplyPromo validates a code against the current pre-discount total. A
// rejected code leaves the stored total untouched.
func (s *service) ApplyPromo(ctx context.Context, token string, req ApplyPromoRequest) (*DraftResponse, error) {
	draft, err := s.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if draft.Stage != StageComplete || draft.Quote == nil {
		return nil, fmt.Errorf("%w: no total to discount yet", ErrWrongStage)
	}

	result, err := s.promotions.Validate(ctx, req.Code, draft.Quote.Total)
	if err != nil {
		return nil, err
	}

	draft.PromoCode = result.Code
	draft.TotalForPayment = result.DiscountedTotal

	if err := s.store.Update(ctx, draft); err != nil {
		return nil, err
	}

	resp := draft.ToResponse()
	return &resp, nil
}

func (s *service) ClearDraft(ctx context.Context, token string) error {
	return s.store.Delete(ctx, token)
}

// recompute rebuilds the quote from the selected legs, services, and promo
// code. Runs on every mutation after selection completes so the stored
// total can never drift from its inputs.
func (s *service) recompute(ctx context.Context, draft *Draft) error {
	if draft.Outbound == nil {
		return fmt.Errorf("%w: no outbound flight selected", ErrWrongStage)
	}

	input := pricing.QuoteInput{
		Outbound: pricing.LegInput{
			Prices:    draft.Outbound.Prices,
			SeatClass: draft.Search.SeatClass,
		},
		Counts:   draft.Search.Counts,
		Services: draft.Services,
	}
	if draft.Return != nil {
		input.Return = &pricing.LegInput{
			Prices:    draft.Return.Prices,
			SeatClass: draft.Search.SeatClass,
		}
	}

	quote, err := s.calculator.Quote(input)
	if err != nil {
		return err
	}

	draft.Quote = quote
	draft.TotalForPayment = quote.Total

	// Reapply the promo against the new total; a code that no longer
	// validates is dropped rather than silently kept stale
	if draft.PromoCode != "" {
		result, err := s.promotions.Validate(ctx, draft.PromoCode, quote.Total)
		if err != nil {
			draft.PromoCode = ""
		} else {
			draft.TotalForPayment = result.DiscountedTotal
		}
	}

	return nil
}

func selectionFromFlight(flight *flights.Flight) FlightSelection {
	return FlightSelection{
		FlightID:      flight.ID.String(),
		FlightCode:    flight.FlightCode,
		Airline:       flight.Airline,
		Origin:        flight.Origin,
		Destination:   flight.Destination,
		DepartureDate: flight.DepartureDate,
		DepartureTime: flight.DepartureTime,
		ArrivalTime:   flight.ArrivalTime,
		Prices:        flight.PriceTable(),
	}
}

func matchRoute(selection FlightSelection, search SearchParams) error {
	if selection.Origin != search.Origin || selection.Destination != search.Destination {
		return fmt.Errorf("flight %s does not serve route %s-%s",
			selection.FlightCode, search.Origin, search.Destination)
	}
	return nil
}

// buildPassengers validates the submitted list against the draft's counts.
// Order is adults first, then children, then infants; an explicit type must
// agree with its position, a missing type is inferred from it.
func buildPassengers(inputs []PassengerInput, counts pricing.PassengerCounts, departureDate string) ([]Passenger, error) {
	if len(inputs) != counts.Total() {
		return nil, fmt.Errorf("%w: expected %d passengers, got %d",
			ErrPassengerMismatch, counts.Total(), len(inputs))
	}

	departure, err := time.Parse("2006-01-02", departureDate)
	if err != nil {
		// Age is checked against today when the departure date is unparseable
		departure = time.Now()
	}

	expected := make([]pricing.PassengerType, 0, counts.Total())
	for i := 0; i < counts.Adults; i++ {
		expected = append(expected, pricing.PassengerAdult)
	}
	for i := 0; i < counts.Children; i++ {
		expected = append(expected, pricing.PassengerChild)
	}
	for i := 0; i < counts.Infants; i++ {
		expected = append(expected, pricing.PassengerInfant)
	}

	passengers := make([]Passenger, len(inputs))
	for i, input := range inputs {
		ptype := expected[i]
		if input.Type != "" {
			declared := pricing.NormalizePassengerType(input.Type)
			if declared != ptype {
				return nil, fmt.Errorf("%w: passenger %d declared %s but position expects %s",
					ErrPassengerMismatch, i+1, declared, ptype)
			}
		}

		dob, err := time.Parse("2006-01-02", input.DOB)
		if err != nil {
			return nil, fmt.Errorf("invalid date of birth for passenger %d: %s", i+1, input.DOB)
		}
		if err := pricing.ValidateAge(ptype, dob, departure); err != nil {
			return nil, fmt.Errorf("passenger %d: %w", i+1, err)
		}

		passengers[i] = Passenger{
			Type:     ptype,
			FullName: input.FullName,
			Gender:   input.Gender,
			DOB:      input.DOB,
			IDNumber: input.IDNumber,
		}
	}

	return passengers, nil
}
