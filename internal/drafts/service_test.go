package drafts

import (
	"context"
	"sync"
	"testing"

	"flyviet/internal/flights"
	"flyviet/internal/pricing"
	"flyviet/internal/promotions"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu     sync.Mutex
	drafts map[string]*Draft
}

func newMemoryStore() *memoryStore {
	return &memoryStore{drafts: make(map[string]*Draft)}
}

func (s *memoryStore) Create(ctx context.Context, draft *Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drafts[draft.Token]; ok {
		return ErrDraftExists
	}
	draft.Version = 1
	copied := *draft
	s.drafts[draft.Token] = &copied
	return nil
}

func (s *memoryStore) Get(ctx context.Context, token string) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[token]
	if !ok {
		return nil, ErrDraftNotFound
	}
	copied := *draft
	return &copied, nil
}

func (s *memoryStore) Update(ctx context.Context, draft *Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.drafts[draft.Token]
	if !ok {
		return ErrDraftNotFound
	}
	if current.Version != draft.Version {
		return ErrVersionConflict
	}
	draft.Version++
	copied := *draft
	s.drafts[draft.Token] = &copied
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, token)
	return nil
}

// interleavingStore fires a hook between a writer's Get and its Update,
// simulating a second browser tab racing the same draft.
type interleavingStore struct {
	*memoryStore
	beforeUpdate func()
}

func (s *interleavingStore) Update(ctx context.Context, draft *Draft) error {
	if s.beforeUpdate != nil {
		fn := s.beforeUpdate
		s.beforeUpdate = nil
		fn()
	}
	return s.memoryStore.Update(ctx, draft)
}

type fakeFlights struct {
	byRef map[string]*flights.Flight
}

func (f *fakeFlights) ResolveFlight(ref string) (*flights.Flight, error) {
	flight, ok := f.byRef[ref]
	if !ok {
		return nil, flights.ErrFlightNotFound
	}
	return flight, nil
}

type fakePromos struct{}

func (fakePromos) Validate(ctx context.Context, code string, total float64) (*promotions.ValidateResponse, error) {
	if code != "SALE10" {
		return nil, promotions.ErrPromotionNotFound
	}
	discount := total * 0.10
	return &promotions.ValidateResponse{
		Code:            "SALE10",
		DiscountType:    pricing.DiscountPercent,
		DiscountValue:   10,
		DiscountAmount:  discount,
		DiscountedTotal: total - discount,
	}, nil
}

func newTestFlight(code, origin, destination, date string, economy float64) *flights.Flight {
	return &flights.Flight{
		ID:            uuid.New(),
		FlightCode:    code,
		Airline:       "Vietnam Airlines",
		AirlineCode:   "VN",
		Origin:        origin,
		Destination:   destination,
		DepartureDate: date,
		DepartureTime: "08:00",
		ArrivalTime:   "10:05",
		Status:        flights.FlightStatusScheduled,
		PriceEconomy:  economy,
		SeatsEconomy:  100,
	}
}

func newTestService(t *testing.T) (Service, *fakeFlights) {
	t.Helper()

	outbound := newTestFlight("VN100", "HAN", "SGN", "2026-09-15", 1000000)
	inbound := newTestFlight("VN101", "SGN", "HAN", "2026-09-20", 1000000)

	provider := &fakeFlights{byRef: map[string]*flights.Flight{
		outbound.ID.String(): outbound,
		inbound.ID.String():  inbound,
		"VN100":              outbound,
		"VN101":              inbound,
	}}

	svc := NewService(newMemoryStore(), provider, fakePromos{}, pricing.NewCalculator(pricing.MissingPriceError))
	return svc, provider
}

func startOneWay(t *testing.T, svc Service) string {
	t.Helper()
	draft, err := svc.StartDraft(context.Background(), StartDraftRequest{
		TripType:    "one_way",
		Origin:      "HAN",
		Destination: "SGN",
		DepartDate:  "2026-09-15",
		NumAdults:   2,
		NumChildren: 1,
	})
	require.NoError(t, err)
	return draft.Token
}

func startRoundTrip(t *testing.T, svc Service) string {
	t.Helper()
	draft, err := svc.StartDraft(context.Background(), StartDraftRequest{
		TripType:    "round_trip",
		Origin:      "HAN",
		Destination: "SGN",
		DepartDate:  "2026-09-15",
		ReturnDate:  "2026-09-20",
		NumAdults:   1,
	})
	require.NoError(t, err)
	return draft.Token
}

func TestStartDraftRequiresReturnDateForRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.StartDraft(context.Background(), StartDraftRequest{
		TripType:    "round_trip",
		Origin:      "HAN",
		Destination: "SGN",
		DepartDate:  "2026-09-15",
		NumAdults:   1,
	})
	assert.Error(t, err)
}

func TestStartDraftRejectsInfantsExceedingAdults(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.StartDraft(context.Background(), StartDraftRequest{
		TripType:    "one_way",
		Origin:      "HAN",
		Destination: "SGN",
		DepartDate:  "2026-09-15",
		NumAdults:   1,
		NumInfants:  2,
	})
	assert.Error(t, err)
}

func TestOneWaySelectionCompletesAndPrices(t *testing.T) {
	svc, _ := newTestService(t)
	token := startOneWay(t, svc)

	draft, err := svc.SelectFlight(context.Background(), token, SelectFlightRequest{FlightID: "VN100"})
	require.NoError(t, err)

	assert.Equal(t, StageComplete, draft.Stage)
	require.NotNil(t, draft.SelectedFlight)
	assert.Nil(t, draft.SelectedDepartureFlight)

	// 2 adults + 1 child at 1,000,000 economy: base 2,750,000, tax 275,000
	require.NotNil(t, draft.CalculatedTotalPrice)
	assert.Equal(t, float64(2750000), draft.CalculatedTotalPrice.BaseFare)
	assert.Equal(t, float64(275000), draft.CalculatedTotalPrice.Taxes)
	assert.Equal(t, float64(3025000), draft.TotalPriceForPayment)
}

func TestRoundTripFlowSwapsRouteAndMergesLegs(t *testing.T) {
	svc, _ := newTestService(t)
	token := startRoundTrip(t, svc)

	draft, err := svc.SelectFlight(context.Background(), token, SelectFlightRequest{ID: "VN100"})
	require.NoError(t, err)
	assert.Equal(t, StageSelectingReturn, draft.Stage)
	require.NotNil(t, draft.NextSearch)
	assert.Equal(t, "SGN", draft.NextSearch.Origin)
	assert.Equal(t, "HAN", draft.NextSearch.Destination)
	assert.Equal(t, "2026-09-20", draft.NextSearch.DepartDate)

	draft, err = svc.SelectFlight(context.Background(), token, SelectFlightRequest{ID: "VN101"})
	require.NoError(t, err)
	assert.Equal(t, StageComplete, draft.Stage)
	require.NotNil(t, draft.SelectedDepartureFlight)
	require.NotNil(t, draft.SelectedFlight)
	assert.Equal(t, "VN100", draft.SelectedDepartureFlight.FlightCode)
	assert.Equal(t, "VN101", draft.SelectedFlight.FlightCode)
	assert.Nil(t, draft.NextSearch)

	// Both legs priced: 1 adult × 1,000,000 × 2 legs, plus 10% tax
	assert.Equal(t, float64(2200000), draft.TotalPriceForPayment)
}

func TestReturnLegMustServeSwappedRoute(t *testing.T) {
	svc, _ := newTestService(t)
	token := startRoundTrip(t, svc)

	_, err := svc.SelectFlight(context.Background(), token, SelectFlightRequest{ID: "VN100"})
	require.NoError(t, err)

	// Selecting the outbound flight again for the return leg must fail
	_, err = svc.SelectFlight(context.Background(), token, SelectFlightRequest{ID: "VN100"})
	assert.Error(t, err)
}

func TestResetSelectionDiscardsEverything(t *testing.T) {
	svc, _ := newTestService(t)
	token := startOneWay(t, svc)

	_, err := svc.SelectFlight(context.Background(), token, SelectFlightRequest{ID: "VN100"})
	require.NoError(t, err)

	draft, err := svc.ResetSelection(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, StageSelectingDeparture, draft.Stage)
	assert.Nil(t, draft.SelectedFlight)
	assert.Nil(t, draft.CalculatedTotalPrice)
	assert.Zero(t, draft.TotalPriceForPayment)
	assert.Empty(t, draft.AppliedPromoCode)
}

func TestSetCustomerValidatesOrderAndAges(t *testing.T) {
	svc, _ := newTestService(t)
	token := startOneWay(t, svc)

	_, err := svc.SelectFlight(context.Background(), token, SelectFlightRequest{ID: "VN100"})
	require.NoError(t, err)

	req := SetCustomerRequest{
		FullName: "Nguyen Van A",
		Email:    "a@example.com",
		Phone:    "0912345678",
		Passengers: []PassengerInput{
			{FullName: "Nguyen Van A", Gender: "male", DOB: "1990-05-01"},
			{FullName: "Tran Thi B", Gender: "female", DOB: "1992-03-10"},
			{FullName: "Nguyen Van C", Gender: "male", DOB: "2019-01-15"},
		},
	}

	draft, err := svc.SetCustomer(context.Background(), token, req)
	require.NoError(t, err)

	require.Len(t, draft.Passengers, 3)
	assert.Equal(t, pricing.PassengerAdult, draft.Passengers[0].Type)
	assert.Equal(t, pricing.PassengerAdult, draft.Passengers[1].Type)
	assert.Equal(t, pricing.PassengerChild, draft.Passengers[2].Type)
}

func TestSetCustomerRejectsCountMismatch(t *testing.T) {
	svc, _ := newTestService(t)
	token := startOneWay(t, svc)

	_, err := svc.SelectFlight(context.Background(), token, SelectFlightRequest{ID: "VN100"})
	require.NoError(t, err)

	req := SetCustomerRequest{
		FullName: "Nguyen Van A",
		Email:    "a@example.com",
		Phone:    "0912345678",
		Passengers: []PassengerInput{
			{FullName: "Nguyen Van A", Gender: "male", DOB: "1990-05-01"},
		},
	}

	_, err = svc.SetCustomer(context.Background(), token, req)
	assert.ErrorIs(t, err, ErrPassengerMismatch)
}

func TestSetCustomerRejectsChildOutsideAgeWindow(t *testing.T) {
	svc, _ := newTestService(t)
	token := startOneWay(t, svc)

	_, err := svc.SelectFlight(context.Background(), token, SelectFlightRequest{ID: "VN100"})
	require.NoError(t, err)

	req := SetCustomerRequest{
		FullName: "Nguyen Van A",
		Email:    "a@example.com",
		Phone:    "0912345678",
		Passengers: []PassengerInput{
			{FullName: "Nguyen Van A", Gender: "male", DOB: "1990-05-01"},
			{FullName: "Tran Thi B", Gender: "female", DOB: "1992-03-10"},
			// 14 years old at departure, outside the child window
			{FullName: "Nguyen Van C", Gender: "male", DOB: "2012-01-15"},
		},
	}

	_, err = svc.SetCustomer(context.Background(), token, req)
	assert.Error(t, err)
}

func TestSetCustomerRejectsDeclaredTypeAgainstPosition(t *testing.T) {
	svc, _ := newTestService(t)
	token := startOneWay(t, svc)

	_, err := svc.SelectFlight(context.Background(), token, SelectFlightRequest{ID: "VN100"})
	require.NoError(t, err)

	req := SetCustomerRequest{
		FullName: "Nguyen Van A",
		Email:    "a@example.com",
		Phone:    "0912345678",
		Passengers: []PassengerInput{
			{Type: "child", FullName: "Nguyen Van A", Gender: "male", DOB: "1990-05-01"},
			{FullName: "Tran Thi B", Gender: "female", DOB: "1992-03-10"},
			{FullName: "Nguyen Van C", Gender: "male", DOB: "2019-01-15"},
		},
	}

	_, err = svc.SetCustomer(context.Background(), token, req)
	assert.ErrorIs(t, err, ErrPassengerMismatch)
}

func TestSetCustomerRejectsBadPhone(t *testing.T) {
	svc, _ := newTestService(t)
	token := startOneWay(t, svc)

	_, err := svc.SelectFlight(context.Background(), token, SelectFlightRequest{ID: "VN100"})
	require.NoError(t, err)

	req := SetCustomerRequest{
		FullName:   "Nguyen Van A",
		Email:      "a@example.com",
		Phone:      "12345",
		Passengers: []PassengerInput{{FullName: "A", Gender: "male", DOB: "1990-05-01"}},
	}

	_, err = svc.SetCustomer(context.Background(), token, req)
	assert.ErrorIs(t, err, ErrInvalidPhone)
}

func TestServicesRecomputeTotal(t *testing.T) {
	svc, _ := newTestService(t)
	token := startOneWay(t, svc)

	_, err := svc.SelectFlight(context.Background(), token, SelectFlightRequest{ID: "VN100"})
	require.NoError(t, err)

	draft, err := svc.SetServices(context.Background(), token, SetServicesRequest{
		Food:    true,
		Luggage: true,
	})
	require.NoError(t, err)

	// 3,025,000 + 150,000 food + 200,000 luggage
	assert.Equal(t, float64(3375000), draft.TotalPriceForPayment)
	assert.Equal(t, float64(350000), draft.CalculatedTotalPrice.ServicesCost)
}

func TestConcurrentUpdateRejectsStaleWriter(t *testing.T) {
	outbound := newTestFlight("VN100", "HAN", "SGN", "2026-09-15", 1000000)
	provider := &fakeFlights{byRef: map[string]*flights.Flight{
		outbound.ID.String(): outbound,
		"VN100":              outbound,
	}}

	store := &interleavingStore{memoryStore: newMemoryStore()}
	svc := NewService(store, provider, fakePromos{}, pricing.NewCalculator(pricing.MissingPriceError))
	token := startOneWay(t, svc)

	_, err := svc.SelectFlight(context.Background(), token, SelectFlightRequest{ID: "VN100"})
	require.NoError(t, err)

	// A competing writer lands between this call's read and its write; the
	// stale writer must lose
	store.beforeUpdate = func() {
		_, err := svc.ApplyPromo(context.Background(), token, ApplyPromoRequest{Code: "SALE10"})
		require.NoError(t, err)
	}

	_, err = svc.SetServices(context.Background(), token, SetServicesRequest{Food: true})
	assert.ErrorIs(t, err, ErrVersionConflict)

	// The winner's write survives intact
	raw, err := svc.GetRaw(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "SALE10", raw.PromoCode)
	assert.False(t, raw.Services.Food)
}

func TestApplyPromoDiscountsTotal(t *testing.T) {
	svc, _ := newTestService(t)
	token := startOneWay(t, svc)

	_, err := svc.SelectFlight(context.Background(), token, SelectFlightRequest{ID: "VN100"})
	require.NoError(t, err)

	draft, err := svc.ApplyPromo(context.Background(), token, ApplyPromoRequest{Code: "SALE10"})
	require.NoError(t, err)

	assert.Equal(t, "SALE10", draft.AppliedPromoCode)
	assert.Equal(t, float64(2722500), draft.TotalPriceForPayment) // 3,025,000 − 10%
}

func TestApplyInvalidPromoLeavesTotalUntouched(t *testing.T) {
	svc, _ := newTestService(t)
	token := startOneWay(t, svc)

	_, err := svc.SelectFlight(context.Background(), token, SelectFlightRequest{ID: "VN100"})
	require.NoError(t, err)

	_, err = svc.ApplyPromo(context.Background(), token, ApplyPromoRequest{Code: "BOGUS"})
	assert.ErrorIs(t, err, promotions.ErrPromotionNotFound)

	draft, err := svc.GetDraft(context.Background(), token)
	require.NoError(t, err)
	assert.Empty(t, draft.AppliedPromoCode)
	assert.Equal(t, float64(3025000), draft.TotalPriceForPayment)
}

func TestPromoReappliedAfterServicesChange(t *testing.T) {
	svc, _ := newTestService(t)
	token := startOneWay(t, svc)

	_, err := svc.SelectFlight(context.Background(), token, SelectFlightRequest{ID: "VN100"})
	require.NoError(t, err)

	_, err = svc.ApplyPromo(context.Background(), token, ApplyPromoRequest{Code: "SALE10"})
	require.NoError(t, err)

	draft, err := svc.SetServices(context.Background(), token, SetServicesRequest{Insurance: true})
	require.NoError(t, err)

	// (3,025,000 + 100,000) × 0.9
	assert.Equal(t, "SALE10", draft.AppliedPromoCode)
	assert.Equal(t, float64(2812500), draft.TotalPriceForPayment)
}

func TestClearDraftRemovesIt(t *testing.T) {
	svc, _ := newTestService(t)
	token := startOneWay(t, svc)

	require.NoError(t, svc.ClearDraft(context.Background(), token))

	_, err := svc.GetDraft(context.Background(), token)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}
