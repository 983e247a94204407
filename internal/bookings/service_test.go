package bookings

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"flyviet/internal/drafts"
	"flyviet/internal/flights"
	"flyviet/internal/payments"
	"flyviet/internal/pricing"
	"flyviet/pkg/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*Booking
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: make(map[uuid.UUID]*Booking)}
}

func (r *fakeRepo) Create(ctx context.Context, booking *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking.ID = uuid.New()
	booking.CreatedAt = time.Now()
	for i := range booking.Passengers {
		booking.Passengers[i].BookingID = booking.ID
	}
	if booking.Payment != nil {
		booking.Payment.BookingID = booking.ID
	}
	r.bookings[booking.ID] = booking
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

func (r *fakeRepo) GetByNumber(ctx context.Context, number string) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.BookingNumber == number {
			return b, nil
		}
	}
	return nil, ErrBookingNotFound
}

func (r *fakeRepo) GetAll(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Booking
	for _, b := range r.bookings {
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (r *fakeRepo) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string, paidAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok || booking.Payment == nil {
		return ErrBookingNotFound
	}
	booking.Payment.Status = status
	booking.Payment.PaidAt = paidAt
	return nil
}

func (r *fakeRepo) Cancel(ctx context.Context, id uuid.UUID, cancelledAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return ErrBookingNotFound
	}
	if booking.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}
	booking.Status = StatusCancelled
	booking.CancelledAt = &cancelledAt
	return nil
}

type fakeDraftSource struct {
	draft   *drafts.Draft
	cleared bool
}

func (s *fakeDraftSource) GetRaw(ctx context.Context, token string) (*drafts.Draft, error) {
	if s.draft == nil || s.draft.Token != token {
		return nil, drafts.ErrDraftNotFound
	}
	return s.draft, nil
}

func (s *fakeDraftSource) ClearDraft(ctx context.Context, token string) error {
	s.cleared = true
	return nil
}

type reservation struct {
	flightID uuid.UUID
	count    int
}

type fakeInventory struct {
	reserved []reservation
	released []reservation
	failNext error
}

func (f *fakeInventory) ReserveSeats(flightID uuid.UUID, class pricing.SeatClass, count int) error {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}
	f.reserved = append(f.reserved, reservation{flightID, count})
	return nil
}

func (f *fakeInventory) ReleaseSeats(flightID uuid.UUID, class pricing.SeatClass, count int) error {
	f.released = append(f.released, reservation{flightID, count})
	return nil
}

type fakePromos struct {
	consumed []string
}

func (f *fakePromos) ConsumeCode(ctx context.Context, code string) error {
	f.consumed = append(f.consumed, code)
	return nil
}

type fakePublisher struct {
	events []BookingEvent
}

func (f *fakePublisher) PublishBookingEvent(ctx context.Context, event BookingEvent) error {
	f.events = append(f.events, event)
	return nil
}

// fakeCache is a map-backed stand-in for the Redis cache service.
type fakeCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: make(map[string][]byte)}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.items[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.items[key] = data
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, key)
	return nil
}

func (f *fakeCache) DeletePattern(ctx context.Context, pattern string) error { return nil }

func (f *fakeCache) Exists(ctx context.Context, key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.items[key]
	return ok
}

func (f *fakeCache) SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[key]; ok {
		return false, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	f.items[key] = data
	return true, nil
}

func (f *fakeCache) MGet(ctx context.Context, keys []string, dest interface{}) error { return nil }
func (f *fakeCache) MSet(ctx context.Context, items map[string]interface{}, ttl time.Duration) error {
	return nil
}
func (f *fakeCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	return nil
}
func (f *fakeCache) Ping(ctx context.Context) error { return nil }

func completedDraft() *drafts.Draft {
	outboundID := uuid.NewString()
	return &drafts.Draft{
		Token:    uuid.NewString(),
		Version:  3,
		Stage:    drafts.StageComplete,
		TripType: drafts.TripOneWay,
		Search: drafts.SearchParams{
			Origin:      "HAN",
			Destination: "SGN",
			DepartDate:  "2026-09-15",
			SeatClass:   pricing.SeatClassEconomy,
			Counts:      pricing.PassengerCounts{Adults: 2, Children: 1},
		},
		Outbound: &drafts.FlightSelection{
			FlightID:      outboundID,
			FlightCode:    "VN100",
			Airline:       "Vietnam Airlines",
			Origin:        "HAN",
			Destination:   "SGN",
			DepartureDate: "2026-09-15",
			Prices:        map[pricing.SeatClass]float64{pricing.SeatClassEconomy: 1000000},
		},
		Contact: &drafts.Contact{
			FullName: "Nguyen Van A",
			Email:    "a@example.com",
			Phone:    "0912345678",
		},
		Passengers: []drafts.Passenger{
			{Type: pricing.PassengerAdult, FullName: "Nguyen Van A", Gender: "male", DOB: "1990-05-01"},
			{Type: pricing.PassengerAdult, FullName: "Tran Thi B", Gender: "female", DOB: "1992-03-10"},
			{Type: pricing.PassengerChild, FullName: "Nguyen Van C", Gender: "male", DOB: "2019-01-15"},
		},
		Quote: &pricing.Quote{
			BaseFare: 2750000,
			Taxes:    275000,
			Total:    3025000,
		},
		TotalForPayment: 3025000,
	}
}

type testEnv struct {
	svc       Service
	repo      *fakeRepo
	source    *fakeDraftSource
	inventory *fakeInventory
	promos    *fakePromos
	publisher *fakePublisher
	cache     *fakeCache
}

func newTestEnv(draft *drafts.Draft) *testEnv {
	env := &testEnv{
		repo:      newFakeRepo(),
		source:    &fakeDraftSource{draft: draft},
		inventory: &fakeInventory{},
		promos:    &fakePromos{},
		publisher: &fakePublisher{},
		cache:     newFakeCache(),
	}
	env.svc = NewService(env.repo, env.source, env.inventory, env.promos, payments.NewDispatcher(), env.publisher)
	env.svc.SetCacheService(env.cache)
	return env
}

func validCardRequest() CreateBookingRequest {
	return CreateBookingRequest{
		PaymentMethod: "credit_card",
		PaymentDetails: payments.Details{
			CardNumber: "4111 1111 1111 1111",
			CardHolder: "NGUYEN VAN A",
			Expiry:     "12/27",
			CVV:        "123",
		},
	}
}

func TestCreateFromDraftCreditCardIsPaid(t *testing.T) {
	draft := completedDraft()
	env := newTestEnv(draft)

	resp, err := env.svc.CreateFromDraft(context.Background(), draft.Token, "", validCardRequest())
	require.NoError(t, err)

	assert.Regexp(t, `^FV-\d{8}-[A-Z]{6}$`, resp.BookingNumber)
	assert.Equal(t, StatusConfirmed, resp.Status)
	assert.Equal(t, float64(3025000), resp.TotalAmount)
	assert.Equal(t, "paid", resp.Payment.Status)
	assert.NotEmpty(t, resp.Payment.TransactionRef)
	assert.NotNil(t, resp.Payment.PaidAt)
	assert.Len(t, resp.Passengers, 3)

	// Two adults and one child occupy seats; the draft is consumed
	require.Len(t, env.inventory.reserved, 1)
	assert.Equal(t, 3, env.inventory.reserved[0].count)
	assert.True(t, env.source.cleared)

	require.Len(t, env.publisher.events, 1)
	assert.Equal(t, EventBookingCreated, env.publisher.events[0].Type)
}

func TestCreateFromDraftBankTransferStaysUnpaid(t *testing.T) {
	draft := completedDraft()
	env := newTestEnv(draft)

	resp, err := env.svc.CreateFromDraft(context.Background(), draft.Token, "", CreateBookingRequest{
		PaymentMethod: "bank_transfer",
	})
	require.NoError(t, err)

	assert.Equal(t, "unpaid", resp.Payment.Status)
	assert.Nil(t, resp.Payment.PaidAt)
}

func TestCreateFromDraftRejectsIncompleteDraft(t *testing.T) {
	draft := completedDraft()
	draft.Stage = drafts.StageSelectingDeparture
	env := newTestEnv(draft)

	_, err := env.svc.CreateFromDraft(context.Background(), draft.Token, "", validCardRequest())
	assert.ErrorIs(t, err, ErrDraftIncomplete)
	assert.Empty(t, env.inventory.reserved)
}

func TestCreateFromDraftRejectsBadCard(t *testing.T) {
	draft := completedDraft()
	env := newTestEnv(draft)

	req := validCardRequest()
	req.PaymentDetails.CardNumber = "1234"

	_, err := env.svc.CreateFromDraft(context.Background(), draft.Token, "", req)
	assert.ErrorIs(t, err, payments.ErrInvalidDetails)
	assert.Empty(t, env.inventory.reserved)
}

func TestCreateFromDraftSeatFailureAborts(t *testing.T) {
	draft := completedDraft()
	env := newTestEnv(draft)
	env.inventory.failNext = assert.AnError

	_, err := env.svc.CreateFromDraft(context.Background(), draft.Token, "", validCardRequest())
	assert.Error(t, err)
	assert.False(t, env.source.cleared)
	assert.Empty(t, env.publisher.events)
}

func TestCreateFromDraftConsumesPromo(t *testing.T) {
	draft := completedDraft()
	draft.PromoCode = "SALE10"
	draft.TotalForPayment = 2722500
	env := newTestEnv(draft)

	resp, err := env.svc.CreateFromDraft(context.Background(), draft.Token, "", validCardRequest())
	require.NoError(t, err)

	assert.Equal(t, []string{"SALE10"}, env.promos.consumed)
	assert.Equal(t, float64(2722500), resp.TotalAmount)
	assert.Equal(t, float64(302500), resp.DiscountAmount)
}

func TestIdempotencyKeyReplaysStoredBooking(t *testing.T) {
	draft := completedDraft()
	env := newTestEnv(draft)

	first, err := env.svc.CreateFromDraft(context.Background(), draft.Token, "key-1", validCardRequest())
	require.NoError(t, err)

	// Same key replays the stored response without touching inventory again
	second, err := env.svc.CreateFromDraft(context.Background(), draft.Token, "key-1", validCardRequest())
	require.NoError(t, err)

	assert.Equal(t, first.BookingNumber, second.BookingNumber)
	assert.Len(t, env.inventory.reserved, 1)
	assert.Len(t, env.repo.bookings, 1)
}

func TestIdempotencyKeyReleasedAfterFailedAttempt(t *testing.T) {
	draft := completedDraft()
	env := newTestEnv(draft)

	bad := validCardRequest()
	bad.PaymentDetails.CardNumber = "1234"

	_, err := env.svc.CreateFromDraft(context.Background(), draft.Token, "key-1", bad)
	require.ErrorIs(t, err, payments.ErrInvalidDetails)

	// The failed attempt must not leave a pending claim behind; a corrected
	// retry with the same key goes through
	resp, err := env.svc.CreateFromDraft(context.Background(), draft.Token, "key-1", validCardRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.BookingNumber)
	assert.Len(t, env.repo.bookings, 1)
}

func TestIdempotencyKeyReleasedAfterSeatFailure(t *testing.T) {
	draft := completedDraft()
	env := newTestEnv(draft)
	env.inventory.failNext = flights.ErrInsufficientSeats

	_, err := env.svc.CreateFromDraft(context.Background(), draft.Token, "key-1", validCardRequest())
	require.ErrorIs(t, err, flights.ErrInsufficientSeats)

	resp, err := env.svc.CreateFromDraft(context.Background(), draft.Token, "key-1", validCardRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.BookingNumber)
	assert.Len(t, env.repo.bookings, 1)
}

func TestRoundTripReservesBothLegs(t *testing.T) {
	draft := completedDraft()
	draft.TripType = drafts.TripRoundTrip
	draft.Return = &drafts.FlightSelection{
		FlightID:      uuid.NewString(),
		FlightCode:    "VN101",
		Origin:        "SGN",
		Destination:   "HAN",
		DepartureDate: "2026-09-20",
		Prices:        map[pricing.SeatClass]float64{pricing.SeatClassEconomy: 1000000},
	}
	env := newTestEnv(draft)

	resp, err := env.svc.CreateFromDraft(context.Background(), draft.Token, "", validCardRequest())
	require.NoError(t, err)

	assert.Len(t, env.inventory.reserved, 2)
	assert.Equal(t, "round_trip", resp.TripType)
}

func TestGetBookingByNumber(t *testing.T) {
	draft := completedDraft()
	env := newTestEnv(draft)

	created, err := env.svc.CreateFromDraft(context.Background(), draft.Token, "", validCardRequest())
	require.NoError(t, err)

	found, err := env.svc.GetBooking(context.Background(), created.BookingNumber)
	require.NoError(t, err)
	assert.Equal(t, created.BookingID, found.BookingID)

	_, err = env.svc.GetBooking(context.Background(), "FV-20260101-ZZZZZZ")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdatePaymentSettlesBankTransfer(t *testing.T) {
	draft := completedDraft()
	env := newTestEnv(draft)

	created, err := env.svc.CreateFromDraft(context.Background(), draft.Token, "", CreateBookingRequest{
		PaymentMethod: "bank_transfer",
	})
	require.NoError(t, err)

	id := uuid.MustParse(created.BookingID)
	updated, err := env.svc.UpdatePaymentStatus(context.Background(), id, UpdatePaymentRequest{Status: "paid"})
	require.NoError(t, err)

	assert.Equal(t, "paid", updated.Payment.Status)
	assert.NotNil(t, updated.Payment.PaidAt)

	// A second settlement attempt is rejected
	_, err = env.svc.UpdatePaymentStatus(context.Background(), id, UpdatePaymentRequest{Status: "paid"})
	assert.ErrorIs(t, err, ErrAlreadyPaid)

	// booking.created then booking.paid
	require.Len(t, env.publisher.events, 2)
	assert.Equal(t, EventBookingPaid, env.publisher.events[1].Type)
}

func TestUpdatePaymentRejectsUnknownStatus(t *testing.T) {
	env := newTestEnv(completedDraft())

	_, err := env.svc.UpdatePaymentStatus(context.Background(), uuid.New(), UpdatePaymentRequest{Status: "refunded"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCancelBookingReleasesSeats(t *testing.T) {
	draft := completedDraft()
	env := newTestEnv(draft)

	created, err := env.svc.CreateFromDraft(context.Background(), draft.Token, "", validCardRequest())
	require.NoError(t, err)

	id := uuid.MustParse(created.BookingID)
	require.NoError(t, env.svc.CancelBooking(context.Background(), id, "customer request"))

	require.Len(t, env.inventory.released, 1)
	assert.Equal(t, 3, env.inventory.released[0].count)

	err = env.svc.CancelBooking(context.Background(), id, "again")
	assert.ErrorIs(t, err, ErrAlreadyCancelled)

	require.Len(t, env.publisher.events, 2)
	assert.Equal(t, EventBookingCancelled, env.publisher.events[1].Type)
}
