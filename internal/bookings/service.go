package bookings

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"flyviet/internal/drafts"
	"flyviet/internal/payments"
	"flyviet/internal/pricing"
	"flyviet/internal/shared/constants"
	"flyviet/pkg/cache"
	"flyviet/pkg/logger"

	"github.com/google/uuid"
)

// DraftSource is the slice of the draft service the booking flow reads
// (defined here to avoid a circular dependency).
type DraftSource interface {
	GetRaw(ctx context.Context, token string) (*drafts.Draft, error)
	ClearDraft(ctx context.Context, token string) error
}

// SeatInventory reserves and releases seats on flights.
type SeatInventory interface {
	ReserveSeats(flightID uuid.UUID, class pricing.SeatClass, count int) error
	ReleaseSeats(flightID uuid.UUID, class pricing.SeatClass, count int) error
}

// PromoConsumer records promo code usage at booking time.
type PromoConsumer interface {
	ConsumeCode(ctx context.Context, code string) error
}

// BookingEvent is published to Kafka on booking lifecycle changes.
type BookingEvent struct {
	Type          string    `json:"type"`
	BookingID     string    `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	ContactName   string    `json:"contact_name"`
	ContactEmail  string    `json:"contact_email"`
	TotalAmount   float64   `json:"total_amount"`
	PaymentMethod string    `json:"payment_method"`
	PaymentStatus string    `json:"payment_status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

const (
	EventBookingCreated   = "booking.created"
	EventBookingPaid      = "booking.paid"
	EventBookingCancelled = "booking.cancelled"
)

// EventPublisher pushes booking lifecycle events onto the event bus.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, event BookingEvent) error
}

type Service interface {
	CreateFromDraft(ctx context.Context, draftToken, idempotencyKey string, req CreateBookingRequest) (*BookingResponse, error)
	GetBooking(ctx context.Context, ref string) (*BookingResponse, error)
	GetAllBookings(ctx context.Context, query BookingListQuery) (*PaginatedBookings, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, req UpdatePaymentRequest) (*BookingResponse, error)
	CancelBooking(ctx context.Context, id uuid.UUID, reason string) error

	SetCacheService(cacheService cache.Service)
}

type service struct {
	repo         Repository
	draftSource  DraftSource
	inventory    SeatInventory
	promos       PromoConsumer
	dispatcher   payments.Dispatcher
	publisher    EventPublisher
	cacheService cache.Service
	log          *logger.Logger
}

func NewService(repo Repository, draftSource DraftSource, inventory SeatInventory, promos PromoConsumer, dispatcher payments.Dispatcher, publisher EventPublisher) Service {
	return &service{
		repo:        repo,
		draftSource: draftSource,
		inventory:   inventory,
		promos:      promos,
		dispatcher:  dispatcher,
		publisher:   publisher,
		log:         logger.GetDefault(),
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// idempotencyPending marks a key claimed by a request that has not
// finished yet.
const idempotencyPending = "__pending__"

// CreateFromDraft turns a completed draft into a confirmed booking: seats
// are reserved, payment is dispatched per method, the booking and payment
// rows are written, and the draft is cleared.
func (s *service) CreateFromDraft(ctx context.Context, draftToken, idempotencyKey string, req CreateBookingRequest) (*BookingResponse, error) {
	useIdempotency := idempotencyKey != "" && s.cacheService != nil
	if useIdempotency {
		if replay, err := s.claimIdempotencyKey(ctx, idempotencyKey); err != nil {
			return nil, err
		} else if replay != nil {
			return replay, nil
		}
	}

	resp, err := s.createFromDraft(ctx, draftToken, req)

	if useIdempotency {
		key := constants.BuildIdempotencyKey(idempotencyKey)
		if err != nil {
			// A failed attempt must release the claim or a corrected retry
			// with the same key would be stuck behind the pending marker
			if delErr := s.cacheService.Delete(ctx, key); delErr != nil {
				s.log.WarnContext(ctx, "Failed to release idempotency claim",
					slog.String("error", delErr.Error()))
			}
		} else {
			if setErr := s.cacheService.Set(ctx, key, *resp, constants.TTL_IDEMPOTENCY); setErr != nil {
				s.log.WarnContext(ctx, "Failed to store idempotency record",
					slog.String("error", setErr.Error()))
			}
		}
	}

	return resp, err
}

func (s *service) createFromDraft(ctx context.Context, draftToken string, req CreateBookingRequest) (*BookingResponse, error) {
	draft, err := s.draftSource.GetRaw(ctx, draftToken)
	if err != nil {
		return nil, err
	}
	if err := validateDraftForPayment(draft); err != nil {
		return nil, err
	}

	method, err := s.dispatcher.Get(req.PaymentMethod)
	if err != nil {
		return nil, err
	}
	if err := method.ValidateDetails(req.PaymentDetails); err != nil {
		return nil, err
	}

	// Infants travel on an adult's lap and do not occupy a seat
	seatCount := draft.Search.Counts.Adults + draft.Search.Counts.Children

	outboundID, err := uuid.Parse(draft.Outbound.FlightID)
	if err != nil {
		return nil, fmt.Errorf("invalid outbound flight id: %w", err)
	}
	if err := s.inventory.ReserveSeats(outboundID, draft.Search.SeatClass, seatCount); err != nil {
		return nil, err
	}

	var returnID *uuid.UUID
	if draft.Return != nil {
		id, err := uuid.Parse(draft.Return.FlightID)
		if err != nil {
			s.inventory.ReleaseSeats(outboundID, draft.Search.SeatClass, seatCount)
			return nil, fmt.Errorf("invalid return flight id: %w", err)
		}
		if err := s.inventory.ReserveSeats(id, draft.Search.SeatClass, seatCount); err != nil {
			s.inventory.ReleaseSeats(outboundID, draft.Search.SeatClass, seatCount)
			return nil, err
		}
		returnID = &id
	}

	releaseAll := func() {
		s.inventory.ReleaseSeats(outboundID, draft.Search.SeatClass, seatCount)
		if returnID != nil {
			s.inventory.ReleaseSeats(*returnID, draft.Search.SeatClass, seatCount)
		}
	}

	result, err := s.dispatcher.Dispatch(ctx, req.PaymentMethod, req.PaymentDetails)
	if err != nil {
		releaseAll()
		return nil, err
	}

	number, err := generateBookingNumber()
	if err != nil {
		releaseAll()
		return nil, fmt.Errorf("failed to generate booking number: %w", err)
	}

	booking := s.bookingFromDraft(draft, number, outboundID, returnID)
	booking.Payment = &Payment{
		Amount:         draft.TotalForPayment,
		Currency:       "VND",
		Method:         result.Method,
		Status:         string(result.Status),
		TransactionRef: result.TransactionRef,
		PaidAt:         result.PaidAt,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		releaseAll()
		return nil, err
	}

	if draft.PromoCode != "" {
		if err := s.promos.ConsumeCode(ctx, draft.PromoCode); err != nil {
			s.log.WarnContext(ctx, "Failed to record promo usage",
				slog.String("code", draft.PromoCode),
				slog.String("booking_number", number),
				slog.String("error", err.Error()))
		}
	}

	s.publishEvent(ctx, EventBookingCreated, booking)

	if err := s.draftSource.ClearDraft(ctx, draftToken); err != nil {
		s.log.WarnContext(ctx, "Failed to clear draft after booking",
			slog.String("booking_number", number),
			slog.String("error", err.Error()))
	}

	s.log.LogBookingCreated(ctx, number, draft.Outbound.FlightCode, booking.TotalAmount)

	resp := booking.ToResponse()

	s.invalidateListCaches(ctx)
	return &resp, nil
}

// claimIdempotencyKey claims the key with SETNX. A lost claim means a
// request with the same key already ran: its stored response is replayed,
// or ErrRequestInFlight surfaces if it has not finished yet.
func (s *service) claimIdempotencyKey(ctx context.Context, idempotencyKey string) (*BookingResponse, error) {
	key := constants.BuildIdempotencyKey(idempotencyKey)

	claimed, err := s.cacheService.SetNX(ctx, key, idempotencyPending, constants.TTL_IDEMPOTENCY)
	if err != nil {
		return nil, fmt.Errorf("idempotency check failed: %w", err)
	}
	if claimed {
		return nil, nil
	}

	var marker string
	if err := s.cacheService.Get(ctx, key, &marker); err == nil && marker == idempotencyPending {
		return nil, ErrRequestInFlight
	}

	var stored BookingResponse
	if err := s.cacheService.Get(ctx, key, &stored); err != nil {
		return nil, ErrRequestInFlight
	}
	return &stored, nil
}

func validateDraftForPayment(draft *drafts.Draft) error {
	if draft.Stage != drafts.StageComplete {
		return fmt.Errorf("%w: flight selection is not complete", ErrDraftIncomplete)
	}
	if draft.Contact == nil || len(draft.Passengers) == 0 {
		return fmt.Errorf("%w: customer information is missing", ErrDraftIncomplete)
	}
	if draft.Quote == nil || draft.TotalForPayment <= 0 {
		return fmt.Errorf("%w: no computed total", ErrDraftIncomplete)
	}
	return nil
}

func (s *service) bookingFromDraft(draft *drafts.Draft, number string, outboundID uuid.UUID, returnID *uuid.UUID) *Booking {
	discount := draft.Quote.Total - draft.TotalForPayment
	if discount < 0 {
		discount = 0
	}

	booking := &Booking{
		BookingNumber:    number,
		TripType:         string(draft.TripType),
		SeatClass:        draft.Search.SeatClass,
		OutboundFlightID: outboundID,
		ReturnFlightID:   returnID,
		ContactName:      draft.Contact.FullName,
		ContactEmail:     draft.Contact.Email,
		ContactPhone:     draft.Contact.Phone,
		NumAdults:        draft.Search.Counts.Adults,
		NumChildren:      draft.Search.Counts.Children,
		NumInfants:       draft.Search.Counts.Infants,
		ServiceFood:      draft.Services.Food,
		ServiceLuggage:   draft.Services.Luggage,
		ServiceInsurance: draft.Services.Insurance,
		PromoCode:        draft.PromoCode,
		BaseFare:         draft.Quote.BaseFare,
		Taxes:            draft.Quote.Taxes,
		ServicesCost:     draft.Quote.ServicesCost,
		DiscountAmount:   discount,
		TotalAmount:      draft.TotalForPayment,
		Status:           StatusConfirmed,
	}

	for _, p := range draft.Passengers {
		booking.Passengers = append(booking.Passengers, BookingPassenger{
			Type:     p.Type,
			FullName: p.FullName,
			Gender:   p.Gender,
			DOB:      p.DOB,
			IDNumber: p.IDNumber,
		})
	}

	return booking
}

// GetBooking resolves by UUID or by booking number.
func (s *service) GetBooking(ctx context.Context, ref string) (*BookingResponse, error) {
	var booking *Booking
	var err error

	if id, parseErr := uuid.Parse(ref); parseErr == nil {
		booking, err = s.repo.GetByID(ctx, id)
	} else {
		booking, err = s.repo.GetByNumber(ctx, ref)
	}
	if err != nil {
		return nil, err
	}

	resp := booking.ToResponse()
	return &resp, nil
}

func (s *service) GetAllBookings(ctx context.Context, query BookingListQuery) (*PaginatedBookings, error) {
	bookings, totalCount, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	responses := make([]BookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = bookings[i].ToResponse()
	}

	totalPages := int((totalCount + int64(query.Limit) - 1) / int64(query.Limit))

	return &PaginatedBookings{
		Bookings:   responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

// UpdatePaymentStatus settles a deferred payment. Only unpaid -> paid is a
// legal transition.
func (s *service) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, req UpdatePaymentRequest) (*BookingResponse, error) {
	if req.Status != string(payments.StatusPaid) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status == StatusCancelled {
		return nil, ErrAlreadyCancelled
	}
	if booking.Payment != nil && booking.Payment.Status == string(payments.StatusPaid) {
		return nil, ErrAlreadyPaid
	}

	now := time.Now()
	if err := s.repo.UpdatePaymentStatus(ctx, id, string(payments.StatusPaid), &now); err != nil {
		return nil, err
	}

	booking, err = s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, EventBookingPaid, booking)
	s.log.LogPaymentProcessed(ctx, booking.BookingNumber, booking.Payment.Method, booking.Payment.Status)

	s.invalidateListCaches(ctx)
	resp := booking.ToResponse()
	return &resp, nil
}

// CancelBooking marks the booking cancelled and releases its seats.
func (s *service) CancelBooking(ctx context.Context, id uuid.UUID, reason string) error {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if booking.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}

	if err := s.repo.Cancel(ctx, id, time.Now()); err != nil {
		return err
	}

	seatCount := booking.NumAdults + booking.NumChildren
	if err := s.inventory.ReleaseSeats(booking.OutboundFlightID, booking.SeatClass, seatCount); err != nil {
		s.log.WarnContext(ctx, "Failed to release outbound seats on cancellation",
			slog.String("booking_number", booking.BookingNumber),
			slog.String("error", err.Error()))
	}
	if booking.ReturnFlightID != nil {
		if err := s.inventory.ReleaseSeats(*booking.ReturnFlightID, booking.SeatClass, seatCount); err != nil {
			s.log.WarnContext(ctx, "Failed to release return seats on cancellation",
				slog.String("booking_number", booking.BookingNumber),
				slog.String("error", err.Error()))
		}
	}

	s.publishEvent(ctx, EventBookingCancelled, booking)
	s.log.LogBookingCancelled(ctx, booking.BookingNumber, reason)

	s.invalidateListCaches(ctx)
	return nil
}

func (s *service) publishEvent(ctx context.Context, eventType string, booking *Booking) {
	if s.publisher == nil {
		return
	}

	event := BookingEvent{
		Type:          eventType,
		BookingID:     booking.ID.String(),
		BookingNumber: booking.BookingNumber,
		ContactName:   booking.ContactName,
		ContactEmail:  booking.ContactEmail,
		TotalAmount:   booking.TotalAmount,
		OccurredAt:    time.Now(),
	}
	if booking.Payment != nil {
		event.PaymentMethod = booking.Payment.Method
		event.PaymentStatus = booking.Payment.Status
	}

	if err := s.publisher.PublishBookingEvent(ctx, event); err != nil {
		s.log.WarnContext(ctx, "Failed to publish booking event",
			slog.String("type", eventType),
			slog.String("booking_number", booking.BookingNumber),
			slog.String("error", err.Error()))
	}
}

func (s *service) invalidateListCaches(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_BOOKINGS_ALL); err != nil {
		s.log.WarnContext(ctx, "Failed to invalidate booking caches", slog.String("error", err.Error()))
	}
	if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_STATISTICS); err != nil {
		s.log.WarnContext(ctx, "Failed to invalidate statistics caches", slog.String("error", err.Error()))
	}
}

// generateBookingNumber builds a reference of the form FV-YYYYMMDD-XXXXXX.
func generateBookingNumber() (string, error) {
	timestamp := time.Now().Format("20060102")

	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	randomPart := make([]byte, 6)
	for i := range randomPart {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			return "", err
		}
		randomPart[i] = letters[num.Int64()]
	}

	return fmt.Sprintf("FV-%s-%s", timestamp, string(randomPart)), nil
}
