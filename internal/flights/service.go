package flights

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"flyviet/internal/pricing"
	"flyviet/internal/shared/constants"
	"flyviet/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	SetCacheService(cacheService cache.Service)

	// Public search and lookup
	SearchFlights(ctx context.Context, query SearchQuery) (*SearchResult, error)
	GetFlightByID(ctx context.Context, idOrCode string) (*FlightResponse, error)

	// Internal lookups for the booking flow
	GetFlight(id uuid.UUID) (*Flight, error)
	ResolveFlight(ref string) (*Flight, error)
	ReserveSeats(flightID uuid.UUID, class pricing.SeatClass, count int) error
	ReleaseSeats(flightID uuid.UUID, class pricing.SeatClass, count int) error

	// Admin back-office
	CreateFlight(req CreateFlightRequest) (*FlightResponse, error)
	UpdateFlight(id uuid.UUID, req UpdateFlightRequest) (*FlightResponse, error)
	DeleteFlight(id uuid.UUID) error
	GetAllFlights(query FlightListQuery) (*PaginatedFlights, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) SearchFlights(ctx context.Context, query SearchQuery) (*SearchResult, error) {
	class := pricing.SeatClass(strings.ToUpper(query.SeatClass))
	if query.SeatClass == "" {
		class = pricing.SeatClassEconomy
	}
	if !class.IsValid() {
		return nil, fmt.Errorf("invalid seat class: %s", query.SeatClass)
	}

	scheduled, err := s.fetchScheduled(ctx, query.Origin, query.Destination, query.DepartDate)
	if err != nil {
		return nil, fmt.Errorf("flight search failed: %w", err)
	}

	if len(scheduled) == 0 {
		return nil, ErrNoFlights
	}

	filtered := applyFilters(scheduled, class, query)
	if len(filtered) == 0 {
		return nil, ErrAllFiltered
	}

	responses := make([]FlightResponse, len(filtered))
	for i, flight := range filtered {
		responses[i] = flight.ToResponse(class)
	}

	sortResponses(responses, query.SortBy, query.SortOrder)

	return &SearchResult{
		Flights:    responses,
		TotalCount: len(scheduled),
		Filtered:   len(scheduled) - len(filtered),
	}, nil
}

// fetchScheduled reads the scheduled flight list for a route/date with a
// cache-aside over Redis. Optional filters are always applied in memory so
// every filter combination shares one cache entry.
func (s *service) fetchScheduled(ctx context.Context, origin, destination, date string) ([]Flight, error) {
	key := constants.BuildFlightSearchKey(strings.ToUpper(origin), strings.ToUpper(destination), date, "scheduled")

	if s.cacheService != nil {
		var cached []Flight
		if err := s.cacheService.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	flights, err := s.repo.SearchScheduled(origin, destination, date)
	if err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, key, flights, constants.TTL_FLIGHT_SEARCH)
	}

	return flights, nil
}

func applyFilters(flights []Flight, class pricing.SeatClass, query SearchQuery) []Flight {
	airlines := toSet(query.Airlines)
	slots := toSet(query.TimeSlots)

	var result []Flight
	for _, flight := range flights {
		if query.MaxPrice > 0 && priceForClass(&flight, class) > query.MaxPrice {
			continue
		}
		if len(airlines) > 0 && !airlines[strings.ToUpper(flight.AirlineCode)] {
			continue
		}
		if len(slots) > 0 && !matchesTimeSlot(flight.DepartureTime, slots) {
			continue
		}
		result = append(result, flight)
	}
	return result
}

func priceForClass(f *Flight, class pricing.SeatClass) float64 {
	if explicit, ok := f.PriceTable()[class]; ok {
		return explicit
	}
	return math.Round(f.PriceEconomy * class.Multiplier())
}

// matchesTimeSlot checks the departure hour against buckets of the form
// "00-06", "06-12", "12-18", "18-24"
func matchesTimeSlot(departureTime string, slots map[string]bool) bool {
	if len(departureTime) < 2 {
		return false
	}
	hour, err := strconv.Atoi(departureTime[:2])
	if err != nil {
		return false
	}

	switch {
	case hour < 6:
		return slots["00-06"]
	case hour < 12:
		return slots["06-12"]
	case hour < 18:
		return slots["12-18"]
	default:
		return slots["18-24"]
	}
}

func toSet(csv string) map[string]bool {
	set := make(map[string]bool)
	for _, part := range strings.Split(csv, ",") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part != "" {
			set[part] = true
		}
	}
	return set
}

func sortResponses(responses []FlightResponse, sortBy, sortOrder string) {
	if sortBy == "" {
		sortBy = "price"
	}
	desc := sortOrder == "desc"

	sort.SliceStable(responses, func(i, j int) bool {
		var less bool
		switch sortBy {
		case "time":
			less = responses[i].DepartureTime < responses[j].DepartureTime
		default:
			less = responses[i].Price < responses[j].Price
		}
		if desc {
			return !less
		}
		return less
	})
}

// GetFlightByID resolves a flight by UUID or flight code. The legacy client
// sent whichever identifier it had on hand.
func (s *service) GetFlightByID(ctx context.Context, idOrCode string) (*FlightResponse, error) {
	var flight *Flight
	var err error

	if id, parseErr := uuid.Parse(idOrCode); parseErr == nil {
		flight, err = s.repo.GetByID(id)
	} else {
		flight, err = s.repo.GetByCode(idOrCode)
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFlightNotFound
		}
		return nil, fmt.Errorf("failed to get flight: %w", err)
	}

	resp := flight.ToResponse(pricing.SeatClassEconomy)
	return &resp, nil
}

// ResolveFlight accepts a UUID or a flight code and returns the full record
func (s *service) ResolveFlight(ref string) (*Flight, error) {
	var flight *Flight
	var err error

	if id, parseErr := uuid.Parse(ref); parseErr == nil {
		flight, err = s.repo.GetByID(id)
	} else {
		flight, err = s.repo.GetByCode(ref)
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFlightNotFound
		}
		return nil, fmt.Errorf("failed to resolve flight: %w", err)
	}
	return flight, nil
}

func (s *service) GetFlight(id uuid.UUID) (*Flight, error) {
	flight, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFlightNotFound
		}
		return nil, fmt.Errorf("failed to get flight: %w", err)
	}
	return flight, nil
}

func (s *service) ReserveSeats(flightID uuid.UUID, class pricing.SeatClass, count int) error {
	return s.repo.ReserveSeats(flightID, class, count)
}

func (s *service) ReleaseSeats(flightID uuid.UUID, class pricing.SeatClass, count int) error {
	return s.repo.ReleaseSeats(flightID, class, count)
}

func (s *service) CreateFlight(req CreateFlightRequest) (*FlightResponse, error) {
	code := strings.ToUpper(req.FlightCode)

	if existing, err := s.repo.GetByCode(code); err == nil && existing != nil {
		return nil, ErrDuplicateFlight
	}

	flight := &Flight{
		FlightCode:          code,
		AirlineCode:         strings.ToUpper(req.AirlineCode),
		Airline:             req.Airline,
		Origin:              strings.ToUpper(req.Origin),
		Destination:         strings.ToUpper(req.Destination),
		DepartureDate:       req.DepartureDate,
		DepartureTime:       req.DepartureTime,
		ArrivalTime:         req.ArrivalTime,
		Duration:            req.Duration,
		Status:              FlightStatusScheduled,
		PriceEconomy:        req.PriceEconomy,
		PricePremiumEconomy: req.PricePremiumEconomy,
		PriceBusiness:       req.PriceBusiness,
		PriceFirst:          req.PriceFirst,
		SeatsEconomy:        req.SeatsEconomy,
		SeatsPremiumEconomy: req.SeatsPremiumEconomy,
		SeatsBusiness:       req.SeatsBusiness,
		SeatsFirst:          req.SeatsFirst,
	}

	if err := s.repo.Create(flight); err != nil {
		return nil, fmt.Errorf("failed to create flight: %w", err)
	}

	s.invalidateFlightCache(context.Background())

	resp := flight.ToResponse(pricing.SeatClassEconomy)
	return &resp, nil
}

func (s *service) UpdateFlight(id uuid.UUID, req UpdateFlightRequest) (*FlightResponse, error) {
	updates := make(map[string]interface{})

	if req.Airline != nil {
		updates["airline"] = *req.Airline
	}
	if req.DepartureDate != nil {
		updates["departure_date"] = *req.DepartureDate
	}
	if req.DepartureTime != nil {
		updates["departure_time"] = *req.DepartureTime
	}
	if req.ArrivalTime != nil {
		updates["arrival_time"] = *req.ArrivalTime
	}
	if req.Duration != nil {
		updates["duration"] = *req.Duration
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.PriceEconomy != nil {
		updates["price_economy"] = *req.PriceEconomy
	}
	if req.PricePremiumEconomy != nil {
		updates["price_premium_economy"] = *req.PricePremiumEconomy
	}
	if req.PriceBusiness != nil {
		updates["price_business"] = *req.PriceBusiness
	}
	if req.PriceFirst != nil {
		updates["price_first"] = *req.PriceFirst
	}
	if req.SeatsEconomy != nil {
		updates["seats_economy"] = *req.SeatsEconomy
	}
	if req.SeatsPremiumEconomy != nil {
		updates["seats_premium_economy"] = *req.SeatsPremiumEconomy
	}
	if req.SeatsBusiness != nil {
		updates["seats_business"] = *req.SeatsBusiness
	}
	if req.SeatsFirst != nil {
		updates["seats_first"] = *req.SeatsFirst
	}

	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	flight, err := s.repo.Update(id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFlightNotFound
		}
		return nil, fmt.Errorf("failed to update flight: %w", err)
	}

	s.invalidateFlightCache(context.Background())

	resp := flight.ToResponse(pricing.SeatClassEconomy)
	return &resp, nil
}

func (s *service) DeleteFlight(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFlightNotFound
		}
		return fmt.Errorf("failed to get flight: %w", err)
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete flight: %w", err)
	}

	s.invalidateFlightCache(context.Background())
	return nil
}

func (s *service) GetAllFlights(query FlightListQuery) (*PaginatedFlights, error) {
	flights, totalCount, err := s.repo.GetAll(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list flights: %w", err)
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}

	responses := make([]FlightResponse, len(flights))
	for i, flight := range flights {
		responses[i] = flight.ToResponse(pricing.SeatClassEconomy)
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(query.Limit)))

	return &PaginatedFlights{
		Flights:    responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *service) invalidateFlightCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_FLIGHTS_ALL)
}
