package flights

import (
	"context"
	"errors"
	"testing"

	"flyviet/internal/pricing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	Repository
	scheduled []Flight
	err       error
}

func (f *fakeRepository) SearchScheduled(origin, destination, date string) ([]Flight, error) {
	return f.scheduled, f.err
}

func testFlight(code, airlineCode, depTime string, economy float64) Flight {
	return Flight{
		ID:            uuid.New(),
		FlightCode:    code,
		AirlineCode:   airlineCode,
		Airline:       airlineCode + " Airlines",
		Origin:        "HAN",
		Destination:   "SGN",
		DepartureDate: "2026-09-15",
		DepartureTime: depTime,
		ArrivalTime:   "12:00",
		Status:        FlightStatusScheduled,
		PriceEconomy:  economy,
		SeatsEconomy:  100,
	}
}

func searchQuery() SearchQuery {
	return SearchQuery{
		Origin:      "HAN",
		Destination: "SGN",
		DepartDate:  "2026-09-15",
	}
}

func TestSearchFlightsNoFlights(t *testing.T) {
	svc := NewService(&fakeRepository{})

	_, err := svc.SearchFlights(context.Background(), searchQuery())
	assert.ErrorIs(t, err, ErrNoFlights)
}

func TestSearchFlightsAllFiltered(t *testing.T) {
	svc := NewService(&fakeRepository{scheduled: []Flight{
		testFlight("VN100", "VN", "08:00", 1500000),
	}})

	query := searchQuery()
	query.MaxPrice = 1000000

	_, err := svc.SearchFlights(context.Background(), query)
	assert.ErrorIs(t, err, ErrAllFiltered)
}

func TestSearchFlightsRepositoryError(t *testing.T) {
	svc := NewService(&fakeRepository{err: errors.New("connection refused")})

	_, err := svc.SearchFlights(context.Background(), searchQuery())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoFlights)
	assert.NotErrorIs(t, err, ErrAllFiltered)
}

func TestSearchFlightsConjunctiveFilters(t *testing.T) {
	svc := NewService(&fakeRepository{scheduled: []Flight{
		testFlight("VN100", "VN", "05:30", 900000),  // early morning
		testFlight("VJ200", "VJ", "08:00", 800000),  // morning, cheap
		testFlight("VN300", "VN", "09:15", 1200000), // morning, pricey
		testFlight("QH400", "QH", "19:00", 700000),  // evening
	}})

	query := searchQuery()
	query.MaxPrice = 1000000
	query.Airlines = "VN,VJ"
	query.TimeSlots = "06-12"

	result, err := svc.SearchFlights(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, result.Flights, 1)
	assert.Equal(t, "VJ200", result.Flights[0].FlightCode)
	assert.Equal(t, 4, result.TotalCount)
	assert.Equal(t, 3, result.Filtered)
}

func TestSearchFlightsDefaultSortPriceAscending(t *testing.T) {
	svc := NewService(&fakeRepository{scheduled: []Flight{
		testFlight("VN100", "VN", "08:00", 1200000),
		testFlight("VJ200", "VJ", "10:00", 800000),
		testFlight("QH300", "QH", "06:00", 1000000),
	}})

	result, err := svc.SearchFlights(context.Background(), searchQuery())
	require.NoError(t, err)
	require.Len(t, result.Flights, 3)
	assert.Equal(t, "VJ200", result.Flights[0].FlightCode)
	assert.Equal(t, "QH300", result.Flights[1].FlightCode)
	assert.Equal(t, "VN100", result.Flights[2].FlightCode)
}

func TestSearchFlightsSortByTimeDescending(t *testing.T) {
	svc := NewService(&fakeRepository{scheduled: []Flight{
		testFlight("VN100", "VN", "08:00", 1200000),
		testFlight("VJ200", "VJ", "21:00", 800000),
		testFlight("QH300", "QH", "06:00", 1000000),
	}})

	query := searchQuery()
	query.SortBy = "time"
	query.SortOrder = "desc"

	result, err := svc.SearchFlights(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, "VJ200", result.Flights[0].FlightCode)
	assert.Equal(t, "QH300", result.Flights[2].FlightCode)
}

func TestSearchFlightsInvalidSeatClass(t *testing.T) {
	svc := NewService(&fakeRepository{})

	query := searchQuery()
	query.SeatClass = "COACH"

	_, err := svc.SearchFlights(context.Background(), query)
	assert.Error(t, err)
}

func TestMatchesTimeSlotBuckets(t *testing.T) {
	tests := []struct {
		departureTime string
		slot          string
		want          bool
	}{
		{"00:30", "00-06", true},
		{"05:59", "00-06", true},
		{"06:00", "00-06", false},
		{"06:00", "06-12", true},
		{"11:45", "06-12", true},
		{"12:00", "12-18", true},
		{"17:59", "12-18", true},
		{"18:00", "18-24", true},
		{"23:59", "18-24", true},
		{"13:00", "06-12", false},
	}

	for _, tt := range tests {
		got := matchesTimeSlot(tt.departureTime, map[string]bool{tt.slot: true})
		assert.Equal(t, tt.want, got, "departure %s in slot %s", tt.departureTime, tt.slot)
	}
}

func TestToResponseDerivedClassPrice(t *testing.T) {
	flight := testFlight("VN100", "VN", "08:00", 1000000)
	flight.SeatsBusiness = 10

	resp := flight.ToResponse(pricing.SeatClassBusiness)
	assert.Equal(t, float64(2500000), resp.Price)
	assert.Equal(t, float64(1000000), resp.PriceEconomy)
	assert.Equal(t, 10, resp.AvailableSeats)
	assert.Equal(t, resp.ID, resp.FlightID)
}

func TestToResponseExplicitClassPrice(t *testing.T) {
	flight := testFlight("VN100", "VN", "08:00", 1000000)
	flight.PriceBusiness = 2300000

	resp := flight.ToResponse(pricing.SeatClassBusiness)
	assert.Equal(t, float64(2300000), resp.Price)
}
