package flights

import "errors"

var (
	// ErrNoFlights means the route/date has no scheduled flights at all
	ErrNoFlights = errors.New("no flights available for this route and date")

	// ErrAllFiltered means scheduled flights exist but every one was removed
	// by the price/airline/time filters
	ErrAllFiltered = errors.New("no flights match the selected filters")

	ErrFlightNotFound    = errors.New("flight not found")
	ErrInsufficientSeats = errors.New("insufficient seats")
	ErrDuplicateFlight   = errors.New("flight code already exists")
)
