package pricing

import (
	"errors"
	"fmt"
	"math"
)

// ErrMissingPrice is returned when a fare is requested for a seat class the
// flight carries no price data for and the calculator is configured to fail
// rather than default.
var ErrMissingPrice = errors.New("no price data for requested seat class")

// MissingPricePolicy controls what happens when a flight has no price for
// the requested seat class and no economy base to derive one from. The web
// client this service replaces silently priced such fares at zero; that is
// kept only as an opt-in compatibility mode.
type MissingPricePolicy int

const (
	// MissingPriceError rejects the fare request. Default.
	MissingPriceError MissingPricePolicy = iota
	// MissingPriceZero prices the fare at zero, matching legacy behavior.
	MissingPriceZero
)

// Calculator resolves per-passenger fares from a flight's per-class price
// table. All amounts are whole VND.
type Calculator struct {
	policy MissingPricePolicy
}

func NewCalculator(policy MissingPricePolicy) *Calculator {
	return &Calculator{policy: policy}
}

// BasePrice resolves the cabin price for a seat class: the explicit
// per-class price when present, otherwise the economy price scaled by the
// class multiplier.
func (c *Calculator) BasePrice(prices map[SeatClass]float64, class SeatClass) (float64, error) {
	if !class.IsValid() {
		return 0, fmt.Errorf("invalid seat class %q", class)
	}
	if p, ok := prices[class]; ok && p > 0 {
		return p, nil
	}
	if eco, ok := prices[SeatClassEconomy]; ok && eco > 0 {
		return math.Round(eco * class.Multiplier()), nil
	}
	if c.policy == MissingPriceZero {
		return 0, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrMissingPrice, class)
}

// PriceFor returns the fare for one passenger of the given type in the
// given class, rounded to the nearest whole currency unit.
func (c *Calculator) PriceFor(prices map[SeatClass]float64, class SeatClass, t PassengerType) (float64, error) {
	base, err := c.BasePrice(prices, class)
	if err != nil {
		return 0, err
	}
	if !t.IsValid() {
		return 0, fmt.Errorf("invalid passenger type %q", t)
	}
	return math.Round(base * t.Multiplier()), nil
}
