package pricing

import (
	"fmt"
	"math"
)

// TaxRate is the flat tax-and-fees fraction applied to the base fare.
const TaxRate = 0.10

// Flat add-on service fees in VND. Services are charged once per booking,
// not per passenger.
const (
	ServiceFeeFood      = 150000
	ServiceFeeLuggage   = 200000
	ServiceFeeInsurance = 100000
)

// PassengerCounts holds the requested headcount per passenger type.
type PassengerCounts struct {
	Adults   int `json:"numAdults"`
	Children int `json:"numChildren"`
	Infants  int `json:"numInfants"`
}

func (pc PassengerCounts) Total() int {
	return pc.Adults + pc.Children + pc.Infants
}

func (pc PassengerCounts) Validate() error {
	if pc.Adults < 0 || pc.Children < 0 || pc.Infants < 0 {
		return fmt.Errorf("passenger counts cannot be negative")
	}
	if pc.Adults < 1 {
		return fmt.Errorf("at least one adult passenger is required")
	}
	if pc.Infants > pc.Adults {
		return fmt.Errorf("each infant must be accompanied by an adult")
	}
	return nil
}

// Services is the set of flat-fee add-ons selected for a booking.
type Services struct {
	Food      bool `json:"food"`
	Luggage   bool `json:"luggage"`
	Insurance bool `json:"insurance"`
}

// Cost sums the fees for the selected services.
func (s Services) Cost() float64 {
	var cost float64
	if s.Food {
		cost += ServiceFeeFood
	}
	if s.Luggage {
		cost += ServiceFeeLuggage
	}
	if s.Insurance {
		cost += ServiceFeeInsurance
	}
	return cost
}

// DiscountType distinguishes percentage promos from fixed-amount promos.
type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

// Discount is a resolved promotion applied to a quote total.
type Discount struct {
	Type  DiscountType `json:"discountType"`
	Value float64      `json:"discountValue"`
}

// Amount computes the discount in VND against the given total. Percent
// discounts are rounded to whole VND; the result never exceeds the total.
func (d Discount) Amount(total float64) float64 {
	var amount float64
	switch d.Type {
	case DiscountPercent:
		amount = math.Round(total * d.Value / 100)
	case DiscountFixed:
		amount = d.Value
	}
	if amount > total {
		amount = total
	}
	if amount < 0 {
		amount = 0
	}
	return amount
}

// LegFare is the per-type fare breakdown for one flight leg.
type LegFare struct {
	AdultPrice  float64 `json:"adultPrice"`
	ChildPrice  float64 `json:"childPrice"`
	InfantPrice float64 `json:"infantPrice"`
	Total       float64 `json:"total"`
}

// LegInput identifies one leg to be priced.
type LegInput struct {
	Prices    map[SeatClass]float64
	SeatClass SeatClass
}

// QuoteInput carries everything needed to price a booking.
type QuoteInput struct {
	Outbound LegInput
	Return   *LegInput
	Counts   PassengerCounts
	Services Services
}

// Quote is the itemized price of a booking before any promo discount.
type Quote struct {
	Outbound     LegFare  `json:"outbound"`
	Return       *LegFare `json:"return,omitempty"`
	BaseFare     float64  `json:"baseFare"`
	Taxes        float64  `json:"taxes"`
	ServicesCost float64  `json:"servicesCost"`
	Total        float64  `json:"total"`
}

// LegFare prices one leg for the given passenger counts.
func (c *Calculator) LegFare(leg LegInput, counts PassengerCounts) (LegFare, error) {
	var fare LegFare
	adult, err := c.PriceFor(leg.Prices, leg.SeatClass, PassengerAdult)
	if err != nil {
		return fare, err
	}
	child, err := c.PriceFor(leg.Prices, leg.SeatClass, PassengerChild)
	if err != nil {
		return fare, err
	}
	infant, err := c.PriceFor(leg.Prices, leg.SeatClass, PassengerInfant)
	if err != nil {
		return fare, err
	}
	fare.AdultPrice = adult
	fare.ChildPrice = child
	fare.InfantPrice = infant
	fare.Total = adult*float64(counts.Adults) + child*float64(counts.Children) + infant*float64(counts.Infants)
	return fare, nil
}

// Quote computes the full itemized price: per-leg base fares summed over
// passenger types, 10% taxes on the base fare, plus flat service fees.
func (c *Calculator) Quote(in QuoteInput) (*Quote, error) {
	if err := in.Counts.Validate(); err != nil {
		return nil, err
	}

	outbound, err := c.LegFare(in.Outbound, in.Counts)
	if err != nil {
		return nil, fmt.Errorf("pricing outbound leg: %w", err)
	}

	q := &Quote{Outbound: outbound, BaseFare: outbound.Total}

	if in.Return != nil {
		ret, err := c.LegFare(*in.Return, in.Counts)
		if err != nil {
			return nil, fmt.Errorf("pricing return leg: %w", err)
		}
		q.Return = &ret
		q.BaseFare += ret.Total
	}

	q.Taxes = math.Round(q.BaseFare * TaxRate)
	q.ServicesCost = in.Services.Cost()
	q.Total = q.BaseFare + q.Taxes + q.ServicesCost
	return q, nil
}
