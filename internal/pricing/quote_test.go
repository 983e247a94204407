package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServices_Cost(t *testing.T) {
	assert.Zero(t, Services{}.Cost())
	assert.Equal(t, float64(150000), Services{Food: true}.Cost())
	assert.Equal(t, float64(450000), Services{Food: true, Luggage: true, Insurance: true}.Cost())
}

func TestDiscount_Amount(t *testing.T) {
	tests := []struct {
		name  string
		d     Discount
		total float64
		want  float64
	}{
		{"10 percent of 1000000", Discount{Type: DiscountPercent, Value: 10}, 1000000, 100000},
		{"fixed 50000", Discount{Type: DiscountFixed, Value: 50000}, 1000000, 50000},
		{"fixed capped at total", Discount{Type: DiscountFixed, Value: 2000000}, 1000000, 1000000},
		{"percent rounds to whole VND", Discount{Type: DiscountPercent, Value: 15}, 333333, 50000},
		{"negative value clamped", Discount{Type: DiscountFixed, Value: -100}, 1000000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.Amount(tt.total))
		})
	}
}

func TestCalculator_Quote_OneWay(t *testing.T) {
	calc := NewCalculator(MissingPriceError)

	// 2 adults + 1 child, economy at 1,000,000:
	// base = 2*1,000,000 + 0.75*1,000,000 = 2,750,000
	// taxes = 275,000; no services; total = 3,025,000
	q, err := calc.Quote(QuoteInput{
		Outbound: LegInput{
			Prices:    map[SeatClass]float64{SeatClassEconomy: 1000000},
			SeatClass: SeatClassEconomy,
		},
		Counts: PassengerCounts{Adults: 2, Children: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, float64(2750000), q.BaseFare)
	assert.Equal(t, float64(275000), q.Taxes)
	assert.Zero(t, q.ServicesCost)
	assert.Equal(t, float64(3025000), q.Total)
	assert.Nil(t, q.Return)
}

func TestCalculator_Quote_RoundTrip(t *testing.T) {
	calc := NewCalculator(MissingPriceError)

	q, err := calc.Quote(QuoteInput{
		Outbound: LegInput{
			Prices:    map[SeatClass]float64{SeatClassEconomy: 1000000},
			SeatClass: SeatClassEconomy,
		},
		Return: &LegInput{
			Prices:    map[SeatClass]float64{SeatClassEconomy: 1200000},
			SeatClass: SeatClassEconomy,
		},
		Counts:   PassengerCounts{Adults: 1, Infants: 1},
		Services: Services{Luggage: true},
	})
	require.NoError(t, err)

	// outbound 1,000,000 + 100,000; return 1,200,000 + 120,000
	assert.Equal(t, float64(1100000), q.Outbound.Total)
	require.NotNil(t, q.Return)
	assert.Equal(t, float64(1320000), q.Return.Total)
	assert.Equal(t, float64(2420000), q.BaseFare)
	assert.Equal(t, float64(242000), q.Taxes)
	assert.Equal(t, float64(200000), q.ServicesCost)
	assert.Equal(t, float64(2862000), q.Total)
}

func TestCalculator_Quote_CountValidation(t *testing.T) {
	calc := NewCalculator(MissingPriceError)
	leg := LegInput{
		Prices:    map[SeatClass]float64{SeatClassEconomy: 1000000},
		SeatClass: SeatClassEconomy,
	}

	_, err := calc.Quote(QuoteInput{Outbound: leg, Counts: PassengerCounts{Adults: 0, Children: 2}})
	assert.Error(t, err, "bookings without an adult are rejected")

	_, err = calc.Quote(QuoteInput{Outbound: leg, Counts: PassengerCounts{Adults: 1, Infants: 2}})
	assert.Error(t, err, "more infants than adults are rejected")
}

func TestCalculator_Quote_MissingReturnPrice(t *testing.T) {
	calc := NewCalculator(MissingPriceError)

	_, err := calc.Quote(QuoteInput{
		Outbound: LegInput{
			Prices:    map[SeatClass]float64{SeatClassEconomy: 1000000},
			SeatClass: SeatClassEconomy,
		},
		Return: &LegInput{
			Prices:    map[SeatClass]float64{},
			SeatClass: SeatClassEconomy,
		},
		Counts: PassengerCounts{Adults: 1},
	})
	require.ErrorIs(t, err, ErrMissingPrice)
}
