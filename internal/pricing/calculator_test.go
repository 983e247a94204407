package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculator_BasePrice(t *testing.T) {
	calc := NewCalculator(MissingPriceError)

	tests := []struct {
		name    string
		prices  map[SeatClass]float64
		class   SeatClass
		want    float64
		wantErr bool
	}{
		{
			name:   "explicit class price wins",
			prices: map[SeatClass]float64{SeatClassEconomy: 1000000, SeatClassBusiness: 2800000},
			class:  SeatClassBusiness,
			want:   2800000,
		},
		{
			name:   "derived from economy with class multiplier",
			prices: map[SeatClass]float64{SeatClassEconomy: 1000000},
			class:  SeatClassBusiness,
			want:   2500000,
		},
		{
			name:   "premium economy derived",
			prices: map[SeatClass]float64{SeatClassEconomy: 1000000},
			class:  SeatClassPremiumEconomy,
			want:   1500000,
		},
		{
			name:   "first derived",
			prices: map[SeatClass]float64{SeatClassEconomy: 1000000},
			class:  SeatClassFirst,
			want:   4000000,
		},
		{
			name:    "no data fails under error policy",
			prices:  map[SeatClass]float64{},
			class:   SeatClassEconomy,
			wantErr: true,
		},
		{
			name:    "invalid class rejected",
			prices:  map[SeatClass]float64{SeatClassEconomy: 1000000},
			class:   SeatClass("COACH"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.BasePrice(tt.prices, tt.class)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculator_BasePrice_ZeroPolicy(t *testing.T) {
	calc := NewCalculator(MissingPriceZero)

	got, err := calc.BasePrice(map[SeatClass]float64{}, SeatClassBusiness)
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestCalculator_PriceFor(t *testing.T) {
	calc := NewCalculator(MissingPriceError)
	prices := map[SeatClass]float64{SeatClassEconomy: 1000000}

	// priceFor(flight, c, t) == round(basePrice(c) * multiplier[t]) for every
	// class/type combination.
	for class := range seatClassMultipliers {
		base, err := calc.BasePrice(prices, class)
		require.NoError(t, err)
		for ptype, mult := range passengerTypeMultipliers {
			got, err := calc.PriceFor(prices, class, ptype)
			require.NoError(t, err)
			assert.Equal(t, base*mult, got, "class=%s type=%s", class, ptype)
		}
	}
}

func TestCalculator_PriceFor_Rounding(t *testing.T) {
	calc := NewCalculator(MissingPriceError)
	// 1333333 * 0.75 = 999999.75, must round to a whole VND amount.
	got, err := calc.PriceFor(map[SeatClass]float64{SeatClassEconomy: 1333333}, SeatClassEconomy, PassengerChild)
	require.NoError(t, err)
	assert.Equal(t, float64(1000000), got)
}

func TestAgeAt(t *testing.T) {
	ref := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		dob  time.Time
		want int
	}{
		{"birthday already passed", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), 26},
		{"birthday today", time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC), 26},
		{"birthday tomorrow", time.Date(2000, 6, 16, 0, 0, 0, 0, time.UTC), 25},
		{"birthday later this year", time.Date(2000, 12, 31, 0, 0, 0, 0, time.UTC), 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AgeAt(tt.dob, ref))
		})
	}
}

func TestValidateAge(t *testing.T) {
	ref := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	dobForAge := func(age int) time.Time {
		return time.Date(2026-age, 1, 1, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name    string
		ptype   PassengerType
		age     int
		wantErr bool
	}{
		{"adult 18 ok", PassengerAdult, 18, false},
		{"adult 17 rejected", PassengerAdult, 17, true},
		{"child lower boundary 2 ok", PassengerChild, 2, false},
		{"child upper boundary 12 ok", PassengerChild, 12, false},
		{"child age 1 rejected", PassengerChild, 1, true},
		{"child age 13 rejected", PassengerChild, 13, true},
		{"infant under 2 ok", PassengerInfant, 1, false},
		{"infant age 2 rejected", PassengerInfant, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAge(tt.ptype, dobForAge(tt.age), ref)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateAgeRejectsDOBAfterDeparture(t *testing.T) {
	ref := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	unborn := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	// A negative computed age must not slip under the infant upper bound
	for _, ptype := range []PassengerType{PassengerAdult, PassengerChild, PassengerInfant} {
		assert.Error(t, ValidateAge(ptype, unborn, ref), string(ptype))
	}
}

func TestNormalizePassengerType(t *testing.T) {
	assert.Equal(t, PassengerChild, NormalizePassengerType("child"))
	assert.Equal(t, PassengerChild, NormalizePassengerType("CHILD"))
	assert.Equal(t, PassengerInfant, NormalizePassengerType("infant"))
	assert.Equal(t, PassengerAdult, NormalizePassengerType("adult"))
	assert.Equal(t, PassengerAdult, NormalizePassengerType(""))
	assert.Equal(t, PassengerAdult, NormalizePassengerType("senior"))
}
