package statistics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	Repository
	totalsByRange map[string]*PeriodTotals
}

func (f *fakeRepository) GetPeriodTotals(ctx context.Context, from, to string) (*PeriodTotals, error) {
	if totals, ok := f.totalsByRange[from+"/"+to]; ok {
		return totals, nil
	}
	return &PeriodTotals{From: from, To: to}, nil
}

func TestComparePeriodsUsesPrecedingRangeOfSameLength(t *testing.T) {
	repo := &fakeRepository{totalsByRange: map[string]*PeriodTotals{
		"2026-08-01/2026-08-31": {From: "2026-08-01", To: "2026-08-31", Bookings: 150, Revenue: 450000000},
		"2026-07-02/2026-08-01": {From: "2026-07-02", To: "2026-08-01", Bookings: 100, Revenue: 300000000},
	}}
	svc := NewService(repo)

	result, err := svc.ComparePeriods(context.Background(), DateRangeQuery{
		From: "2026-08-01",
		To:   "2026-08-31",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(150), result.Current.Bookings)
	assert.Equal(t, int64(100), result.Previous.Bookings)
	assert.InDelta(t, 50.0, result.BookingsChange, 0.001)
	assert.InDelta(t, 50.0, result.RevenueChange, 0.001)
}

func TestComparePeriodsEmptyPreviousShowsFullGrowth(t *testing.T) {
	repo := &fakeRepository{totalsByRange: map[string]*PeriodTotals{
		"2026-08-01/2026-08-31": {Bookings: 10, Revenue: 30000000},
	}}
	svc := NewService(repo)

	result, err := svc.ComparePeriods(context.Background(), DateRangeQuery{
		From: "2026-08-01",
		To:   "2026-08-31",
	})
	require.NoError(t, err)

	assert.Equal(t, 100.0, result.BookingsChange)
	assert.Equal(t, 100.0, result.RevenueChange)
}

func TestComparePeriodsRejectsInvertedRange(t *testing.T) {
	svc := NewService(&fakeRepository{})

	_, err := svc.ComparePeriods(context.Background(), DateRangeQuery{
		From: "2026-08-31",
		To:   "2026-08-01",
	})
	assert.Error(t, err)
}

func TestSeriesQueriesValidateDates(t *testing.T) {
	svc := NewService(&fakeRepository{})

	_, err := svc.GetRevenueByDate(context.Background(), DateRangeQuery{From: "bogus", To: "2026-08-01"})
	assert.Error(t, err)

	_, err = svc.GetBookingsByDate(context.Background(), DateRangeQuery{From: "2026-08-01", To: "2026-08-01"})
	assert.Error(t, err)
}

func TestPercentChange(t *testing.T) {
	assert.Equal(t, 0.0, percentChange(0, 0))
	assert.Equal(t, 100.0, percentChange(0, 5))
	assert.InDelta(t, -50.0, percentChange(200, 100), 0.001)
	assert.InDelta(t, 25.0, percentChange(400, 500), 0.001)
}
