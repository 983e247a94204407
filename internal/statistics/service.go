package statistics

import (
	"context"
	"fmt"
	"time"

	"flyviet/internal/shared/constants"
	"flyviet/pkg/cache"
)

type Service interface {
	GetOverview(ctx context.Context) (*Overview, error)
	GetRevenueByDate(ctx context.Context, query DateRangeQuery) ([]DailyPoint, error)
	GetBookingsByDate(ctx context.Context, query DateRangeQuery) ([]DailyPoint, error)
	GetBookingsByPaymentStatus(ctx context.Context) ([]PaymentStatusCount, error)
	GetPopularRoutes(ctx context.Context, limit int) ([]RouteStat, error)
	ComparePeriods(ctx context.Context, query DateRangeQuery) (*PeriodComparison, error)

	SetCacheService(cacheService cache.Service)
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

func (s *service) GetOverview(ctx context.Context) (*Overview, error) {
	if s.cacheService != nil {
		var cached Overview
		if err := s.cacheService.Get(ctx, constants.CACHE_KEY_STATS_OVERVIEW, &cached); err == nil {
			return &cached, nil
		}
	}

	overview, err := s.repo.GetOverview(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get statistics overview: %w", err)
	}

	if s.cacheService != nil {
		s.cacheService.Set(ctx, constants.CACHE_KEY_STATS_OVERVIEW, overview, constants.TTL_STATS_OVERVIEW)
	}
	return overview, nil
}

func (s *service) GetRevenueByDate(ctx context.Context, query DateRangeQuery) ([]DailyPoint, error) {
	if err := validateRange(query); err != nil {
		return nil, err
	}

	cacheKey := constants.BuildRevenueSeriesKey(query.From, query.To)
	if s.cacheService != nil {
		var cached []DailyPoint
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	points, err := s.repo.GetRevenueByDate(ctx, query.From, query.To)
	if err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		s.cacheService.Set(ctx, cacheKey, points, constants.TTL_STATS_SERIES)
	}
	return points, nil
}

func (s *service) GetBookingsByDate(ctx context.Context, query DateRangeQuery) ([]DailyPoint, error) {
	if err := validateRange(query); err != nil {
		return nil, err
	}

	cacheKey := constants.BuildBookingSeriesKey(query.From, query.To)
	if s.cacheService != nil {
		var cached []DailyPoint
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	points, err := s.repo.GetBookingsByDate(ctx, query.From, query.To)
	if err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		s.cacheService.Set(ctx, cacheKey, points, constants.TTL_STATS_SERIES)
	}
	return points, nil
}

func (s *service) GetBookingsByPaymentStatus(ctx context.Context) ([]PaymentStatusCount, error) {
	return s.repo.GetBookingsByPaymentStatus(ctx)
}

func (s *service) GetPopularRoutes(ctx context.Context, limit int) ([]RouteStat, error) {
	if s.cacheService != nil && limit <= 0 {
		var cached []RouteStat
		if err := s.cacheService.Get(ctx, constants.CACHE_KEY_STATS_ROUTES, &cached); err == nil {
			return cached, nil
		}
	}

	routes, err := s.repo.GetPopularRoutes(ctx, limit)
	if err != nil {
		return nil, err
	}

	if s.cacheService != nil && limit <= 0 {
		s.cacheService.Set(ctx, constants.CACHE_KEY_STATS_ROUTES, routes, constants.TTL_STATS_SERIES)
	}
	return routes, nil
}

// ComparePeriods contrasts the requested range with the immediately
// preceding range of the same length.
func (s *service) ComparePeriods(ctx context.Context, query DateRangeQuery) (*PeriodComparison, error) {
	from, to, err := parseRange(query)
	if err != nil {
		return nil, err
	}

	length := to.Sub(from)
	prevFrom := from.Add(-length)

	current, err := s.repo.GetPeriodTotals(ctx, formatDate(from), formatDate(to))
	if err != nil {
		return nil, err
	}
	previous, err := s.repo.GetPeriodTotals(ctx, formatDate(prevFrom), formatDate(from))
	if err != nil {
		return nil, err
	}

	return &PeriodComparison{
		Current:        *current,
		Previous:       *previous,
		BookingsChange: percentChange(float64(previous.Bookings), float64(current.Bookings)),
		RevenueChange:  percentChange(previous.Revenue, current.Revenue),
	}, nil
}

func validateRange(query DateRangeQuery) error {
	_, _, err := parseRange(query)
	return err
}

func parseRange(query DateRangeQuery) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", query.From)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid from date: %s", query.From)
	}
	to, err := time.Parse("2006-01-02", query.To)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid to date: %s", query.To)
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("to date must be after from date")
	}
	return from, to, nil
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func percentChange(previous, current float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return (current - previous) / previous * 100
}
