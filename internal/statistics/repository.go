package statistics

import (
	"context"
	"fmt"
	"time"

	"flyviet/internal/bookings"
	"flyviet/internal/flights"
	"flyviet/internal/promotions"

	"gorm.io/gorm"
)

type Repository interface {
	GetOverview(ctx context.Context) (*Overview, error)
	GetRevenueByDate(ctx context.Context, from, to string) ([]DailyPoint, error)
	GetBookingsByDate(ctx context.Context, from, to string) ([]DailyPoint, error)
	GetBookingsByPaymentStatus(ctx context.Context) ([]PaymentStatusCount, error)
	GetPopularRoutes(ctx context.Context, limit int) ([]RouteStat, error)
	GetPeriodTotals(ctx context.Context, from, to string) (*PeriodTotals, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetOverview(ctx context.Context) (*Overview, error) {
	var overview Overview
	db := r.db.WithContext(ctx)

	if err := db.Model(&bookings.Booking{}).Count(&overview.TotalBookings).Error; err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}
	if err := db.Model(&bookings.Booking{}).
		Where("status = ?", bookings.StatusConfirmed).
		Count(&overview.ConfirmedBookings).Error; err != nil {
		return nil, err
	}
	overview.CancelledBookings = overview.TotalBookings - overview.ConfirmedBookings

	// Revenue counts only settled money on non-cancelled bookings
	err := db.Model(&bookings.Booking{}).
		Joins("JOIN payments ON payments.booking_id = bookings.id").
		Where("bookings.status = ? AND payments.status = ?", bookings.StatusConfirmed, "paid").
		Select("COALESCE(SUM(bookings.total_amount), 0)").
		Scan(&overview.TotalRevenue).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	err = db.Model(&bookings.Booking{}).
		Joins("JOIN payments ON payments.booking_id = bookings.id").
		Where("bookings.status = ? AND payments.status = ?", bookings.StatusConfirmed, "unpaid").
		Select("COALESCE(SUM(bookings.total_amount), 0)").
		Scan(&overview.UnpaidRevenue).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&bookings.Booking{}).
		Where("status = ?", bookings.StatusConfirmed).
		Select("COALESCE(SUM(num_adults + num_children + num_infants), 0)").
		Scan(&overview.TotalPassengers).Error
	if err != nil {
		return nil, err
	}

	if err := db.Model(&flights.Flight{}).Count(&overview.TotalFlights).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	err = db.Model(&promotions.Promotion{}).
		Where("active = ? AND valid_from <= ? AND valid_until >= ?", true, now, now).
		Count(&overview.ActivePromotions).Error
	if err != nil {
		return nil, err
	}

	return &overview, nil
}

func (r *repository) GetRevenueByDate(ctx context.Context, from, to string) ([]DailyPoint, error) {
	var points []DailyPoint
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			TO_CHAR(DATE(b.created_at), 'YYYY-MM-DD') AS date,
			COALESCE(SUM(b.total_amount), 0) AS value,
			COUNT(*) AS count
		FROM bookings b
		JOIN payments p ON p.booking_id = b.id
		WHERE b.status = ? AND p.status = ?
			AND b.created_at >= ? AND b.created_at < ?
		GROUP BY DATE(b.created_at)
		ORDER BY DATE(b.created_at)
	`, bookings.StatusConfirmed, "paid", from, to).Scan(&points).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get revenue series: %w", err)
	}
	return points, nil
}

func (r *repository) GetBookingsByDate(ctx context.Context, from, to string) ([]DailyPoint, error) {
	var points []DailyPoint
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			TO_CHAR(DATE(created_at), 'YYYY-MM-DD') AS date,
			COUNT(*) AS value,
			COUNT(*) AS count
		FROM bookings
		WHERE created_at >= ? AND created_at < ?
		GROUP BY DATE(created_at)
		ORDER BY DATE(created_at)
	`, from, to).Scan(&points).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get booking series: %w", err)
	}
	return points, nil
}

func (r *repository) GetBookingsByPaymentStatus(ctx context.Context) ([]PaymentStatusCount, error) {
	var counts []PaymentStatusCount
	err := r.db.WithContext(ctx).
		Model(&bookings.Payment{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Order("status").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to group by payment status: %w", err)
	}
	return counts, nil
}

func (r *repository) GetPopularRoutes(ctx context.Context, limit int) ([]RouteStat, error) {
	if limit <= 0 {
		limit = 10
	}

	var routes []RouteStat
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			f.origin,
			f.destination,
			COUNT(*) AS bookings,
			COALESCE(SUM(b.total_amount), 0) AS revenue
		FROM bookings b
		JOIN flights f ON f.id = b.outbound_flight_id
		WHERE b.status = ?
		GROUP BY f.origin, f.destination
		ORDER BY bookings DESC, revenue DESC
		LIMIT ?
	`, bookings.StatusConfirmed, limit).Scan(&routes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get popular routes: %w", err)
	}
	return routes, nil
}

func (r *repository) GetPeriodTotals(ctx context.Context, from, to string) (*PeriodTotals, error) {
	totals := &PeriodTotals{From: from, To: to}
	db := r.db.WithContext(ctx)

	err := db.Model(&bookings.Booking{}).
		Where("status = ? AND created_at >= ? AND created_at < ?", bookings.StatusConfirmed, from, to).
		Count(&totals.Bookings).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&bookings.Booking{}).
		Where("status = ? AND created_at >= ? AND created_at < ?", bookings.StatusConfirmed, from, to).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&totals.Revenue).Error
	if err != nil {
		return nil, err
	}

	return totals, nil
}
