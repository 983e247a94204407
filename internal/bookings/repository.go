package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByNumber(ctx context.Context, number string) (*Booking, error)
	GetAll(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string, paidAt *time.Time) error
	Cancel(ctx context.Context, id uuid.UUID, cancelledAt time.Time) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create persists the booking together with its passenger and payment rows
// in one transaction.
func (r *repository) Create(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Passengers").
		Preload("Payment").
		Preload("OutboundFlight").
		Preload("ReturnFlight").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByNumber(ctx context.Context, number string) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Passengers").
		Preload("Payment").
		Preload("OutboundFlight").
		Preload("ReturnFlight").
		Where("booking_number = ?", number).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetAll(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	var bookings []Booking
	var totalCount int64

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	baseQuery := r.applyFilters(r.db.WithContext(ctx).Model(&Booking{}), query)

	if err := baseQuery.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err := baseQuery.
		Preload("Passengers").
		Preload("Payment").
		Preload("OutboundFlight").
		Preload("ReturnFlight").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, err
	}

	return bookings, totalCount, nil
}

func (r *repository) applyFilters(q *gorm.DB, query BookingListQuery) *gorm.DB {
	if query.Status != "" {
		q = q.Where("status = ?", query.Status)
	}
	if query.PaymentStatus != "" {
		q = q.Where("id IN (?)", r.db.Model(&Payment{}).
			Select("booking_id").
			Where("status = ?", query.PaymentStatus))
	}
	if query.DateFrom != "" {
		q = q.Where("created_at >= ?", query.DateFrom)
	}
	if query.DateTo != "" {
		q = q.Where("created_at < ?", query.DateTo)
	}
	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		q = q.Where("booking_number ILIKE ? OR contact_name ILIKE ? OR contact_email ILIKE ?",
			pattern, pattern, pattern)
	}
	return q
}

func (r *repository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string, paidAt *time.Time) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if paidAt != nil {
		updates["paid_at"] = *paidAt
	}

	result := r.db.WithContext(ctx).
		Model(&Payment{}).
		Where("booking_id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *repository) Cancel(ctx context.Context, id uuid.UUID, cancelledAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ? AND status = ?", id, StatusConfirmed).
		Updates(map[string]interface{}{
			"status":       StatusCancelled,
			"cancelled_at": cancelledAt,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyCancelled
	}
	return nil
}
