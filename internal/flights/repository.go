package flights

import (
	"fmt"
	"strings"

	"flyviet/internal/pricing"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(flight *Flight) error
	GetByID(id uuid.UUID) (*Flight, error)
	GetByCode(code string) (*Flight, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*Flight, error)
	Delete(id uuid.UUID) error
	GetAll(query FlightListQuery) ([]Flight, int64, error)
	SearchScheduled(origin, destination, date string) ([]Flight, error)
	ReserveSeats(flightID uuid.UUID, class pricing.SeatClass, count int) error
	ReleaseSeats(flightID uuid.UUID, class pricing.SeatClass, count int) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(flight *Flight) error {
	return r.db.Create(flight).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Flight, error) {
	var flight Flight
	err := r.db.Where("id = ?", id).First(&flight).Error
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

func (r *repository) GetByCode(code string) (*Flight, error) {
	var flight Flight
	err := r.db.Where("flight_code = ?", strings.ToUpper(code)).First(&flight).Error
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

func (r *repository) Update(id uuid.UUID, updates map[string]interface{}) (*Flight, error) {
	var flight Flight

	if err := r.db.Where("id = ?", id).First(&flight).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&flight).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.Where("id = ?", id).First(&flight).Error; err != nil {
		return nil, err
	}

	return &flight, nil
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&Flight{}).Error
}

func (r *repository) GetAll(query FlightListQuery) ([]Flight, int64, error) {
	var flights []Flight
	var totalCount int64

	db := r.db.Model(&Flight{})

	if query.Search != "" {
		searchTerm := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(flight_code) LIKE ? OR LOWER(airline) LIKE ? OR LOWER(origin) LIKE ? OR LOWER(destination) LIKE ?",
			searchTerm, searchTerm, searchTerm, searchTerm)
	}

	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}

	if query.Origin != "" {
		db = db.Where("origin = ?", strings.ToUpper(query.Origin))
	}

	if query.Date != "" {
		db = db.Where("departure_date = ?", query.Date)
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}

	offset := (query.Page - 1) * query.Limit

	err := db.Order("departure_date ASC, departure_time ASC").
		Offset(offset).
		Limit(query.Limit).
		Find(&flights).Error

	return flights, totalCount, err
}

// SearchScheduled returns every scheduled flight on the route and date.
// Status filtering happens here; price/airline/time filters happen in the
// service so the two empty cases stay distinguishable.
func (r *repository) SearchScheduled(origin, destination, date string) ([]Flight, error) {
	var flights []Flight
	err := r.db.
		Where("origin = ? AND destination = ? AND departure_date = ? AND status = ?",
			strings.ToUpper(origin), strings.ToUpper(destination), date, FlightStatusScheduled).
		Order("departure_time ASC").
		Find(&flights).Error
	return flights, err
}

// ReserveSeats decrements seat inventory for a class inside a row-locked
// transaction, rejecting the reservation when inventory is insufficient.
func (r *repository) ReserveSeats(flightID uuid.UUID, class pricing.SeatClass, count int) error {
	column, err := seatColumn(class)
	if err != nil {
		return err
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var flight Flight

		if err := tx.Set("gorm:query_option", "FOR UPDATE").
			Where("id = ?", flightID).
			First(&flight).Error; err != nil {
			return err
		}

		available := flight.SeatsFor(class)
		if available < count {
			return fmt.Errorf("%w: %d requested, %d available", ErrInsufficientSeats, count, available)
		}

		return tx.Model(&flight).Update(column, available-count).Error
	})
}

// ReleaseSeats returns inventory after a cancellation
func (r *repository) ReleaseSeats(flightID uuid.UUID, class pricing.SeatClass, count int) error {
	column, err := seatColumn(class)
	if err != nil {
		return err
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var flight Flight

		if err := tx.Set("gorm:query_option", "FOR UPDATE").
			Where("id = ?", flightID).
			First(&flight).Error; err != nil {
			return err
		}

		return tx.Model(&flight).Update(column, flight.SeatsFor(class)+count).Error
	})
}

func seatColumn(class pricing.SeatClass) (string, error) {
	switch class {
	case pricing.SeatClassEconomy:
		return "seats_economy", nil
	case pricing.SeatClassPremiumEconomy:
		return "seats_premium_economy", nil
	case pricing.SeatClassBusiness:
		return "seats_business", nil
	case pricing.SeatClassFirst:
		return "seats_first", nil
	}
	return "", fmt.Errorf("invalid seat class: %s", class)
}
