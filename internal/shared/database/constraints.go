package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// Booking numbers are generated client-side from random bytes; enforce
	// uniqueness at the database level so collisions surface as errors.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_booking_number
		ON bookings (booking_number);
	`).Error
	if err != nil {
		return err
	}

	// Promotion codes must be unique regardless of case
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_promotions_code_upper
		ON promotions (UPPER(code));
	`).Error
	if err != nil {
		return err
	}

	// Index for search queries on route and date
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_flights_route_date
		ON flights (origin, destination, departure_date);
	`).Error
	if err != nil {
		return err
	}

	// Index for statistics aggregation over booking dates
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_created_at
		ON bookings (created_at);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
