package database

import (
	"flyviet/internal/auth"
	"flyviet/internal/bookings"
	"flyviet/internal/flights"
	"flyviet/internal/promotions"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&auth.AdminUser{},
		&flights.Flight{},
		&promotions.Promotion{},
		&bookings.Booking{},
		&bookings.BookingPassenger{},
		&bookings.Payment{},
	)
}
