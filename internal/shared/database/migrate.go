package database

import (
	"cinebook/internal/bookings"
	"cinebook/internal/movies"
	"cinebook/internal/slots"
	"cinebook/internal/theatres"
	"cinebook/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&movies.Movie{},
		&theatres.Theatre{},
		&theatres.Auditorium{},
		&slots.Slot{},
		&bookings.Booking{},
	)
}
