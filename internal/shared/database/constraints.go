package database

import (
	"strings"

	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// At most one slot per auditorium, date and hour. Bulk slot creation
	// relies on this to reject duplicate screenings at write time.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_slot_per_audi_date_hour
		ON slots (auditorium_id, date, slot_hour);
	`).Error
	if err != nil {
		return err
	}

	// seats_available can never go negative even if a conditional decrement
	// is bypassed by a future code path.
	err = db.Exec(`
		ALTER TABLE slots
		ADD CONSTRAINT seats_available_non_negative
		CHECK (seats_available >= 0) NOT VALID;
	`).Error
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		return err
	}

	// Index for cascade lookups: bookings by slot.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_slot_id
		ON bookings (slot_id);
	`).Error
	if err != nil {
		return err
	}

	// Index for the availability calculator: slot hours by auditorium/date.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_slots_audi_date
		ON slots (auditorium_id, date);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
