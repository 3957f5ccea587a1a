package cancellation

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"cinebook/internal/bookings"
)

// Recipient is one distinct user to notify about a schedule change.
type Recipient struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type Repository interface {
	SlotIDsWithHourOutside(auditoriumID uuid.UUID, validHours []int) ([]uuid.UUID, error)
	SlotIDsByAuditorium(auditoriumID uuid.UUID) ([]uuid.UUID, error)

	DistinctRecipientsBySlotIDs(slotIDs []uuid.UUID) ([]Recipient, error)
	BookingDetailsBySlotIDs(slotIDs []uuid.UUID) ([]bookings.BookingDetail, error)

	CancelBookingsBySlotIDs(slotIDs []uuid.UUID) error
	CancelBookingsAndDeleteSlots(slotIDs []uuid.UUID, deleteAuditoriumID *uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// SlotIDsWithHourOutside returns the auditorium's slots whose hour is no
// longer in the valid set.
func (r *repository) SlotIDsWithHourOutside(auditoriumID uuid.UUID, validHours []int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	query := r.db.Table("slots").
		Where("auditorium_id = ?", auditoriumID)
	if len(validHours) > 0 {
		query = query.Where("slot_hour NOT IN ?", validHours)
	}
	err := query.Pluck("id", &ids).Error
	return ids, err
}

func (r *repository) SlotIDsByAuditorium(auditoriumID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Table("slots").
		Where("auditorium_id = ?", auditoriumID).
		Pluck("id", &ids).Error
	return ids, err
}

// DistinctRecipientsBySlotIDs returns each affected user once, however many
// confirmed bookings they hold on the given slots.
func (r *repository) DistinctRecipientsBySlotIDs(slotIDs []uuid.UUID) ([]Recipient, error) {
	if len(slotIDs) == 0 {
		return nil, nil
	}

	var recipients []Recipient
	err := r.db.Table("bookings").
		Select("DISTINCT users.email, users.name").
		Joins("JOIN users ON bookings.user_id = users.id").
		Where("bookings.slot_id IN ? AND bookings.status = ?", slotIDs, bookings.BookingStatusConfirmed).
		Scan(&recipients).Error

	return recipients, err
}

// BookingDetailsBySlotIDs snapshots every confirmed booking on the given
// slots with its full joined detail, read before any row disappears.
func (r *repository) BookingDetailsBySlotIDs(slotIDs []uuid.UUID) ([]bookings.BookingDetail, error) {
	if len(slotIDs) == 0 {
		return nil, nil
	}

	var details []bookings.BookingDetail
	err := r.db.Table("bookings").
		Select(`
			bookings.id AS booking_id,
			bookings.seats_booked,
			bookings.status,
			slots.id AS slot_id,
			slots.date,
			slots.slot_hour,
			slots.movie_type,
			slots.movie_language,
			movies.name AS movie_name,
			auditoriums.name AS auditorium_name,
			theatres.name AS theatre_name,
			users.email AS user_email,
			users.name AS user_name`).
		Joins("JOIN slots ON bookings.slot_id = slots.id").
		Joins("JOIN movies ON slots.movie_id = movies.id").
		Joins("JOIN auditoriums ON slots.auditorium_id = auditoriums.id").
		Joins("JOIN theatres ON auditoriums.theatre_id = theatres.id").
		Joins("JOIN users ON bookings.user_id = users.id").
		Where("bookings.slot_id IN ? AND bookings.status = ?", slotIDs, bookings.BookingStatusConfirmed).
		Scan(&details).Error

	return details, err
}

func (r *repository) CancelBookingsBySlotIDs(slotIDs []uuid.UUID) error {
	if len(slotIDs) == 0 {
		return nil
	}
	return r.db.Table("bookings").
		Where("slot_id IN ? AND status = ?", slotIDs, bookings.BookingStatusConfirmed).
		Update("status", bookings.BookingStatusCancelled).Error
}

// CancelBookingsAndDeleteSlots cancels the bookings and removes the slots in
// one transaction. When deleteAuditoriumID is set, the auditorium row goes
// with them.
func (r *repository) CancelBookingsAndDeleteSlots(slotIDs []uuid.UUID, deleteAuditoriumID *uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(slotIDs) > 0 {
			err := tx.Table("bookings").
				Where("slot_id IN ? AND status = ?", slotIDs, bookings.BookingStatusConfirmed).
				Update("status", bookings.BookingStatusCancelled).Error
			if err != nil {
				return err
			}

			if err := tx.Exec("DELETE FROM slots WHERE id IN ?", slotIDs).Error; err != nil {
				return err
			}
		}

		if deleteAuditoriumID != nil {
			if err := tx.Exec("DELETE FROM auditoriums WHERE id = ?", *deleteAuditoriumID).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
