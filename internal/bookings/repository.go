package bookings

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInsufficientSeats is returned when the conditional seat decrement
// matches no row, meaning a concurrent booking drained the slot first.
var ErrInsufficientSeats = errors.New("insufficient seats available")

const bookingDetailColumns = `
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
	users.name AS user_name`

type Repository interface {
	CreateWithSeatDecrement(booking *Booking) error
	GetDetailByBookingID(bookingID uuid.UUID) (*BookingDetail, error)
	GetDetailsByUser(userID uuid.UUID) ([]BookingDetail, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CreateWithSeatDecrement inserts the booking and takes its seats from the
// slot in one transaction. The decrement is conditional on enough seats
// remaining, so concurrent bookings against the same slot serialize at the
// storage layer and can never jointly overbook.
func (r *repository) CreateWithSeatDecrement(booking *Booking) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Table("slots").
			Where("id = ? AND seats_available >= ?", booking.SlotID, booking.SeatsBooked).
			Update("seats_available", gorm.Expr("seats_available - ?", booking.SeatsBooked))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInsufficientSeats
		}

		booking.Status = BookingStatusConfirmed
		return tx.Create(booking).Error
	})
}

func (r *repository) GetDetailByBookingID(bookingID uuid.UUID) (*BookingDetail, error) {
	var detail BookingDetail

	err := r.db.Table("bookings").
		Select(bookingDetailColumns).
		Joins("JOIN slots ON bookings.slot_id = slots.id").
		Joins("JOIN movies ON slots.movie_id = movies.id").
		Joins("JOIN auditoriums ON slots.auditorium_id = auditoriums.id").
		Joins("JOIN theatres ON auditoriums.theatre_id = theatres.id").
		Joins("JOIN users ON bookings.user_id = users.id").
		Where("bookings.id = ?", bookingID).
		Take(&detail).Error
	if err != nil {
		return nil, err
	}

	return &detail, nil
}

func (r *repository) GetDetailsByUser(userID uuid.UUID) ([]BookingDetail, error) {
	var details []BookingDetail

	err := r.db.Table("bookings").
		Select(bookingDetailColumns).
		Joins("JOIN slots ON bookings.slot_id = slots.id").
		Joins("JOIN movies ON slots.movie_id = movies.id").
		Joins("JOIN auditoriums ON slots.auditorium_id = auditoriums.id").
		Joins("JOIN theatres ON auditoriums.theatre_id = theatres.id").
		Joins("JOIN users ON bookings.user_id = users.id").
		Where("bookings.user_id = ?", userID).
		Order("bookings.created_at DESC").
		Scan(&details).Error

	return details, err
}
