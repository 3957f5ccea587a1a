package bookings

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Booking records seats taken against a slot. Status only ever moves
// Confirmed -> Cancelled, and only the cancellation coordinator moves it.
type Booking struct {
	ID          uuid.UUID     `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID      uuid.UUID     `json:"user_id" gorm:"type:uuid;not null"`
	SlotID      uuid.UUID     `json:"slot_id" gorm:"type:uuid;not null"`
	SeatsBooked int           `json:"seats_booked" gorm:"not null;check:seats_booked > 0"`
	Status      BookingStatus `json:"status" gorm:"type:varchar(20);default:'CONFIRMED'"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Booking) TableName() string {
	return "bookings"
}

type BookSeatsRequest struct {
	SeatsBooked int `json:"seats_booked" binding:"required,min=1"`
}

// BookingDetail is the flattened booking+slot+movie+auditorium row used for
// listings and notification snapshots. It is read in one joined query, never
// assembled by walking relations.
type BookingDetail struct {
	BookingID   uuid.UUID     `json:"booking_id"`
	SeatsBooked int           `json:"seats_booked"`
	Status      BookingStatus `json:"status"`

	SlotID        uuid.UUID `json:"slot_id"`
	Date          time.Time `json:"date"`
	SlotHour      int       `json:"slot_hour"`
	MovieType     string    `json:"movie_type"`
	MovieLanguage string    `json:"movie_language"`

	MovieName      string `json:"movie_name"`
	AuditoriumName string `json:"auditorium_name"`
	TheatreName    string `json:"theatre_name"`

	UserEmail string `json:"user_email"`
	UserName  string `json:"user_name"`
}

type BookingResponse struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	SlotID      string        `json:"slot_id"`
	SeatsBooked int           `json:"seats_booked"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}

func (b *Booking) ToResponse() BookingResponse {
	return BookingResponse{
		ID:          b.ID.String(),
		UserID:      b.UserID.String(),
		SlotID:      b.SlotID.String(),
		SeatsBooked: b.SeatsBooked,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
	}
}
