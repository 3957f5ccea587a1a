package slots

import (
	"time"

	"github.com/google/uuid"
)

// Slot is a 3-hour screening block of one movie in one auditorium. At most
// one slot exists per (auditorium, date, slot_hour); the composite unique
// index backing that lives in the constraint migration.
type Slot struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	AuditoriumID   uuid.UUID `json:"auditorium_id" gorm:"type:uuid;not null"`
	MovieID        uuid.UUID `json:"movie_id" gorm:"type:uuid;not null"`
	SeatsAvailable int       `json:"seats_available" gorm:"not null;check:seats_available >= 0"`
	Date           time.Time `json:"date" gorm:"type:date;not null"`
	SlotHour       int       `json:"slot_hour" gorm:"not null"`
	MovieType      string    `json:"movie_type" gorm:"not null;size:10"`
	MovieLanguage  string    `json:"movie_language" gorm:"not null;size:100"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Slot) TableName() string {
	return "slots"
}

type CreateSlotBatchRequest struct {
	MovieID       string           `json:"movie_id" binding:"required,uuid"`
	OpeningDate   string           `json:"opening_date" binding:"required,datetime=2006-01-02,futuredate"`
	ClosingDate   string           `json:"closing_date" binding:"required,datetime=2006-01-02,futuredate"`
	MovieType     string           `json:"movie_type" binding:"required,min=1,max=10"`
	MovieLanguage string           `json:"movie_language" binding:"required,min=1,max=100"`
	AudiSlots     map[string][]int `json:"audi_slots" binding:"required,min=1"`
}

// BatchParams is the parsed form of CreateSlotBatchRequest handed to the
// service once the transport-level shape checks passed.
type BatchParams struct {
	MovieID           uuid.UUID
	OpeningDate       time.Time
	ClosingDate       time.Time
	MovieType         string
	MovieLanguage     string
	HoursByAuditorium map[uuid.UUID][]int
}

// AuditoriumFreeSlots pairs an auditorium with its free start hours over the
// queried date range.
type AuditoriumFreeSlots struct {
	AuditoriumID string `json:"auditorium_id"`
	Name         string `json:"name"`
	Seats        int    `json:"seats"`
	OpeningHour  int    `json:"opening_hour"`
	ClosingHour  int    `json:"closing_hour"`
	TheatreID    string `json:"theatre_id"`
	FreeSlots    []int  `json:"free_slots"`
}
