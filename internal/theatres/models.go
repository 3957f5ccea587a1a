package theatres

import (
	"time"

	"github.com/google/uuid"
)

type Theatre struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name       string    `json:"name" gorm:"not null;size:64"`
	City       string    `json:"city" gorm:"not null;size:128"`
	State      string    `json:"state" gorm:"not null;size:128"`
	Zipcode    *int      `json:"zipcode"`
	Functional bool      `json:"functional" gorm:"default:true"`

	Auditoriums []Auditorium `json:"-" gorm:"foreignKey:TheatreID"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Theatre) TableName() string {
	return "theatres"
}

// Auditorium is a screening room. Name is unique within a theatre, and the
// operating window [OpeningHour, ClosingHour) bounds which slot hours the
// room can host.
type Auditorium struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string    `json:"name" gorm:"not null;size:64;uniqueIndex:unique_audi_name_per_theatre"`
	Seats       int       `json:"seats" gorm:"not null;check:seats > 0"`
	OpeningHour int       `json:"opening_hour" gorm:"not null;default:9;check:opening_hour >= 0 AND opening_hour <= 24"`
	ClosingHour int       `json:"closing_hour" gorm:"not null;default:21;check:closing_hour >= 0 AND closing_hour <= 24"`
	TheatreID   uuid.UUID `json:"theatre_id" gorm:"type:uuid;not null;uniqueIndex:unique_audi_name_per_theatre"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Auditorium) TableName() string {
	return "auditoriums"
}

type CreateTheatreRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=64"`
	City    string `json:"city" binding:"required,min=1,max=128"`
	State   string `json:"state" binding:"required,min=1,max=128"`
	Zipcode *int   `json:"zipcode" binding:"omitempty,min=0"`
}

type UpdateTheatreRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=1,max=64"`
	City       *string `json:"city" binding:"omitempty,min=1,max=128"`
	State      *string `json:"state" binding:"omitempty,min=1,max=128"`
	Zipcode    *int    `json:"zipcode" binding:"omitempty,min=0"`
	Functional *bool   `json:"functional"`
}

type CreateAuditoriumRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=64"`
	Seats       int    `json:"seats" binding:"required,min=1"`
	OpeningHour *int   `json:"opening_hour" binding:"omitempty,min=0,max=24"`
	ClosingHour *int   `json:"closing_hour" binding:"omitempty,min=0,max=24"`
}

type UpdateAuditoriumRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=64"`
	Seats       *int    `json:"seats" binding:"omitempty,min=1"`
	OpeningHour *int    `json:"opening_hour" binding:"omitempty,min=0,max=24"`
	ClosingHour *int    `json:"closing_hour" binding:"omitempty,min=0,max=24"`
}

type TheatreResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	City       string `json:"city"`
	State      string `json:"state"`
	Zipcode    *int   `json:"zipcode"`
	Functional bool   `json:"functional"`
}

type AuditoriumResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Seats       int    `json:"seats"`
	OpeningHour int    `json:"opening_hour"`
	ClosingHour int    `json:"closing_hour"`
	TheatreID   string `json:"theatre_id"`
}

type TheatreDetailResponse struct {
	TheatreResponse
	Auditoriums []AuditoriumResponse `json:"auditoriums"`
}

func (t *Theatre) ToResponse() TheatreResponse {
	return TheatreResponse{
		ID:         t.ID.String(),
		Name:       t.Name,
		City:       t.City,
		State:      t.State,
		Zipcode:    t.Zipcode,
		Functional: t.Functional,
	}
}

func (a *Auditorium) ToResponse() AuditoriumResponse {
	return AuditoriumResponse{
		ID:          a.ID.String(),
		Name:        a.Name,
		Seats:       a.Seats,
		OpeningHour: a.OpeningHour,
		ClosingHour: a.ClosingHour,
		TheatreID:   a.TheatreID.String(),
	}
}
