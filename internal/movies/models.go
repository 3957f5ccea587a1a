package movies

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Movie struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name       string         `json:"name" gorm:"not null;size:64"`
	Duration   float64        `json:"duration" gorm:"not null;check:duration >= 0.01 AND duration <= 3.00"`
	About      string         `json:"about" gorm:"type:text"`
	Languages  pq.StringArray `json:"languages" gorm:"type:text[];not null"`
	MovieTypes pq.StringArray `json:"movie_types" gorm:"type:text[];not null"`
	CreatedAt  time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Movie) TableName() string {
	return "movies"
}

// HasLanguage reports whether the movie is released in the given language.
func (m *Movie) HasLanguage(language string) bool {
	for _, l := range m.Languages {
		if l == language {
			return true
		}
	}
	return false
}

// HasType reports whether the movie is released in the given format (2D, 3D, ...).
func (m *Movie) HasType(movieType string) bool {
	for _, t := range m.MovieTypes {
		if t == movieType {
			return true
		}
	}
	return false
}

type CreateMovieRequest struct {
	Name       string   `json:"name" binding:"required,min=1,max=64"`
	Duration   float64  `json:"duration" binding:"required,gte=0.01,lte=3.00"`
	About      string   `json:"about" binding:"max=2048"`
	Languages  []string `json:"languages" binding:"required,min=1,dive,min=1,max=100"`
	MovieTypes []string `json:"movie_types" binding:"required,min=1,dive,min=1,max=10"`
}

type UpdateMovieRequest struct {
	Name       *string  `json:"name" binding:"omitempty,min=1,max=64"`
	Duration   *float64 `json:"duration" binding:"omitempty,gte=0.01,lte=3.00"`
	About      *string  `json:"about" binding:"omitempty,max=2048"`
	Languages  []string `json:"languages" binding:"omitempty,min=1,dive,min=1,max=100"`
	MovieTypes []string `json:"movie_types" binding:"omitempty,min=1,dive,min=1,max=10"`
}

type MovieResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Duration   float64  `json:"duration"`
	About      string   `json:"about"`
	Languages  []string `json:"languages"`
	MovieTypes []string `json:"movie_types"`
}

// ScreeningSlot is a flat projection of a slot row shown on the movie detail
// page. Only screenings that have not started yet are listed.
type ScreeningSlot struct {
	ID             uuid.UUID `json:"id"`
	AuditoriumID   uuid.UUID `json:"auditorium_id"`
	SeatsAvailable int       `json:"seats_available"`
	Date           time.Time `json:"date"`
	SlotHour       int       `json:"slot_hour"`
	MovieType      string    `json:"movie_type"`
	MovieLanguage  string    `json:"movie_language"`
}

type MovieDetailResponse struct {
	MovieResponse
	Slots []ScreeningSlot `json:"slots"`
}

func (m *Movie) ToResponse() MovieResponse {
	return MovieResponse{
		ID:         m.ID.String(),
		Name:       m.Name,
		Duration:   m.Duration,
		About:      m.About,
		Languages:  []string(m.Languages),
		MovieTypes: []string(m.MovieTypes),
	}
}
