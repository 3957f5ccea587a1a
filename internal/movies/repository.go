package movies

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(movie *Movie) error
	GetByID(id uuid.UUID) (*Movie, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*Movie, error)
	GetAll() ([]Movie, error)
	GetWithUpcomingScreenings(today time.Time, currentHour int) ([]Movie, error)
	GetUpcomingScreenings(movieID uuid.UUID, today time.Time, currentHour int) ([]ScreeningSlot, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(movie *Movie) error {
	return r.db.Create(movie).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Movie, error) {
	var movie Movie
	err := r.db.Where("id = ?", id).First(&movie).Error
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *repository) Update(id uuid.UUID, updates map[string]interface{}) (*Movie, error) {
	var movie Movie

	if err := r.db.Where("id = ?", id).First(&movie).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&movie).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.Where("id = ?", id).First(&movie).Error; err != nil {
		return nil, err
	}

	return &movie, nil
}

func (r *repository) GetAll() ([]Movie, error) {
	var movies []Movie
	err := r.db.Order("name ASC").Find(&movies).Error
	return movies, err
}

// GetWithUpcomingScreenings returns only movies that still have at least one
// screening ahead: a slot on a future date, or one later today.
func (r *repository) GetWithUpcomingScreenings(today time.Time, currentHour int) ([]Movie, error) {
	var movies []Movie

	subquery := r.db.Table("slots").
		Where("slots.date > ? OR (slots.date = ? AND slots.slot_hour > ?)", today, today, currentHour).
		Select("slots.movie_id")

	err := r.db.Where("id IN (?)", subquery).
		Order("name ASC").
		Find(&movies).Error

	return movies, err
}

func (r *repository) GetUpcomingScreenings(movieID uuid.UUID, today time.Time, currentHour int) ([]ScreeningSlot, error) {
	var screenings []ScreeningSlot

	err := r.db.Table("slots").
		Select("id, auditorium_id, seats_available, date, slot_hour, movie_type, movie_language").
		Where("movie_id = ?", movieID).
		Where("date > ? OR (date = ? AND slot_hour > ?)", today, today, currentHour).
		Order("date ASC, slot_hour ASC").
		Scan(&screenings).Error

	return screenings, err
}
