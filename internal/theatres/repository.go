package theatres

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	CreateTheatre(theatre *Theatre) error
	GetTheatreByID(id uuid.UUID) (*Theatre, error)
	GetTheatreWithAuditoriums(id uuid.UUID) (*Theatre, error)
	GetAllTheatres() ([]Theatre, error)
	UpdateTheatre(id uuid.UUID, updates map[string]interface{}) (*Theatre, error)

	CreateAuditorium(audi *Auditorium) error
	GetAuditoriumByID(id uuid.UUID) (*Auditorium, error)
	GetAuditoriumsByIDs(ids []uuid.UUID) ([]Auditorium, error)
	GetAuditoriumsByTheatre(theatreID uuid.UUID) ([]Auditorium, error)
	GetAllAuditoriums() ([]Auditorium, error)
	UpdateAuditorium(id uuid.UUID, updates map[string]interface{}) (*Auditorium, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateTheatre(theatre *Theatre) error {
	return r.db.Create(theatre).Error
}

func (r *repository) GetTheatreByID(id uuid.UUID) (*Theatre, error) {
	var theatre Theatre
	err := r.db.Where("id = ?", id).First(&theatre).Error
	if err != nil {
		return nil, err
	}
	return &theatre, nil
}

func (r *repository) GetTheatreWithAuditoriums(id uuid.UUID) (*Theatre, error) {
	var theatre Theatre
	err := r.db.Preload("Auditoriums").Where("id = ?", id).First(&theatre).Error
	if err != nil {
		return nil, err
	}
	return &theatre, nil
}

func (r *repository) GetAllTheatres() ([]Theatre, error) {
	var theatres []Theatre
	err := r.db.Order("name ASC").Find(&theatres).Error
	return theatres, err
}

func (r *repository) UpdateTheatre(id uuid.UUID, updates map[string]interface{}) (*Theatre, error) {
	var theatre Theatre

	if err := r.db.Where("id = ?", id).First(&theatre).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&theatre).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.Where("id = ?", id).First(&theatre).Error; err != nil {
		return nil, err
	}

	return &theatre, nil
}

func (r *repository) CreateAuditorium(audi *Auditorium) error {
	return r.db.Create(audi).Error
}

func (r *repository) GetAuditoriumByID(id uuid.UUID) (*Auditorium, error) {
	var audi Auditorium
	err := r.db.Where("id = ?", id).First(&audi).Error
	if err != nil {
		return nil, err
	}
	return &audi, nil
}

func (r *repository) GetAuditoriumsByIDs(ids []uuid.UUID) ([]Auditorium, error) {
	var audis []Auditorium
	err := r.db.Where("id IN ?", ids).Find(&audis).Error
	return audis, err
}

func (r *repository) GetAuditoriumsByTheatre(theatreID uuid.UUID) ([]Auditorium, error) {
	var audis []Auditorium
	err := r.db.Where("theatre_id = ?", theatreID).Order("name ASC").Find(&audis).Error
	return audis, err
}

func (r *repository) GetAllAuditoriums() ([]Auditorium, error) {
	var audis []Auditorium
	err := r.db.Order("name ASC").Find(&audis).Error
	return audis, err
}

func (r *repository) UpdateAuditorium(id uuid.UUID, updates map[string]interface{}) (*Auditorium, error) {
	var audi Auditorium

	if err := r.db.Where("id = ?", id).First(&audi).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&audi).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.Where("id = ?", id).First(&audi).Error; err != nil {
		return nil, err
	}

	return &audi, nil
}
