package slots

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetByID(id uuid.UUID) (*Slot, error)
	DistinctBookedHours(auditoriumID uuid.UUID, startDate, endDate time.Time) ([]int, error)
	BulkCreate(slots []Slot) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(id uuid.UUID) (*Slot, error) {
	var slot Slot
	err := r.db.Where("id = ?", id).First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// DistinctBookedHours returns the slot hours already taken for the
// auditorium anywhere in the inclusive date range. The result is range-wide:
// an hour occupied on any date in range counts as taken for the whole query.
func (r *repository) DistinctBookedHours(auditoriumID uuid.UUID, startDate, endDate time.Time) ([]int, error) {
	var hours []int
	err := r.db.Model(&Slot{}).
		Distinct("slot_hour").
		Where("auditorium_id = ? AND date BETWEEN ? AND ?", auditoriumID, startDate, endDate).
		Pluck("slot_hour", &hours).Error
	return hours, err
}

// BulkCreate inserts the whole batch in one transaction. A duplicate on the
// (auditorium_id, date, slot_hour) unique index aborts everything.
func (r *repository) BulkCreate(slots []Slot) error {
	if len(slots) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(slots, 500).Error
	})
}
