package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cinebook/internal/movies"
	"cinebook/internal/shared/apperrors"
	"cinebook/internal/theatres"
	"cinebook/pkg/cache"
	"cinebook/pkg/logger"
)

const dateLayout = "2006-01-02"

// MovieCatalog is the slice of the movie domain batch creation needs.
type MovieCatalog interface {
	GetMovieByID(id uuid.UUID) (*movies.Movie, error)
}

// AuditoriumDirectory is the slice of the theatre domain this package needs.
type AuditoriumDirectory interface {
	GetAuditoriumsByIDs(ids []uuid.UUID) ([]theatres.Auditorium, error)
	GetAllAuditoriums() ([]theatres.Auditorium, error)
}

// CascadeCoordinator cancels the bookings of a slot before it disappears.
type CascadeCoordinator interface {
	CancelForSlot(ctx context.Context, slotID uuid.UUID) error
}

type Service interface {
	FreeSlots(ctx context.Context, startDate, endDate time.Time) ([]AuditoriumFreeSlots, error)
	CreateBatch(ctx context.Context, params BatchParams) error
	DeleteSlot(ctx context.Context, slotID uuid.UUID) error

	// GetSlotByID exposes the raw record for the booking domain.
	GetSlotByID(id uuid.UUID) (*Slot, error)

	SetCascadeCoordinator(cc CascadeCoordinator)
	SetCacheService(cacheService cache.Service)

	// InvalidateFreeSlotCache drops cached availability after any slot write.
	InvalidateFreeSlotCache(ctx context.Context)
}

type service struct {
	repo        Repository
	movieCat    MovieCatalog
	audiDir     AuditoriumDirectory
	cascades    CascadeCoordinator
	cache       cache.Service
	freeSlotTTL time.Duration
	log         *logger.Logger
}

func NewService(repo Repository, movieCat MovieCatalog, audiDir AuditoriumDirectory, freeSlotTTL time.Duration) Service {
	return &service{
		repo:        repo,
		movieCat:    movieCat,
		audiDir:     audiDir,
		freeSlotTTL: freeSlotTTL,
		log:         logger.GetDefault(),
	}
}

func (s *service) SetCascadeCoordinator(cc CascadeCoordinator) {
	s.cascades = cc
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cache = cacheService
}

// FreeSlots reports the free start hours of every auditorium over the
// inclusive date range.
func (s *service) FreeSlots(ctx context.Context, startDate, endDate time.Time) ([]AuditoriumFreeSlots, error) {
	if startDate.After(endDate) {
		return nil, apperrors.New(apperrors.KindValidation, "INVALID_RANGE")
	}

	audis, err := s.audiDir.GetAllAuditoriums()
	if err != nil {
		return nil, err
	}

	results := make([]AuditoriumFreeSlots, 0, len(audis))
	for i := range audis {
		audi := &audis[i]

		free, err := s.freeHoursFor(ctx, audi, startDate, endDate)
		if err != nil {
			return nil, err
		}

		results = append(results, AuditoriumFreeSlots{
			AuditoriumID: audi.ID.String(),
			Name:         audi.Name,
			Seats:        audi.Seats,
			OpeningHour:  audi.OpeningHour,
			ClosingHour:  audi.ClosingHour,
			TheatreID:    audi.TheatreID.String(),
			FreeSlots:    free,
		})
	}

	return results, nil
}

// freeHoursFor computes candidate hours minus booked hours for one
// auditorium, served from cache when a fresh copy exists.
func (s *service) freeHoursFor(ctx context.Context, audi *theatres.Auditorium, startDate, endDate time.Time) ([]int, error) {
	cacheKey := freeSlotCacheKey(audi.ID, startDate, endDate)

	if s.cache != nil {
		var cached []int
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	booked, err := s.repo.DistinctBookedHours(audi.ID, startDate, endDate)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	free := FreeHours(CandidateHours(audi.OpeningHour, audi.ClosingHour), booked)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, free, s.freeSlotTTL); err != nil {
			s.log.Warn("free slot cache set failed", "key", cacheKey, "error", err.Error())
		}
	}

	return free, nil
}

// CreateBatch validates the request and creates one slot per (date in range,
// auditorium, requested hour), all seats set to the auditorium's capacity.
// The overlap check is deliberately loose: it only demands that some
// requested hour is free per auditorium, and lets the unique index reject
// colliding rows, aborting the whole batch.
func (s *service) CreateBatch(ctx context.Context, params BatchParams) error {
	movie, err := s.movieCat.GetMovieByID(params.MovieID)
	if err != nil {
		return err
	}

	if !movie.HasLanguage(params.MovieLanguage) {
		return apperrors.New(apperrors.KindValidation, "INVALID_LANGUAGE_CHOICE")
	}
	if !movie.HasType(params.MovieType) {
		return apperrors.New(apperrors.KindValidation, "INVALID_TYPE_CHOICE")
	}

	if params.OpeningDate.After(params.ClosingDate) {
		return apperrors.New(apperrors.KindValidation, "INVALID_OPEN_CLOSE_DATE")
	}

	today := time.Now().Truncate(24 * time.Hour)
	if !params.OpeningDate.After(today) || !params.ClosingDate.After(today) {
		return apperrors.New(apperrors.KindValidation, "INVALID_DATE")
	}

	audiIDs := make([]uuid.UUID, 0, len(params.HoursByAuditorium))
	for audiID := range params.HoursByAuditorium {
		audiIDs = append(audiIDs, audiID)
	}

	audis, err := s.audiDir.GetAuditoriumsByIDs(audiIDs)
	if err != nil {
		return err
	}
	if len(audis) != len(audiIDs) {
		return apperrors.New(apperrors.KindValidation, "INVALID_AUDI")
	}

	for i := range audis {
		audi := &audis[i]
		requested := params.HoursByAuditorium[audi.ID]

		free, err := s.freeHoursFor(ctx, audi, params.OpeningDate, params.ClosingDate)
		if err != nil {
			return err
		}
		if !intersects(requested, free) {
			return apperrors.New(apperrors.KindValidation, "INVALID_SLOT")
		}
	}

	var batch []Slot
	days := int(params.ClosingDate.Sub(params.OpeningDate).Hours()/24) + 1
	for day := 0; day < days; day++ {
		date := params.OpeningDate.AddDate(0, 0, day)
		for i := range audis {
			audi := &audis[i]
			for _, hour := range params.HoursByAuditorium[audi.ID] {
				batch = append(batch, Slot{
					AuditoriumID:   audi.ID,
					MovieID:        movie.ID,
					SeatsAvailable: audi.Seats,
					Date:           date,
					SlotHour:       hour,
					MovieType:      params.MovieType,
					MovieLanguage:  params.MovieLanguage,
				})
			}
		}
	}

	if err := s.repo.BulkCreate(batch); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.New(apperrors.KindConflict, "DUPLICATE_SLOT")
		}
		return apperrors.Internal(err)
	}

	s.log.Info("slot batch created",
		"movie_id", movie.ID.String(),
		"slots", len(batch),
		"auditoriums", len(audis),
	)

	s.InvalidateFreeSlotCache(ctx)
	return nil
}

// DeleteSlot hands the slot to the cascade coordinator, which cancels its
// bookings, notifies the bookers and removes the row.
func (s *service) DeleteSlot(ctx context.Context, slotID uuid.UUID) error {
	if _, err := s.GetSlotByID(slotID); err != nil {
		return err
	}

	if s.cascades == nil {
		return apperrors.Internal(errors.New("cascade coordinator not configured"))
	}

	if err := s.cascades.CancelForSlot(ctx, slotID); err != nil {
		return err
	}

	s.InvalidateFreeSlotCache(ctx)
	return nil
}

func (s *service) GetSlotByID(id uuid.UUID) (*Slot, error) {
	slot, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "NOT_FOUND")
		}
		return nil, apperrors.Internal(err)
	}
	return slot, nil
}

func (s *service) InvalidateFreeSlotCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, "cinebook:freeslots:*"); err != nil {
		s.log.Warn("free slot cache invalidation failed", "error", err.Error())
	}
}

func freeSlotCacheKey(audiID uuid.UUID, startDate, endDate time.Time) string {
	return fmt.Sprintf("cinebook:freeslots:%s:%s:%s",
		audiID.String(), startDate.Format(dateLayout), endDate.Format(dateLayout))
}
