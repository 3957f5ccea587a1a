package movies

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"cinebook/internal/shared/apperrors"
	"cinebook/pkg/logger"
)

type Service interface {
	CreateMovie(req CreateMovieRequest) (*MovieResponse, error)
	UpdateMovie(id uuid.UUID, req UpdateMovieRequest) (*MovieResponse, error)
	GetMovie(id uuid.UUID, isAdmin bool) (*MovieDetailResponse, error)
	ListMovies(isAdmin bool) ([]MovieResponse, error)

	// GetMovieByID exposes the raw record for other domains (slot creation
	// validates language and format membership against it).
	GetMovieByID(id uuid.UUID) (*Movie, error)
}

type service struct {
	repo Repository
	log  *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		log:  logger.GetDefault(),
	}
}

func (s *service) CreateMovie(req CreateMovieRequest) (*MovieResponse, error) {
	movie := &Movie{
		Name:       req.Name,
		Duration:   req.Duration,
		About:      req.About,
		Languages:  req.Languages,
		MovieTypes: req.MovieTypes,
	}

	if err := s.repo.Create(movie); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.log.Info("movie created", "movie_id", movie.ID.String(), "name", movie.Name)

	resp := movie.ToResponse()
	return &resp, nil
}

func (s *service) UpdateMovie(id uuid.UUID, req UpdateMovieRequest) (*MovieResponse, error) {
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Duration != nil {
		updates["duration"] = *req.Duration
	}
	if req.About != nil {
		updates["about"] = *req.About
	}
	if req.Languages != nil {
		updates["languages"] = pq.StringArray(req.Languages)
	}
	if req.MovieTypes != nil {
		updates["movie_types"] = pq.StringArray(req.MovieTypes)
	}

	movie, err := s.repo.Update(id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "NOT_FOUND")
		}
		return nil, apperrors.Internal(err)
	}

	resp := movie.ToResponse()
	return &resp, nil
}

// GetMovie returns the movie together with its upcoming screenings. Regular
// users only see movies that still have a screening ahead; admins see all.
func (s *service) GetMovie(id uuid.UUID, isAdmin bool) (*MovieDetailResponse, error) {
	movie, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "NOT_FOUND")
		}
		return nil, apperrors.Internal(err)
	}

	now := time.Now()
	today := truncateToDate(now)

	screenings, err := s.repo.GetUpcomingScreenings(movie.ID, today, now.Hour())
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if !isAdmin && len(screenings) == 0 {
		return nil, apperrors.New(apperrors.KindNotFound, "NOT_FOUND")
	}

	if screenings == nil {
		screenings = []ScreeningSlot{}
	}

	return &MovieDetailResponse{
		MovieResponse: movie.ToResponse(),
		Slots:         screenings,
	}, nil
}

// ListMovies returns the full catalogue for admins. Regular users only see
// movies with at least one upcoming screening.
func (s *service) ListMovies(isAdmin bool) ([]MovieResponse, error) {
	var (
		records []Movie
		err     error
	)

	if isAdmin {
		records, err = s.repo.GetAll()
	} else {
		now := time.Now()
		records, err = s.repo.GetWithUpcomingScreenings(truncateToDate(now), now.Hour())
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	responses := make([]MovieResponse, len(records))
	for i := range records {
		responses[i] = records[i].ToResponse()
	}
	return responses, nil
}

func (s *service) GetMovieByID(id uuid.UUID) (*Movie, error) {
	movie, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "NOT_FOUND")
		}
		return nil, apperrors.Internal(err)
	}
	return movie, nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
