package theatres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cinebook/internal/shared/apperrors"
	"cinebook/pkg/logger"
)

// CascadeCoordinator cancels bookings affected by auditorium mutations. The
// interface is defined here so this package never imports the coordinator's
// package, which depends back on auditorium lookups.
type CascadeCoordinator interface {
	// CancelOutsideHours cancels bookings on slots of the auditorium whose
	// hour no longer fits the new operating window.
	CancelOutsideHours(ctx context.Context, auditoriumID uuid.UUID, openingHour, closingHour int) error

	// CancelForAuditorium cancels every booking on the auditorium's slots,
	// then deletes the slots and the auditorium itself.
	CancelForAuditorium(ctx context.Context, auditoriumID uuid.UUID) error
}

type Service interface {
	CreateTheatre(req CreateTheatreRequest) (*TheatreResponse, error)
	GetTheatre(id uuid.UUID) (*TheatreDetailResponse, error)
	ListTheatres() ([]TheatreResponse, error)
	UpdateTheatre(id uuid.UUID, req UpdateTheatreRequest) (*TheatreResponse, error)

	CreateAuditorium(theatreID uuid.UUID, req CreateAuditoriumRequest) (*AuditoriumResponse, error)
	ListAuditoriums(theatreID uuid.UUID) ([]AuditoriumResponse, error)
	UpdateAuditorium(ctx context.Context, theatreID, audiID uuid.UUID, req UpdateAuditoriumRequest) (*AuditoriumResponse, error)
	DeleteAuditorium(ctx context.Context, theatreID, audiID uuid.UUID) error

	// Lookups used by the slot domain.
	GetAuditoriumByID(id uuid.UUID) (*Auditorium, error)
	GetAuditoriumsByIDs(ids []uuid.UUID) ([]Auditorium, error)
	GetAllAuditoriums() ([]Auditorium, error)

	// SetCascadeCoordinator wires the cancellation coordinator after both
	// services exist.
	SetCascadeCoordinator(cc CascadeCoordinator)
}

type service struct {
	repo     Repository
	cascades CascadeCoordinator
	log      *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		log:  logger.GetDefault(),
	}
}

func (s *service) SetCascadeCoordinator(cc CascadeCoordinator) {
	s.cascades = cc
}

func (s *service) CreateTheatre(req CreateTheatreRequest) (*TheatreResponse, error) {
	theatre := &Theatre{
		Name:       req.Name,
		City:       req.City,
		State:      req.State,
		Zipcode:    req.Zipcode,
		Functional: true,
	}

	if err := s.repo.CreateTheatre(theatre); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.log.Info("theatre created", "theatre_id", theatre.ID.String(), "name", theatre.Name)

	resp := theatre.ToResponse()
	return &resp, nil
}

func (s *service) GetTheatre(id uuid.UUID) (*TheatreDetailResponse, error) {
	theatre, err := s.repo.GetTheatreWithAuditoriums(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "NOT_FOUND")
		}
		return nil, apperrors.Internal(err)
	}

	audis := make([]AuditoriumResponse, len(theatre.Auditoriums))
	for i := range theatre.Auditoriums {
		audis[i] = theatre.Auditoriums[i].ToResponse()
	}

	return &TheatreDetailResponse{
		TheatreResponse: theatre.ToResponse(),
		Auditoriums:     audis,
	}, nil
}

func (s *service) ListTheatres() ([]TheatreResponse, error) {
	theatres, err := s.repo.GetAllTheatres()
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	responses := make([]TheatreResponse, len(theatres))
	for i := range theatres {
		responses[i] = theatres[i].ToResponse()
	}
	return responses, nil
}

func (s *service) UpdateTheatre(id uuid.UUID, req UpdateTheatreRequest) (*TheatreResponse, error) {
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.State != nil {
		updates["state"] = *req.State
	}
	if req.Zipcode != nil {
		updates["zipcode"] = *req.Zipcode
	}
	if req.Functional != nil {
		updates["functional"] = *req.Functional
	}

	theatre, err := s.repo.UpdateTheatre(id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "NOT_FOUND")
		}
		return nil, apperrors.Internal(err)
	}

	resp := theatre.ToResponse()
	return &resp, nil
}

func (s *service) CreateAuditorium(theatreID uuid.UUID, req CreateAuditoriumRequest) (*AuditoriumResponse, error) {
	if _, err := s.repo.GetTheatreByID(theatreID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "NOT_FOUND")
		}
		return nil, apperrors.Internal(err)
	}

	opening, closing := 9, 21
	if req.OpeningHour != nil {
		opening = *req.OpeningHour
	}
	if req.ClosingHour != nil {
		closing = *req.ClosingHour
	}
	if opening >= closing {
		return nil, apperrors.New(apperrors.KindValidation, "INVALID_OPEN_CLOSE_TIME")
	}

	audi := &Auditorium{
		Name:        req.Name,
		Seats:       req.Seats,
		OpeningHour: opening,
		ClosingHour: closing,
		TheatreID:   theatreID,
	}

	if err := s.repo.CreateAuditorium(audi); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.New(apperrors.KindConflict, "ALREADY_EXISTS")
		}
		return nil, apperrors.Internal(err)
	}

	s.log.Info("auditorium created",
		"auditorium_id", audi.ID.String(),
		"theatre_id", theatreID.String(),
		"seats", audi.Seats,
	)

	resp := audi.ToResponse()
	return &resp, nil
}

func (s *service) ListAuditoriums(theatreID uuid.UUID) ([]AuditoriumResponse, error) {
	if _, err := s.repo.GetTheatreByID(theatreID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "NOT_FOUND")
		}
		return nil, apperrors.Internal(err)
	}

	audis, err := s.repo.GetAuditoriumsByTheatre(theatreID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	responses := make([]AuditoriumResponse, len(audis))
	for i := range audis {
		responses[i] = audis[i].ToResponse()
	}
	return responses, nil
}

// UpdateAuditorium applies the changes and, when the operating window moved,
// cancels the bookings on slots that no longer fit it. The cancellation runs
// before the row update so the coordinator reads the slots that existed under
// the old window.
func (s *service) UpdateAuditorium(ctx context.Context, theatreID, audiID uuid.UUID, req UpdateAuditoriumRequest) (*AuditoriumResponse, error) {
	audi, err := s.getTheatreAuditorium(theatreID, audiID)
	if err != nil {
		return nil, err
	}

	opening, closing := audi.OpeningHour, audi.ClosingHour
	hoursChanged := false
	if req.OpeningHour != nil && *req.OpeningHour != opening {
		opening = *req.OpeningHour
		hoursChanged = true
	}
	if req.ClosingHour != nil && *req.ClosingHour != closing {
		closing = *req.ClosingHour
		hoursChanged = true
	}
	if opening >= closing {
		return nil, apperrors.New(apperrors.KindValidation, "INVALID_OPEN_CLOSE_TIME")
	}

	if hoursChanged && s.cascades != nil {
		if err := s.cascades.CancelOutsideHours(ctx, audiID, opening, closing); err != nil {
			return nil, err
		}
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Seats != nil {
		updates["seats"] = *req.Seats
	}
	if req.OpeningHour != nil {
		updates["opening_hour"] = *req.OpeningHour
	}
	if req.ClosingHour != nil {
		updates["closing_hour"] = *req.ClosingHour
	}

	updated, err := s.repo.UpdateAuditorium(audiID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.New(apperrors.KindConflict, "ALREADY_EXISTS")
		}
		return nil, apperrors.Internal(err)
	}

	resp := updated.ToResponse()
	return &resp, nil
}

// DeleteAuditorium removes the auditorium after cancelling every booking on
// its slots. The coordinator owns the whole cascade so the snapshot reads,
// cancellations and deletions happen in one place.
func (s *service) DeleteAuditorium(ctx context.Context, theatreID, audiID uuid.UUID) error {
	if _, err := s.getTheatreAuditorium(theatreID, audiID); err != nil {
		return err
	}

	if s.cascades == nil {
		return apperrors.Internal(errors.New("cascade coordinator not configured"))
	}

	return s.cascades.CancelForAuditorium(ctx, audiID)
}

func (s *service) GetAuditoriumByID(id uuid.UUID) (*Auditorium, error) {
	audi, err := s.repo.GetAuditoriumByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindValidation, "INVALID_AUDI")
		}
		return nil, apperrors.Internal(err)
	}
	return audi, nil
}

func (s *service) GetAuditoriumsByIDs(ids []uuid.UUID) ([]Auditorium, error) {
	audis, err := s.repo.GetAuditoriumsByIDs(ids)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return audis, nil
}

func (s *service) GetAllAuditoriums() ([]Auditorium, error) {
	audis, err := s.repo.GetAllAuditoriums()
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return audis, nil
}

func (s *service) getTheatreAuditorium(theatreID, audiID uuid.UUID) (*Auditorium, error) {
	audi, err := s.repo.GetAuditoriumByID(audiID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "NOT_FOUND")
		}
		return nil, apperrors.Internal(err)
	}
	if audi.TheatreID != theatreID {
		return nil, apperrors.New(apperrors.KindNotFound, "NOT_FOUND")
	}
	return audi, nil
}
