package bookings

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"cinebook/internal/notifications"
	"cinebook/internal/shared/apperrors"
	"cinebook/internal/slots"
	"cinebook/pkg/logger"
)

// SlotLookup is the slice of the slot domain bookings need.
type SlotLookup interface {
	GetSlotByID(id uuid.UUID) (*slots.Slot, error)
}

type Service interface {
	Book(ctx context.Context, userID, slotID uuid.UUID, seats int) (*BookingResponse, error)
	ListUserBookings(userID uuid.UUID) ([]BookingDetail, error)
}

type service struct {
	repo      Repository
	slotsLook SlotLookup
	sink      notifications.Sink
	log       *logger.Logger
}

func NewService(repo Repository, slotsLook SlotLookup, sink notifications.Sink) Service {
	return &service{
		repo:      repo,
		slotsLook: slotsLook,
		sink:      sink,
		log:       logger.GetDefault(),
	}
}

// Book reserves seats on a slot. The availability pre-check gives a friendly
// error for the common case; the conditional decrement inside the repository
// is what actually guarantees no overbooking under concurrency.
func (s *service) Book(ctx context.Context, userID, slotID uuid.UUID, seats int) (*BookingResponse, error) {
	slot, err := s.slotsLook.GetSlotByID(slotID)
	if err != nil {
		return nil, err
	}

	if seats > slot.SeatsAvailable {
		return nil, apperrors.New(apperrors.KindConflict, "INADEQUATE_SEATS")
	}

	booking := &Booking{
		UserID:      userID,
		SlotID:      slotID,
		SeatsBooked: seats,
	}

	if err := s.repo.CreateWithSeatDecrement(booking); err != nil {
		if errors.Is(err, ErrInsufficientSeats) {
			return nil, apperrors.New(apperrors.KindConflict, "INADEQUATE_SEATS")
		}
		return nil, apperrors.Internal(err)
	}

	s.log.Info("booking confirmed",
		"booking_id", booking.ID.String(),
		"slot_id", slotID.String(),
		"user_id", userID.String(),
		"seats", seats,
	)

	// Fire-and-forget: a failed enqueue never rolls the booking back.
	s.enqueueConfirmation(ctx, booking.ID)

	resp := booking.ToResponse()
	return &resp, nil
}

func (s *service) enqueueConfirmation(ctx context.Context, bookingID uuid.UUID) {
	if s.sink == nil {
		return
	}

	detail, err := s.repo.GetDetailByBookingID(bookingID)
	if err != nil {
		s.log.Warn("confirmation snapshot read failed", "booking_id", bookingID.String(), "error", err.Error())
		return
	}

	ticket := &notifications.TicketDetails{
		MovieName:      detail.MovieName,
		Date:           detail.Date,
		SlotHour:       detail.SlotHour,
		SeatsBooked:    detail.SeatsBooked,
		AuditoriumName: detail.AuditoriumName,
		TheatreName:    detail.TheatreName,
	}

	if err := s.sink.EnqueueTicketConfirmed(ctx, detail.UserEmail, detail.UserName, ticket); err != nil {
		s.log.Warn("confirmation enqueue failed", "booking_id", bookingID.String(), "error", err.Error())
	}
}

func (s *service) ListUserBookings(userID uuid.UUID) ([]BookingDetail, error) {
	details, err := s.repo.GetDetailsByUser(userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if details == nil {
		details = []BookingDetail{}
	}
	return details, nil
}
