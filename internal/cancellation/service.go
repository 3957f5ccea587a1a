package cancellation

import (
	"context"

	"github.com/google/uuid"

	"cinebook/internal/bookings"
	"cinebook/internal/notifications"
	"cinebook/internal/shared/apperrors"
	"cinebook/internal/slots"
	"cinebook/pkg/logger"
)

// AvailabilityInvalidator drops cached free-slot results after the slots or
// the auditorium window they were computed against changed.
type AvailabilityInvalidator interface {
	InvalidateFreeSlotCache(ctx context.Context)
}

// Service is the cascade cancellation coordinator. It satisfies both the
// theatres and the slots cascade interfaces: auditorium hour changes,
// auditorium deletion and single-slot deletion all funnel through here so the
// cancel-then-notify choreography lives in one place.
type Service interface {
	CancelOutsideHours(ctx context.Context, auditoriumID uuid.UUID, openingHour, closingHour int) error
	CancelForAuditorium(ctx context.Context, auditoriumID uuid.UUID) error
	CancelForSlot(ctx context.Context, slotID uuid.UUID) error

	SetAvailabilityInvalidator(inv AvailabilityInvalidator)
}

type service struct {
	repo Repository
	sink notifications.Sink
	inv  AvailabilityInvalidator
	log  *logger.Logger
}

func NewService(repo Repository, sink notifications.Sink) Service {
	return &service{
		repo: repo,
		sink: sink,
		log:  logger.GetDefault(),
	}
}

func (s *service) SetAvailabilityInvalidator(inv AvailabilityInvalidator) {
	s.inv = inv
}

// CancelOutsideHours handles an auditorium's operating window shrinking. The
// new candidate set is computed with the same arithmetic as availability;
// slots whose hour fell out of it keep existing, but their bookings are
// cancelled and each distinct affected user gets exactly one email, with no
// per-booking detail.
func (s *service) CancelOutsideHours(ctx context.Context, auditoriumID uuid.UUID, openingHour, closingHour int) error {
	validHours := slots.CandidateHours(openingHour, closingHour)

	// Cached availability was computed against the old window. Drop it even
	// when no slot falls out, otherwise FreeSlots keeps serving the old
	// candidate set until the TTL expires.
	if s.inv != nil {
		s.inv.InvalidateFreeSlotCache(ctx)
	}

	orphanedSlotIDs, err := s.repo.SlotIDsWithHourOutside(auditoriumID, validHours)
	if err != nil {
		return apperrors.Internal(err)
	}
	if len(orphanedSlotIDs) == 0 {
		return nil
	}

	recipients, err := s.repo.DistinctRecipientsBySlotIDs(orphanedSlotIDs)
	if err != nil {
		return apperrors.Internal(err)
	}

	if err := s.repo.CancelBookingsBySlotIDs(orphanedSlotIDs); err != nil {
		return apperrors.Internal(err)
	}

	s.log.Info("hours-change cascade completed",
		"auditorium_id", auditoriumID.String(),
		"orphaned_slots", len(orphanedSlotIDs),
		"notified_users", len(recipients),
	)

	batch := make([]notifications.Recipient, 0, len(recipients))
	for _, recipient := range recipients {
		batch = append(batch, notifications.Recipient{Email: recipient.Email, Name: recipient.Name})
	}
	if err := s.sink.EnqueueScheduleChangeBatch(ctx, batch); err != nil {
		s.log.Warn("cancellation batch enqueue failed", "recipients", len(batch), "error", err.Error())
	}

	return nil
}

// CancelForAuditorium removes an auditorium entirely: every confirmed booking
// on its slots is snapshotted while the rows are still live, then bookings
// are cancelled and the slots plus the auditorium deleted in one transaction,
// then one detailed email per booking goes out.
func (s *service) CancelForAuditorium(ctx context.Context, auditoriumID uuid.UUID) error {
	slotIDs, err := s.repo.SlotIDsByAuditorium(auditoriumID)
	if err != nil {
		return apperrors.Internal(err)
	}

	details, err := s.repo.BookingDetailsBySlotIDs(slotIDs)
	if err != nil {
		return apperrors.Internal(err)
	}

	if err := s.repo.CancelBookingsAndDeleteSlots(slotIDs, &auditoriumID); err != nil {
		return apperrors.Internal(err)
	}

	s.log.Info("auditorium-delete cascade completed",
		"auditorium_id", auditoriumID.String(),
		"deleted_slots", len(slotIDs),
		"cancelled_bookings", len(details),
	)

	s.notifyPerBooking(ctx, details)

	if s.inv != nil {
		s.inv.InvalidateFreeSlotCache(ctx)
	}

	return nil
}

// CancelForSlot removes a single slot, cancelling its bookings and mailing
// each booker a detailed cancellation.
func (s *service) CancelForSlot(ctx context.Context, slotID uuid.UUID) error {
	slotIDs := []uuid.UUID{slotID}

	details, err := s.repo.BookingDetailsBySlotIDs(slotIDs)
	if err != nil {
		return apperrors.Internal(err)
	}

	if err := s.repo.CancelBookingsAndDeleteSlots(slotIDs, nil); err != nil {
		return apperrors.Internal(err)
	}

	s.log.Info("slot-delete cascade completed",
		"slot_id", slotID.String(),
		"cancelled_bookings", len(details),
	)

	s.notifyPerBooking(ctx, details)

	return nil
}

// notifyPerBooking mails one cancellation per booking, undeduplicated: a user
// with three bookings on a deleted auditorium gets three detailed emails.
func (s *service) notifyPerBooking(ctx context.Context, details []bookings.BookingDetail) {
	for i := range details {
		detail := &details[i]

		ticket := &notifications.TicketDetails{
			MovieName:      detail.MovieName,
			Date:           detail.Date,
			SlotHour:       detail.SlotHour,
			SeatsBooked:    detail.SeatsBooked,
			AuditoriumName: detail.AuditoriumName,
			TheatreName:    detail.TheatreName,
		}

		if err := s.sink.EnqueueTicketCancelled(ctx, detail.UserEmail, detail.UserName, ticket); err != nil {
			s.log.Warn("cancellation enqueue failed",
				"booking_id", detail.BookingID.String(),
				"recipient", detail.UserEmail,
				"error", err.Error(),
			)
		}
	}
}
