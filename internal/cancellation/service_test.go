package cancellation

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinebook/internal/bookings"
	"cinebook/internal/notifications"
)

type fakeCancelRepo struct {
	slotsByAudi  map[uuid.UUID][]uuid.UUID
	hoursBySlot  map[uuid.UUID]int
	recipients   map[uuid.UUID][]Recipient
	details      map[uuid.UUID][]bookings.BookingDetail
	cancelled    [][]uuid.UUID
	deletedSlots []uuid.UUID
	deletedAudis []uuid.UUID
}

func newFakeCancelRepo() *fakeCancelRepo {
	return &fakeCancelRepo{
		slotsByAudi: make(map[uuid.UUID][]uuid.UUID),
		hoursBySlot: make(map[uuid.UUID]int),
		recipients:  make(map[uuid.UUID][]Recipient),
		details:     make(map[uuid.UUID][]bookings.BookingDetail),
	}
}

func (f *fakeCancelRepo) SlotIDsWithHourOutside(auditoriumID uuid.UUID, validHours []int) ([]uuid.UUID, error) {
	valid := make(map[int]struct{}, len(validHours))
	for _, hour := range validHours {
		valid[hour] = struct{}{}
	}

	var orphaned []uuid.UUID
	for _, slotID := range f.slotsByAudi[auditoriumID] {
		if _, ok := valid[f.hoursBySlot[slotID]]; !ok {
			orphaned = append(orphaned, slotID)
		}
	}
	return orphaned, nil
}

func (f *fakeCancelRepo) SlotIDsByAuditorium(auditoriumID uuid.UUID) ([]uuid.UUID, error) {
	return f.slotsByAudi[auditoriumID], nil
}

func (f *fakeCancelRepo) DistinctRecipientsBySlotIDs(slotIDs []uuid.UUID) ([]Recipient, error) {
	seen := make(map[string]struct{})
	var distinct []Recipient
	for _, slotID := range slotIDs {
		for _, recipient := range f.recipients[slotID] {
			if _, ok := seen[recipient.Email]; ok {
				continue
			}
			seen[recipient.Email] = struct{}{}
			distinct = append(distinct, recipient)
		}
	}
	return distinct, nil
}

func (f *fakeCancelRepo) BookingDetailsBySlotIDs(slotIDs []uuid.UUID) ([]bookings.BookingDetail, error) {
	var all []bookings.BookingDetail
	for _, slotID := range slotIDs {
		all = append(all, f.details[slotID]...)
	}
	return all, nil
}

func (f *fakeCancelRepo) CancelBookingsBySlotIDs(slotIDs []uuid.UUID) error {
	f.cancelled = append(f.cancelled, slotIDs)
	return nil
}

func (f *fakeCancelRepo) CancelBookingsAndDeleteSlots(slotIDs []uuid.UUID, deleteAuditoriumID *uuid.UUID) error {
	f.cancelled = append(f.cancelled, slotIDs)
	f.deletedSlots = append(f.deletedSlots, slotIDs...)
	if deleteAuditoriumID != nil {
		f.deletedAudis = append(f.deletedAudis, *deleteAuditoriumID)
	}
	return nil
}

type recordingSink struct {
	confirmed []string
	cancelled []struct {
		email  string
		ticket *notifications.TicketDetails
	}
	batches int
}

func (r *recordingSink) EnqueueTicketConfirmed(ctx context.Context, recipientEmail, recipientName string, ticket *notifications.TicketDetails) error {
	r.confirmed = append(r.confirmed, recipientEmail)
	return nil
}

func (r *recordingSink) EnqueueTicketCancelled(ctx context.Context, recipientEmail, recipientName string, ticket *notifications.TicketDetails) error {
	r.cancelled = append(r.cancelled, struct {
		email  string
		ticket *notifications.TicketDetails
	}{recipientEmail, ticket})
	return nil
}

func (r *recordingSink) EnqueueScheduleChangeBatch(ctx context.Context, recipients []notifications.Recipient) error {
	r.batches++
	for _, recipient := range recipients {
		r.cancelled = append(r.cancelled, struct {
			email  string
			ticket *notifications.TicketDetails
		}{recipient.Email, nil})
	}
	return nil
}

type recordingInvalidator struct {
	calls int
}

func (r *recordingInvalidator) InvalidateFreeSlotCache(ctx context.Context) {
	r.calls++
}

func TestCancelOutsideHours_NoOrphanedSlots(t *testing.T) {
	repo := newFakeCancelRepo()
	sink := &recordingSink{}
	service := NewService(repo, sink)

	invalidator := &recordingInvalidator{}
	service.SetAvailabilityInvalidator(invalidator)

	audiID := uuid.New()
	slotID := uuid.New()
	repo.slotsByAudi[audiID] = []uuid.UUID{slotID}
	repo.hoursBySlot[slotID] = 9 // still valid under the new window

	err := service.CancelOutsideHours(context.Background(), audiID, 9, 21)

	require.NoError(t, err)
	assert.Empty(t, repo.cancelled)
	assert.Empty(t, sink.cancelled)

	// Cached availability reflects the old window even when nothing is
	// orphaned, so the hours change must always drop it.
	assert.Equal(t, 1, invalidator.calls)
}

func TestCancelOutsideHours_KeepsSlotsAndDeduplicatesRecipients(t *testing.T) {
	repo := newFakeCancelRepo()
	sink := &recordingSink{}
	service := NewService(repo, sink)

	invalidator := &recordingInvalidator{}
	service.SetAvailabilityInvalidator(invalidator)

	audiID := uuid.New()
	earlySlot := uuid.New()
	lateSlot1 := uuid.New()
	lateSlot2 := uuid.New()
	repo.slotsByAudi[audiID] = []uuid.UUID{earlySlot, lateSlot1, lateSlot2}
	repo.hoursBySlot[earlySlot] = 12
	repo.hoursBySlot[lateSlot1] = 18
	repo.hoursBySlot[lateSlot2] = 21

	// Same user booked both orphaned slots; another user booked one.
	asha := Recipient{Email: "asha.rao@example.com", Name: "Asha Rao"}
	rohan := Recipient{Email: "rohan.mehta@example.com", Name: "Rohan Mehta"}
	repo.recipients[lateSlot1] = []Recipient{asha, rohan}
	repo.recipients[lateSlot2] = []Recipient{asha}

	// Window shrinks to 12..17: candidate hours {12, 15}, so 18 and 21 fall out.
	err := service.CancelOutsideHours(context.Background(), audiID, 12, 17)

	require.NoError(t, err)

	// Bookings cancelled on exactly the orphaned slots, slots themselves kept.
	require.Len(t, repo.cancelled, 1)
	assert.ElementsMatch(t, []uuid.UUID{lateSlot1, lateSlot2}, repo.cancelled[0])
	assert.Empty(t, repo.deletedSlots)
	assert.Empty(t, repo.deletedAudis)

	// One email per distinct user, published as a single batch, with no
	// ticket detail attached.
	assert.Equal(t, 1, sink.batches)
	require.Len(t, sink.cancelled, 2)
	emails := []string{sink.cancelled[0].email, sink.cancelled[1].email}
	assert.ElementsMatch(t, []string{asha.Email, rohan.Email}, emails)
	for _, sent := range sink.cancelled {
		assert.Nil(t, sent.ticket)
	}

	assert.Equal(t, 1, invalidator.calls)
}

func TestCancelForAuditorium_SnapshotsThenDeletes(t *testing.T) {
	repo := newFakeCancelRepo()
	sink := &recordingSink{}
	service := NewService(repo, sink)

	invalidator := &recordingInvalidator{}
	service.SetAvailabilityInvalidator(invalidator)

	audiID := uuid.New()
	slotA := uuid.New()
	slotB := uuid.New()
	repo.slotsByAudi[audiID] = []uuid.UUID{slotA, slotB}

	// Three confirmed bookings across two users; each gets its own email.
	repo.details[slotA] = []bookings.BookingDetail{
		{BookingID: uuid.New(), SeatsBooked: 2, UserEmail: "asha.rao@example.com", UserName: "Asha Rao", MovieName: "Avatar"},
		{BookingID: uuid.New(), SeatsBooked: 4, UserEmail: "rohan.mehta@example.com", UserName: "Rohan Mehta", MovieName: "Avatar"},
	}
	repo.details[slotB] = []bookings.BookingDetail{
		{BookingID: uuid.New(), SeatsBooked: 1, UserEmail: "asha.rao@example.com", UserName: "Asha Rao", MovieName: "3 Idiots"},
	}

	err := service.CancelForAuditorium(context.Background(), audiID)

	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{slotA, slotB}, repo.deletedSlots)
	assert.Equal(t, []uuid.UUID{audiID}, repo.deletedAudis)
	assert.Equal(t, 1, invalidator.calls)

	// Per-booking, undeduplicated, each with the booking's snapshot attached.
	require.Len(t, sink.cancelled, 3)
	ashaEmails := 0
	for _, sent := range sink.cancelled {
		require.NotNil(t, sent.ticket)
		if sent.email == "asha.rao@example.com" {
			ashaEmails++
		}
	}
	assert.Equal(t, 2, ashaEmails, "one email per booking, not per user")
}

func TestCancelForSlot(t *testing.T) {
	repo := newFakeCancelRepo()
	sink := &recordingSink{}
	service := NewService(repo, sink)

	slotID := uuid.New()
	repo.details[slotID] = []bookings.BookingDetail{
		{BookingID: uuid.New(), SeatsBooked: 3, UserEmail: "rohan.mehta@example.com", UserName: "Rohan Mehta", MovieName: "Interstellar", SlotHour: 15},
	}

	err := service.CancelForSlot(context.Background(), slotID)

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{slotID}, repo.deletedSlots)
	assert.Empty(t, repo.deletedAudis, "only the slot goes, the auditorium stays")

	require.Len(t, sink.cancelled, 1)
	require.NotNil(t, sink.cancelled[0].ticket)
	assert.Equal(t, 15, sink.cancelled[0].ticket.SlotHour)
	assert.Equal(t, 3, sink.cancelled[0].ticket.SeatsBooked)
}
