package cancellation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cinebook/internal/bookings"
	"cinebook/internal/movies"
	"cinebook/internal/shared/apperrors"
	"cinebook/internal/slots"
	"cinebook/internal/theatres"
)

// bookingWorld is shared in-memory state standing in for the database, so the
// real slot, booking and cancellation services can run against one another.
type bookingWorld struct {
	slots    map[uuid.UUID]*slots.Slot
	bookings map[uuid.UUID]*bookings.Booking
	userByID map[uuid.UUID]Recipient

	movie       *movies.Movie
	audiName    string
	theatreName string
}

func (w *bookingWorld) detailFor(b *bookings.Booking) bookings.BookingDetail {
	slot := w.slots[b.SlotID]
	user := w.userByID[b.UserID]
	return bookings.BookingDetail{
		BookingID:      b.ID,
		SeatsBooked:    b.SeatsBooked,
		Status:         b.Status,
		SlotID:         slot.ID,
		Date:           slot.Date,
		SlotHour:       slot.SlotHour,
		MovieType:      slot.MovieType,
		MovieLanguage:  slot.MovieLanguage,
		MovieName:      w.movie.Name,
		AuditoriumName: w.audiName,
		TheatreName:    w.theatreName,
		UserEmail:      user.Email,
		UserName:       user.Name,
	}
}

type worldSlotRepo struct{ w *bookingWorld }

func (r *worldSlotRepo) GetByID(id uuid.UUID) (*slots.Slot, error) {
	slot, ok := r.w.slots[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return slot, nil
}

func (r *worldSlotRepo) DistinctBookedHours(auditoriumID uuid.UUID, startDate, endDate time.Time) ([]int, error) {
	seen := make(map[int]struct{})
	var hours []int
	for _, slot := range r.w.slots {
		if slot.AuditoriumID != auditoriumID || slot.Date.Before(startDate) || slot.Date.After(endDate) {
			continue
		}
		if _, ok := seen[slot.SlotHour]; !ok {
			seen[slot.SlotHour] = struct{}{}
			hours = append(hours, slot.SlotHour)
		}
	}
	return hours, nil
}

func (r *worldSlotRepo) BulkCreate(batch []slots.Slot) error {
	for i := range batch {
		slot := batch[i]
		slot.ID = uuid.New()
		r.w.slots[slot.ID] = &slot
	}
	return nil
}

type worldBookingRepo struct{ w *bookingWorld }

func (r *worldBookingRepo) CreateWithSeatDecrement(b *bookings.Booking) error {
	slot, ok := r.w.slots[b.SlotID]
	if !ok || slot.SeatsAvailable < b.SeatsBooked {
		return bookings.ErrInsufficientSeats
	}
	slot.SeatsAvailable -= b.SeatsBooked
	b.ID = uuid.New()
	b.Status = bookings.BookingStatusConfirmed
	r.w.bookings[b.ID] = b
	return nil
}

func (r *worldBookingRepo) GetDetailByBookingID(bookingID uuid.UUID) (*bookings.BookingDetail, error) {
	b, ok := r.w.bookings[bookingID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	detail := r.w.detailFor(b)
	return &detail, nil
}

func (r *worldBookingRepo) GetDetailsByUser(userID uuid.UUID) ([]bookings.BookingDetail, error) {
	var details []bookings.BookingDetail
	for _, b := range r.w.bookings {
		// The joined listing query drops bookings whose slot row is gone.
		if b.UserID != userID {
			continue
		}
		if _, ok := r.w.slots[b.SlotID]; !ok {
			continue
		}
		details = append(details, r.w.detailFor(b))
	}
	return details, nil
}

type worldCancelRepo struct{ w *bookingWorld }

func (r *worldCancelRepo) SlotIDsWithHourOutside(auditoriumID uuid.UUID, validHours []int) ([]uuid.UUID, error) {
	valid := make(map[int]struct{}, len(validHours))
	for _, hour := range validHours {
		valid[hour] = struct{}{}
	}
	var ids []uuid.UUID
	for id, slot := range r.w.slots {
		if slot.AuditoriumID != auditoriumID {
			continue
		}
		if _, ok := valid[slot.SlotHour]; !ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *worldCancelRepo) SlotIDsByAuditorium(auditoriumID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for id, slot := range r.w.slots {
		if slot.AuditoriumID == auditoriumID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *worldCancelRepo) DistinctRecipientsBySlotIDs(slotIDs []uuid.UUID) ([]Recipient, error) {
	inSet := make(map[uuid.UUID]struct{}, len(slotIDs))
	for _, id := range slotIDs {
		inSet[id] = struct{}{}
	}
	seen := make(map[string]struct{})
	var recipients []Recipient
	for _, b := range r.w.bookings {
		if _, ok := inSet[b.SlotID]; !ok || b.Status != bookings.BookingStatusConfirmed {
			continue
		}
		user := r.w.userByID[b.UserID]
		if _, ok := seen[user.Email]; ok {
			continue
		}
		seen[user.Email] = struct{}{}
		recipients = append(recipients, user)
	}
	return recipients, nil
}

func (r *worldCancelRepo) BookingDetailsBySlotIDs(slotIDs []uuid.UUID) ([]bookings.BookingDetail, error) {
	inSet := make(map[uuid.UUID]struct{}, len(slotIDs))
	for _, id := range slotIDs {
		inSet[id] = struct{}{}
	}
	var details []bookings.BookingDetail
	for _, b := range r.w.bookings {
		if _, ok := inSet[b.SlotID]; !ok || b.Status != bookings.BookingStatusConfirmed {
			continue
		}
		details = append(details, r.w.detailFor(b))
	}
	return details, nil
}

func (r *worldCancelRepo) CancelBookingsBySlotIDs(slotIDs []uuid.UUID) error {
	return r.cancel(slotIDs)
}

func (r *worldCancelRepo) CancelBookingsAndDeleteSlots(slotIDs []uuid.UUID, deleteAuditoriumID *uuid.UUID) error {
	if err := r.cancel(slotIDs); err != nil {
		return err
	}
	for _, id := range slotIDs {
		delete(r.w.slots, id)
	}
	return nil
}

func (r *worldCancelRepo) cancel(slotIDs []uuid.UUID) error {
	inSet := make(map[uuid.UUID]struct{}, len(slotIDs))
	for _, id := range slotIDs {
		inSet[id] = struct{}{}
	}
	for _, b := range r.w.bookings {
		if _, ok := inSet[b.SlotID]; ok && b.Status == bookings.BookingStatusConfirmed {
			b.Status = bookings.BookingStatusCancelled
		}
	}
	return nil
}

type worldCatalog struct{ movie *movies.Movie }

func (c worldCatalog) GetMovieByID(id uuid.UUID) (*movies.Movie, error) {
	if id != c.movie.ID {
		return nil, apperrors.New(apperrors.KindNotFound, "NOT_FOUND")
	}
	return c.movie, nil
}

type worldAudiDir struct{ audis []theatres.Auditorium }

func (d worldAudiDir) GetAuditoriumsByIDs(ids []uuid.UUID) ([]theatres.Auditorium, error) {
	var found []theatres.Auditorium
	for _, audi := range d.audis {
		for _, id := range ids {
			if audi.ID == id {
				found = append(found, audi)
			}
		}
	}
	return found, nil
}

func (d worldAudiDir) GetAllAuditoriums() ([]theatres.Auditorium, error) {
	return d.audis, nil
}

// TestBookingLifecycle runs the whole chain with the real services: a slot
// batch is created, a user books seats on one slot, the slot is deleted, and
// the booker gets a detailed cancellation while availability opens back up.
func TestBookingLifecycle(t *testing.T) {
	movie := &movies.Movie{
		ID:         uuid.New(),
		Name:       "Interstellar",
		Duration:   2.49,
		Languages:  []string{"English", "Hindi"},
		MovieTypes: []string{"2D", "IMAX"},
	}
	audi := theatres.Auditorium{
		ID:          uuid.New(),
		Name:        "Audi 1",
		Seats:       120,
		OpeningHour: 9,
		ClosingHour: 21,
		TheatreID:   uuid.New(),
	}
	userID := uuid.New()

	w := &bookingWorld{
		slots:       make(map[uuid.UUID]*slots.Slot),
		bookings:    make(map[uuid.UUID]*bookings.Booking),
		userByID:    map[uuid.UUID]Recipient{userID: {Email: "asha.rao@example.com", Name: "Asha Rao"}},
		movie:       movie,
		audiName:    audi.Name,
		theatreName: "Galaxy Multiplex",
	}
	sink := &recordingSink{}

	slotService := slots.NewService(&worldSlotRepo{w}, worldCatalog{movie}, worldAudiDir{[]theatres.Auditorium{audi}}, time.Minute)
	cancelService := NewService(&worldCancelRepo{w}, sink)
	cancelService.SetAvailabilityInvalidator(slotService)
	slotService.SetCascadeCoordinator(cancelService)
	bookingService := bookings.NewService(&worldBookingRepo{w}, slotService, sink)

	ctx := context.Background()
	tomorrow := time.Now().Truncate(24 * time.Hour).AddDate(0, 0, 1)

	// Admin schedules the movie at 9 and 15.
	err := slotService.CreateBatch(ctx, slots.BatchParams{
		MovieID:       movie.ID,
		OpeningDate:   tomorrow,
		ClosingDate:   tomorrow,
		MovieType:     "2D",
		MovieLanguage: "Hindi",
		HoursByAuditorium: map[uuid.UUID][]int{
			audi.ID: {9, 15},
		},
	})
	require.NoError(t, err)
	require.Len(t, w.slots, 2)

	free, err := slotService.FreeSlots(ctx, tomorrow, tomorrow)
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.Equal(t, []int{12, 18}, free[0].FreeSlots)

	var slot15 *slots.Slot
	for _, slot := range w.slots {
		if slot.SlotHour == 15 {
			slot15 = slot
		}
	}
	require.NotNil(t, slot15)

	// User books 4 seats on the 15:00 screening.
	resp, err := bookingService.Book(ctx, userID, slot15.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, bookings.BookingStatusConfirmed, resp.Status)
	assert.Equal(t, 116, slot15.SeatsAvailable)
	assert.Equal(t, []string{"asha.rao@example.com"}, sink.confirmed)

	bookingID, err := uuid.Parse(resp.ID)
	require.NoError(t, err)

	// Admin deletes the slot; the cascade cancels the booking and mails the
	// booker the full snapshot.
	err = slotService.DeleteSlot(ctx, slot15.ID)
	require.NoError(t, err)

	assert.NotContains(t, w.slots, slot15.ID)
	assert.Equal(t, bookings.BookingStatusCancelled, w.bookings[bookingID].Status)

	require.Len(t, sink.cancelled, 1)
	assert.Equal(t, "asha.rao@example.com", sink.cancelled[0].email)
	require.NotNil(t, sink.cancelled[0].ticket)
	assert.Equal(t, 15, sink.cancelled[0].ticket.SlotHour)
	assert.Equal(t, 4, sink.cancelled[0].ticket.SeatsBooked)
	assert.Equal(t, "Interstellar", sink.cancelled[0].ticket.MovieName)

	// Hour 15 is free again, the joined listing no longer shows the booking.
	free, err = slotService.FreeSlots(ctx, tomorrow, tomorrow)
	require.NoError(t, err)
	assert.Equal(t, []int{12, 15, 18}, free[0].FreeSlots)

	listed, err := bookingService.ListUserBookings(userID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}
