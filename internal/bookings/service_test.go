package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinebook/internal/notifications"
	"cinebook/internal/shared/apperrors"
	"cinebook/internal/slots"
)

type fakeBookingRepo struct {
	created   []*Booking
	createErr error
	details   map[uuid.UUID]*BookingDetail
	byUser    map[uuid.UUID][]BookingDetail
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		details: make(map[uuid.UUID]*BookingDetail),
		byUser:  make(map[uuid.UUID][]BookingDetail),
	}
}

func (f *fakeBookingRepo) CreateWithSeatDecrement(booking *Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	booking.ID = uuid.New()
	booking.Status = BookingStatusConfirmed
	f.created = append(f.created, booking)
	return nil
}

func (f *fakeBookingRepo) GetDetailByBookingID(bookingID uuid.UUID) (*BookingDetail, error) {
	detail, ok := f.details[bookingID]
	if !ok {
		return nil, errors.New("detail not found")
	}
	return detail, nil
}

func (f *fakeBookingRepo) GetDetailsByUser(userID uuid.UUID) ([]BookingDetail, error) {
	return f.byUser[userID], nil
}

type fakeSlotLookup struct {
	slot *slots.Slot
	err  error
}

func (f *fakeSlotLookup) GetSlotByID(id uuid.UUID) (*slots.Slot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.slot, nil
}

type recordingSink struct {
	confirmed  []string
	cancelled  []string
	enqueueErr error
}

func (r *recordingSink) EnqueueTicketConfirmed(ctx context.Context, recipientEmail, recipientName string, ticket *notifications.TicketDetails) error {
	r.confirmed = append(r.confirmed, recipientEmail)
	return r.enqueueErr
}

func (r *recordingSink) EnqueueTicketCancelled(ctx context.Context, recipientEmail, recipientName string, ticket *notifications.TicketDetails) error {
	r.cancelled = append(r.cancelled, recipientEmail)
	return r.enqueueErr
}

func (r *recordingSink) EnqueueScheduleChangeBatch(ctx context.Context, recipients []notifications.Recipient) error {
	for _, recipient := range recipients {
		r.cancelled = append(r.cancelled, recipient.Email)
	}
	return r.enqueueErr
}

func TestBook_Success(t *testing.T) {
	repo := newFakeBookingRepo()
	slotID := uuid.New()
	userID := uuid.New()
	lookup := &fakeSlotLookup{slot: &slots.Slot{ID: slotID, SeatsAvailable: 10}}
	sink := &recordingSink{}

	service := NewService(repo, lookup, sink)

	resp, err := service.Book(context.Background(), userID, slotID, 4)

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 4, resp.SeatsBooked)
	assert.Equal(t, BookingStatusConfirmed, resp.Status)
	require.Len(t, repo.created, 1)
	assert.Equal(t, userID, repo.created[0].UserID)
}

func TestBook_UnknownSlot(t *testing.T) {
	repo := newFakeBookingRepo()
	lookup := &fakeSlotLookup{err: apperrors.New(apperrors.KindNotFound, "NOT_FOUND")}

	service := NewService(repo, lookup, &recordingSink{})

	_, err := service.Book(context.Background(), uuid.New(), uuid.New(), 2)

	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.CodeOf(err))
	assert.Empty(t, repo.created)
}

func TestBook_TooManySeatsPreCheck(t *testing.T) {
	repo := newFakeBookingRepo()
	lookup := &fakeSlotLookup{slot: &slots.Slot{ID: uuid.New(), SeatsAvailable: 3}}

	service := NewService(repo, lookup, &recordingSink{})

	_, err := service.Book(context.Background(), uuid.New(), uuid.New(), 5)

	require.Error(t, err)
	assert.Equal(t, "INADEQUATE_SEATS", apperrors.CodeOf(err))
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.Empty(t, repo.created, "booking must not reach the repository")
}

func TestBook_DecrementRace(t *testing.T) {
	// Pre-check passes but the conditional decrement loses the race.
	repo := newFakeBookingRepo()
	repo.createErr = ErrInsufficientSeats
	lookup := &fakeSlotLookup{slot: &slots.Slot{ID: uuid.New(), SeatsAvailable: 5}}

	service := NewService(repo, lookup, &recordingSink{})

	_, err := service.Book(context.Background(), uuid.New(), uuid.New(), 5)

	require.Error(t, err)
	assert.Equal(t, "INADEQUATE_SEATS", apperrors.CodeOf(err))
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestBook_SkipsEnqueueWithoutSnapshot(t *testing.T) {
	repo := newFakeBookingRepo()
	slotID := uuid.New()
	lookup := &fakeSlotLookup{slot: &slots.Slot{ID: slotID, SeatsAvailable: 10}}
	sink := &recordingSink{}

	service := NewService(repo, lookup, sink)

	// The detail read fails after insert; the booking still succeeds and
	// nothing is enqueued.
	resp, err := service.Book(context.Background(), uuid.New(), slotID, 2)

	require.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Empty(t, sink.confirmed)
}

func TestBook_EnqueuesConfirmationSnapshot(t *testing.T) {
	slotID := uuid.New()
	lookup := &fakeSlotLookup{slot: &slots.Slot{ID: slotID, SeatsAvailable: 10}}
	sink := &recordingSink{}

	detail := &BookingDetail{
		SeatsBooked:    2,
		Status:         BookingStatusConfirmed,
		SlotID:         slotID,
		Date:           time.Now().AddDate(0, 0, 1),
		SlotHour:       12,
		MovieName:      "Interstellar",
		AuditoriumName: "Audi 1",
		TheatreName:    "Galaxy Multiplex",
		UserEmail:      "asha.rao@example.com",
		UserName:       "Asha Rao",
	}

	service := NewService(&detailRecordingRepo{fakeBookingRepo: newFakeBookingRepo(), detail: detail}, lookup, sink)

	_, err := service.Book(context.Background(), uuid.New(), slotID, 2)

	require.NoError(t, err)
	assert.Equal(t, []string{"asha.rao@example.com"}, sink.confirmed)
}

// detailRecordingRepo registers a detail snapshot under the booking ID the
// moment the booking is created, mimicking the joined read after insert.
type detailRecordingRepo struct {
	*fakeBookingRepo
	detail *BookingDetail
}

func (d *detailRecordingRepo) CreateWithSeatDecrement(booking *Booking) error {
	if err := d.fakeBookingRepo.CreateWithSeatDecrement(booking); err != nil {
		return err
	}
	copied := *d.detail
	copied.BookingID = booking.ID
	d.details[booking.ID] = &copied
	return nil
}

func TestBook_EnqueueFailureDoesNotFailBooking(t *testing.T) {
	repo := newFakeBookingRepo()
	slotID := uuid.New()
	lookup := &fakeSlotLookup{slot: &slots.Slot{ID: slotID, SeatsAvailable: 10}}
	sink := &recordingSink{enqueueErr: errors.New("broker unreachable")}

	detail := &BookingDetail{UserEmail: "rohan.mehta@example.com", UserName: "Rohan Mehta"}
	service := NewService(&detailRecordingRepo{fakeBookingRepo: repo, detail: detail}, lookup, sink)

	resp, err := service.Book(context.Background(), uuid.New(), slotID, 1)

	require.NoError(t, err, "a failed enqueue never rolls the booking back")
	assert.NotNil(t, resp)
	assert.Len(t, sink.confirmed, 1)
}

func TestListUserBookings_EmptyIsNotNil(t *testing.T) {
	repo := newFakeBookingRepo()
	service := NewService(repo, &fakeSlotLookup{}, &recordingSink{})

	details, err := service.ListUserBookings(uuid.New())

	require.NoError(t, err)
	assert.NotNil(t, details)
	assert.Empty(t, details)
}

func TestListUserBookings_ReturnsDetails(t *testing.T) {
	repo := newFakeBookingRepo()
	userID := uuid.New()
	repo.byUser[userID] = []BookingDetail{
		{BookingID: uuid.New(), SeatsBooked: 2, Status: BookingStatusConfirmed, MovieName: "Avatar"},
		{BookingID: uuid.New(), SeatsBooked: 1, Status: BookingStatusCancelled, MovieName: "3 Idiots"},
	}

	service := NewService(repo, &fakeSlotLookup{}, &recordingSink{})

	details, err := service.ListUserBookings(userID)

	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, "Avatar", details[0].MovieName)
	assert.Equal(t, BookingStatusCancelled, details[1].Status)
}
