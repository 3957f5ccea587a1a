package notifications

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	published  []*EmailNotification
	batches    [][]*EmailNotification
	publishErr error
}

func (f *fakePublisher) Publish(notification *EmailNotification) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, notification)
	return nil
}

func (f *fakePublisher) PublishBatch(notifications []*EmailNotification) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.batches = append(f.batches, notifications)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func TestEnqueueTicketConfirmed_PublishesSingleMessage(t *testing.T) {
	publisher := &fakePublisher{}
	service := &emailNotificationService{producer: publisher}

	ticket := &TicketDetails{MovieName: "Interstellar", SlotHour: 12, SeatsBooked: 2}
	err := service.EnqueueTicketConfirmed(context.Background(), "asha.rao@example.com", "Asha Rao", ticket)

	require.NoError(t, err)
	require.Len(t, publisher.published, 1)
	assert.Equal(t, NotificationTypeTicketConfirmed, publisher.published[0].Type)
	assert.Equal(t, "asha.rao@example.com", publisher.published[0].RecipientEmail)
	assert.Equal(t, ticket, publisher.published[0].Ticket)
}

func TestEnqueueScheduleChangeBatch_PublishesOneBatch(t *testing.T) {
	publisher := &fakePublisher{}
	service := &emailNotificationService{producer: publisher}

	recipients := []Recipient{
		{Email: "asha.rao@example.com", Name: "Asha Rao"},
		{Email: "rohan.mehta@example.com", Name: "Rohan Mehta"},
	}
	err := service.EnqueueScheduleChangeBatch(context.Background(), recipients)

	require.NoError(t, err)
	require.Len(t, publisher.batches, 1, "all recipients go out in one producer call")

	batch := publisher.batches[0]
	require.Len(t, batch, 2)
	for i, notification := range batch {
		assert.Equal(t, NotificationTypeTicketCancelled, notification.Type)
		assert.Equal(t, recipients[i].Email, notification.RecipientEmail)
		assert.Equal(t, recipients[i].Email, notification.GetPartitionKey())
		assert.Nil(t, notification.Ticket, "schedule changes carry no per-booking detail")
	}
}
