package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeTicketConfirmed NotificationType = "TICKET_CONFIRMED"
	NotificationTypeTicketCancelled NotificationType = "TICKET_CANCELLED"
)

type NotificationStatus string

const (
	NotificationStatusPending  NotificationStatus = "PENDING"
	NotificationStatusQueued   NotificationStatus = "QUEUED"
	NotificationStatusSending  NotificationStatus = "SENDING"
	NotificationStatusSent     NotificationStatus = "SENT"
	NotificationStatusFailed   NotificationStatus = "FAILED"
	NotificationStatusRetrying NotificationStatus = "RETRYING"
)

// TicketDetails is the booking snapshot rendered into ticket emails. It is
// captured at enqueue time; by the time the worker runs, the slot or booking
// may already be gone.
type TicketDetails struct {
	MovieName      string    `json:"movie_name"`
	Date           time.Time `json:"date"`
	SlotHour       int       `json:"slot_hour"`
	SeatsBooked    int       `json:"seats_booked"`
	AuditoriumName string    `json:"auditorium_name"`
	TheatreName    string    `json:"theatre_name"`
}

// EmailNotification is the message published to Kafka and consumed by the
// email workers. Ticket is nil for schedule-change cancellations, which carry
// no per-booking detail.
type EmailNotification struct {
	ID   uuid.UUID        `json:"id"`
	Type NotificationType `json:"type"`

	RecipientEmail string `json:"recipient_email"`
	RecipientName  string `json:"recipient_name"`

	Subject string         `json:"subject"`
	Ticket  *TicketDetails `json:"ticket,omitempty"`

	Status     NotificationStatus `json:"status"`
	RetryCount int                `json:"retry_count"`
	MaxRetries int                `json:"max_retries"`
	LastError  *string            `json:"last_error,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	SentAt     *time.Time         `json:"sent_at,omitempty"`
}

type NotificationBuilder struct {
	notification *EmailNotification
}

func NewNotificationBuilder() *NotificationBuilder {
	return &NotificationBuilder{
		notification: &EmailNotification{
			ID:         uuid.New(),
			Status:     NotificationStatusPending,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
			MaxRetries: 3,
		},
	}
}

func (nb *NotificationBuilder) WithType(notType NotificationType) *NotificationBuilder {
	nb.notification.Type = notType
	nb.notification.Subject = defaultSubject(notType)
	return nb
}

func (nb *NotificationBuilder) WithRecipient(email, name string) *NotificationBuilder {
	nb.notification.RecipientEmail = email
	nb.notification.RecipientName = name
	return nb
}

func (nb *NotificationBuilder) WithSubject(subject string) *NotificationBuilder {
	nb.notification.Subject = subject
	return nb
}

func (nb *NotificationBuilder) WithTicket(ticket *TicketDetails) *NotificationBuilder {
	nb.notification.Ticket = ticket
	return nb
}

func (nb *NotificationBuilder) WithMaxRetries(maxRetries int) *NotificationBuilder {
	nb.notification.MaxRetries = maxRetries
	return nb
}

func (nb *NotificationBuilder) Build() *EmailNotification {
	return nb.notification
}

func defaultSubject(notType NotificationType) string {
	switch notType {
	case NotificationTypeTicketConfirmed:
		return "Ticket Confirmation"
	case NotificationTypeTicketCancelled:
		return "Ticket Cancellation"
	default:
		return "Notification from Cinebook"
	}
}

// GetPartitionKey routes all messages for one recipient to one partition so
// their emails stay ordered.
func (en *EmailNotification) GetPartitionKey() string {
	return en.RecipientEmail
}

func (en *EmailNotification) ToJSON() ([]byte, error) {
	return json.Marshal(en)
}

func (en *EmailNotification) MarkSent() {
	now := time.Now()
	en.Status = NotificationStatusSent
	en.SentAt = &now
	en.UpdatedAt = now
}

func (en *EmailNotification) MarkFailed(err error) {
	en.Status = NotificationStatusFailed
	en.UpdatedAt = time.Now()

	errorStr := err.Error()
	en.LastError = &errorStr
}
