package notifications

import (
	"context"
	"log"
)

// Recipient identifies one mailbox for a detail-less schedule-change email.
type Recipient struct {
	Email string
	Name  string
}

// Sink is the fire-and-forget boundary the booking and cancellation domains
// enqueue emails through. Callers never wait on delivery; a failed enqueue is
// reported back so the caller can log it, but must never fail the triggering
// operation.
type Sink interface {
	// EnqueueTicketConfirmed queues one confirmation email with the full
	// booking snapshot.
	EnqueueTicketConfirmed(ctx context.Context, recipientEmail, recipientName string, ticket *TicketDetails) error

	// EnqueueTicketCancelled queues one cancellation email. Ticket may be nil
	// for schedule-change cancellations, which carry no per-booking detail.
	EnqueueTicketCancelled(ctx context.Context, recipientEmail, recipientName string, ticket *TicketDetails) error

	// EnqueueScheduleChangeBatch queues one detail-less cancellation email per
	// recipient in a single producer call.
	EnqueueScheduleChangeBatch(ctx context.Context, recipients []Recipient) error
}

// LogSink is the fallback used when Kafka is unavailable: it records the
// notification and drops it, keeping bookings and cancellations functional.
type LogSink struct{}

func NewLogSink() *LogSink {
	return &LogSink{}
}

func (s *LogSink) EnqueueTicketConfirmed(ctx context.Context, recipientEmail, recipientName string, ticket *TicketDetails) error {
	log.Printf("📧 [log-sink] ticket confirmation for %s dropped (no broker)", recipientEmail)
	return nil
}

func (s *LogSink) EnqueueTicketCancelled(ctx context.Context, recipientEmail, recipientName string, ticket *TicketDetails) error {
	log.Printf("📧 [log-sink] ticket cancellation for %s dropped (no broker)", recipientEmail)
	return nil
}

func (s *LogSink) EnqueueScheduleChangeBatch(ctx context.Context, recipients []Recipient) error {
	log.Printf("📧 [log-sink] %d schedule-change cancellations dropped (no broker)", len(recipients))
	return nil
}
