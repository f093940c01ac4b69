package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	BookingCreated       = "booking.created"
	BookingCancelled     = "booking.cancelled"
	BookingStatusChanged = "booking.status_changed"
	PaymentUpdated       = "payment.updated"
)

const (
	KindRoom    = "room"
	KindService = "service"
)

// Event is published after a booking or payment change has been committed.
type Event struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Kind          string    `json:"kind"`
	ReservationID uint      `json:"reservationId"`
	Reference     string    `json:"reference,omitempty"`
	ResourceID    uint      `json:"resourceId,omitempty"`
	GuestID       uint      `json:"guestId,omitempty"`
	PaymentID     uint      `json:"paymentId,omitempty"`
	Status        string    `json:"status"`
	Total         float64   `json:"total"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType, kind string, reservationID uint) Event {
	return Event{
		ID:            uuid.NewString(),
		Type:          eventType,
		Kind:          kind,
		ReservationID: reservationID,
		OccurredAt:    time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                        { return nil }
