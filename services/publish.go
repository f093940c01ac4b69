package services

import (
	"context"
	"log"
	"time"

	"resort-backend/events"
	"resort-backend/models"
)

const publishTimeout = 5 * time.Second

// publish sends ev after the change it describes has been committed. A
// failure is logged and never reported to the caller.
func publish(ctx context.Context, p events.Publisher, ev events.Event) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := p.Publish(ctx, ev); err != nil {
		log.Printf("❌ Failed to publish %s %s #%d: %v", ev.Type, ev.Kind, ev.ReservationID, err)
	}
}

func roomBookingEvent(eventType string, b *models.RoomBooking) events.Event {
	ev := events.New(eventType, events.KindRoom, b.ID)
	ev.Reference = b.ReferenceCode
	ev.ResourceID = b.RoomID
	ev.GuestID = b.GuestID
	ev.Status = b.Status
	ev.Total = b.TotalPrice
	return ev
}

func serviceBookingEvent(eventType string, b *models.ServiceBooking) events.Event {
	ev := events.New(eventType, events.KindService, b.ID)
	ev.Reference = b.ReferenceCode
	ev.ResourceID = b.ServiceID
	ev.GuestID = b.GuestID
	ev.Status = b.Status
	ev.Total = b.TotalPrice
	return ev
}
