package services

import (
	"context"
	"errors"
	"testing"

	"resort-backend/events"
	"resort-backend/models"
)

type paymentFixture struct {
	*bookingFixture
	payments *PaymentService
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	f := newBookingFixture(t)
	return &paymentFixture{bookingFixture: f, payments: NewPaymentService(memPayments{f.store}, f.events)}
}

func TestCreatePayment(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	b, _ := f.bookRoom("2025-03-06", "2025-03-10", 2)

	p, err := f.payments.CreatePayment(ctx, PaymentRequest{Kind: events.KindRoom, ReservationID: b.ID, Method: "card"})
	if err != nil {
		t.Fatal(err)
	}
	if p.Amount != b.TotalPrice || p.Status != models.PaymentPending || p.RoomBookingID == nil || *p.RoomBookingID != b.ID {
		t.Fatalf("payment = %+v", p)
	}
	if p.ServiceBookingID != nil || p.Reference == "" {
		t.Fatalf("payment = %+v", p)
	}

	partial, err := f.payments.CreatePayment(ctx, PaymentRequest{Kind: events.KindRoom, ReservationID: b.ID, Method: "cash", Amount: ptr(1000.0)})
	if err != nil || partial.Amount != 1000 {
		t.Fatalf("explicit amount = %+v, %v", partial, err)
	}

	list, err := f.payments.ListPayments(ctx, events.KindRoom, b.ID)
	if err != nil || len(list) != 2 {
		t.Fatalf("list = %+v, %v", list, err)
	}
}

func TestCreatePaymentRejections(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	b, _ := f.bookRoom("2025-03-06", "2025-03-10", 2)
	cancelled, _ := f.bookRoom("2025-03-20", "2025-03-21", 2)
	_, _ = f.svc.CancelRoomBooking(ctx, cancelled.ID)

	cases := []struct {
		name string
		req  PaymentRequest
		want error
	}{
		{"no method", PaymentRequest{Kind: events.KindRoom, ReservationID: b.ID}, ErrInvalidInput},
		{"bad kind", PaymentRequest{Kind: "spa", ReservationID: b.ID, Method: "card"}, ErrInvalidInput},
		{"unknown booking", PaymentRequest{Kind: events.KindRoom, ReservationID: 999, Method: "card"}, ErrNotFound},
		{"zero amount", PaymentRequest{Kind: events.KindRoom, ReservationID: b.ID, Method: "card", Amount: ptr(0.0)}, ErrInvalidInput},
		{"cancelled booking", PaymentRequest{Kind: events.KindRoom, ReservationID: cancelled.ID, Method: "card"}, ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.payments.CreatePayment(ctx, tc.req); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestCompletedPaymentConfirmsPendingBooking(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	b, _ := f.bookService("2025-03-03", "09:00", "11:00", 2)
	p, _ := f.payments.CreatePayment(ctx, PaymentRequest{Kind: events.KindService, ReservationID: b.ID, Method: "card"})

	got, err := f.payments.UpdatePaymentStatus(ctx, p.ID, PaymentUpdate{
		Status: models.PaymentCompleted, ExternalID: "ch_123", Details: map[string]any{"last4": "4242"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.PaymentCompleted || got.ExternalID != "ch_123" || got.Details["last4"] != "4242" {
		t.Fatalf("payment = %+v", got)
	}
	if stored := f.store.serviceBooking(b.ID); stored.Status != models.StatusConfirmed {
		t.Fatalf("booking status = %s, want confirmed", stored.Status)
	}
	types := f.events.types()
	if len(types) != 3 || types[1] != events.PaymentUpdated || types[2] != events.BookingStatusChanged {
		t.Fatalf("events = %v", types)
	}

	// Same status again is a no-op; any other change from a final status is refused.
	if _, err := f.payments.UpdatePaymentStatus(ctx, p.ID, PaymentUpdate{Status: models.PaymentCompleted}); err != nil {
		t.Fatalf("repeat: %v", err)
	}
	if _, err := f.payments.UpdatePaymentStatus(ctx, p.ID, PaymentUpdate{Status: models.PaymentFailed}); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatalf("completed -> failed: got %v", err)
	}
}

func TestFailedPaymentLeavesBookingPending(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	b, _ := f.bookRoom("2025-03-06", "2025-03-10", 2)
	p, _ := f.payments.CreatePayment(ctx, PaymentRequest{Kind: events.KindRoom, ReservationID: b.ID, Method: "card"})

	if _, err := f.payments.UpdatePaymentStatus(ctx, p.ID, PaymentUpdate{Status: models.PaymentFailed}); err != nil {
		t.Fatal(err)
	}
	if stored := f.store.roomBooking(b.ID); stored.Status != models.StatusPending {
		t.Fatalf("booking status = %s", stored.Status)
	}
	if _, err := f.payments.UpdatePaymentStatus(ctx, p.ID, PaymentUpdate{Status: "refunded"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown status: got %v", err)
	}
	if _, err := f.payments.UpdatePaymentStatus(ctx, 999, PaymentUpdate{Status: models.PaymentCompleted}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown payment: got %v", err)
	}
}

func TestCompletedPaymentRollsBackWhenConfirmFails(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()
	b, _ := f.bookRoom("2025-03-06", "2025-03-10", 2)
	p, _ := f.payments.CreatePayment(ctx, PaymentRequest{Kind: events.KindRoom, ReservationID: b.ID, Method: "card"})

	f.store.failOn("UpdateRoomBookingStatus", errors.New("disk full"))
	if _, err := f.payments.UpdatePaymentStatus(ctx, p.ID, PaymentUpdate{Status: models.PaymentCompleted}); err == nil {
		t.Fatal("expected failure")
	}
	got, _ := f.payments.GetPayment(ctx, p.ID)
	if got.Status != models.PaymentPending {
		t.Fatalf("payment status after rollback = %s", got.Status)
	}
}
