package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"resort-backend/events"
	"resort-backend/models"
	"resort-backend/repositories"

	"github.com/google/uuid"
)

// PaymentService records payment attempts against reservations. A payment
// that completes confirms its pending reservation in the same transaction;
// confirmed and cancelled reservations are left as they are.
type PaymentService struct {
	repo   repositories.PaymentRepository
	events events.Publisher
}

func NewPaymentService(repo repositories.PaymentRepository, publisher events.Publisher) *PaymentService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &PaymentService{repo: repo, events: publisher}
}

type PaymentRequest struct {
	Kind          string // events.KindRoom or events.KindService
	ReservationID uint
	Method        string
	// Amount defaults to the reservation total when nil.
	Amount *float64
}

type PaymentUpdate struct {
	Status     string
	ExternalID string
	Details    map[string]any
}

// reservation is the part of a booking a payment needs.
type reservation struct {
	id, resourceID, guestID uint
	reference               string
	status                  string
	total                   float64
}

func loadReservation(ctx context.Context, tx repositories.BookingRepository, kind string, id uint, lock bool) (*reservation, error) {
	switch kind {
	case events.KindRoom:
		b, err := tx.FindRoomBooking(ctx, id, lock)
		if err != nil {
			return nil, notFound(err, ErrNotFound, "room booking %d", id)
		}
		return &reservation{b.ID, b.RoomID, b.GuestID, b.ReferenceCode, b.Status, b.TotalPrice}, nil
	case events.KindService:
		b, err := tx.FindServiceBooking(ctx, id, lock)
		if err != nil {
			return nil, notFound(err, ErrNotFound, "service booking %d", id)
		}
		return &reservation{b.ID, b.ServiceID, b.GuestID, b.ReferenceCode, b.Status, b.TotalPrice}, nil
	}
	return nil, fmt.Errorf("%w: unknown reservation kind %q", ErrInvalidInput, kind)
}

func paymentKind(p *models.Payment) (string, uint) {
	if p.RoomBookingID != nil {
		return events.KindRoom, *p.RoomBookingID
	}
	if p.ServiceBookingID != nil {
		return events.KindService, *p.ServiceBookingID
	}
	return "", 0
}

func (s *PaymentService) CreatePayment(ctx context.Context, req PaymentRequest) (*models.Payment, error) {
	method := strings.TrimSpace(req.Method)
	if method == "" {
		return nil, fmt.Errorf("%w: payment method is required", ErrInvalidInput)
	}

	var created *models.Payment
	err := s.repo.Transaction(ctx, func(tx repositories.PaymentRepository) error {
		res, err := loadReservation(ctx, tx.Bookings(), req.Kind, req.ReservationID, true)
		if err != nil {
			return err
		}
		if res.status == models.StatusCancelled {
			return fmt.Errorf("%w: %s booking %d is cancelled", ErrInvalidInput, req.Kind, res.id)
		}
		amount := res.total
		if req.Amount != nil {
			amount = *req.Amount
		}
		if amount <= 0 || !validRate(amount) {
			return fmt.Errorf("%w: payment amount must be positive", ErrInvalidInput)
		}

		p := &models.Payment{
			Reference: uuid.NewString(),
			Amount:    roundMoney(amount),
			Method:    method,
			Status:    models.PaymentPending,
		}
		id := res.id
		if req.Kind == events.KindRoom {
			p.RoomBookingID = &id
		} else {
			p.ServiceBookingID = &id
		}
		if err := tx.CreatePayment(ctx, p); err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}
		created = p
		return nil
	})
	if err != nil {
		return nil, storeErr(err)
	}
	log.Printf("✅ Payment %d created for %s booking %d: %.2f via %s",
		created.ID, req.Kind, req.ReservationID, created.Amount, created.Method)
	return created, nil
}

// UpdatePaymentStatus moves a pending payment to a new status. Completed,
// failed and cancelled payments are final.
func (s *PaymentService) UpdatePaymentStatus(ctx context.Context, id uint, upd PaymentUpdate) (*models.Payment, error) {
	if !models.IsPaymentStatus(upd.Status) {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, upd.Status)
	}

	var (
		payment   *models.Payment
		confirmed *reservation
		changed   bool
	)
	err := s.repo.Transaction(ctx, func(tx repositories.PaymentRepository) error {
		p, err := tx.FindPayment(ctx, id, true)
		if err != nil {
			return notFound(err, ErrNotFound, "payment %d", id)
		}
		payment = p
		if p.Status == upd.Status {
			return nil
		}
		if p.Status != models.PaymentPending {
			return fmt.Errorf("%w: payment %d is %s", ErrInvalidStatusTransition, id, p.Status)
		}

		p.Status = upd.Status
		if ext := strings.TrimSpace(upd.ExternalID); ext != "" {
			p.ExternalID = ext
		}
		if len(upd.Details) > 0 {
			p.Details = upd.Details
		}
		if err := tx.UpdatePayment(ctx, p); err != nil {
			return fmt.Errorf("failed to update payment %d: %w", id, err)
		}
		changed = true

		if upd.Status != models.PaymentCompleted {
			return nil
		}
		kind, resID := paymentKind(p)
		res, err := loadReservation(ctx, tx.Bookings(), kind, resID, true)
		if err != nil {
			return err
		}
		if res.status != models.StatusPending {
			return nil
		}
		switch kind {
		case events.KindRoom:
			err = tx.Bookings().UpdateRoomBookingStatus(ctx, res.id, models.StatusConfirmed)
		case events.KindService:
			err = tx.Bookings().UpdateServiceBookingStatus(ctx, res.id, models.StatusConfirmed)
		}
		if err != nil {
			return fmt.Errorf("failed to confirm %s booking %d: %w", kind, res.id, err)
		}
		res.status = models.StatusConfirmed
		confirmed = res
		return nil
	})
	if err != nil {
		return nil, storeErr(err)
	}
	if !changed {
		return payment, nil
	}

	kind, resID := paymentKind(payment)
	log.Printf("✅ Payment %d -> %s (%s booking %d)", id, payment.Status, kind, resID)
	ev := events.New(events.PaymentUpdated, kind, resID)
	ev.PaymentID = payment.ID
	ev.Status = payment.Status
	ev.Total = payment.Amount
	publish(ctx, s.events, ev)

	if confirmed != nil {
		log.Printf("✅ %s booking %d confirmed by payment %d", kind, confirmed.id, id)
		cev := events.New(events.BookingStatusChanged, kind, confirmed.id)
		cev.Reference = confirmed.reference
		cev.ResourceID = confirmed.resourceID
		cev.GuestID = confirmed.guestID
		cev.Status = confirmed.status
		cev.Total = confirmed.total
		publish(ctx, s.events, cev)
	}
	return payment, nil
}

func (s *PaymentService) GetPayment(ctx context.Context, id uint) (*models.Payment, error) {
	p, err := readWithRetry(ctx, "get payment", func() (*models.Payment, error) {
		return s.repo.FindPayment(ctx, id, false)
	})
	if err != nil {
		return nil, notFound(err, ErrNotFound, "payment %d", id)
	}
	return p, nil
}

// ListPayments returns every attempt recorded for the reservation, oldest
// first.
func (s *PaymentService) ListPayments(ctx context.Context, kind string, reservationID uint) ([]models.Payment, error) {
	var load func() ([]models.Payment, error)
	switch kind {
	case events.KindRoom:
		load = func() ([]models.Payment, error) { return s.repo.PaymentsForRoomBooking(ctx, reservationID) }
	case events.KindService:
		load = func() ([]models.Payment, error) { return s.repo.PaymentsForServiceBooking(ctx, reservationID) }
	default:
		return nil, fmt.Errorf("%w: unknown reservation kind %q", ErrInvalidInput, kind)
	}
	list, err := readWithRetry(ctx, "list payments", load)
	if list == nil && err == nil {
		list = []models.Payment{}
	}
	return list, err
}
