package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"resort-backend/events"
	"resort-backend/models"
	"resort-backend/repositories"

	"github.com/google/uuid"
)

// BookingService owns the reservation lifecycle. Every create runs
// lock-check-price-insert inside one store transaction holding a row lock on
// the resource, so two overlapping requests for the same room or service
// cannot both succeed.
type BookingService struct {
	repo   repositories.BookingRepository
	events events.Publisher
}

func NewBookingService(repo repositories.BookingRepository, publisher events.Publisher) *BookingService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &BookingService{repo: repo, events: publisher}
}

type RoomBookingRequest struct {
	GuestID   uint
	RoomID    uint
	CheckIn   time.Time
	CheckOut  time.Time
	PartySize int
	WithMeal  bool
	Phone     string
	Notes     string
}

type ServiceBookingRequest struct {
	GuestID       uint
	ServiceID     uint
	RoomBookingID *uint
	Start         time.Time
	End           time.Time
	PartySize     int
	Notes         string
}

type GuestBookings struct {
	Rooms    []models.RoomBooking    `json:"rooms"`
	Services []models.ServiceBooking `json:"services"`
}

func newReference(prefix string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "-" + strings.ToUpper(id[:8])
}

// CreateRoomBooking reserves a room for the nights [CheckIn, CheckOut) in
// pending status. Write faults are returned as-is and never retried.
func (s *BookingService) CreateRoomBooking(ctx context.Context, req RoomBookingRequest) (*models.RoomBooking, error) {
	stay, err := StayInterval(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	if req.PartySize < 1 {
		return nil, fmt.Errorf("%w: party size must be at least 1", ErrInvalidInput)
	}

	var created *models.RoomBooking
	err = s.repo.Transaction(ctx, func(tx repositories.BookingRepository) error {
		if err := ensureGuest(ctx, tx, req.GuestID); err != nil {
			return err
		}

		room, err := tx.LockRoom(ctx, req.RoomID)
		if err != nil {
			return notFound(err, ErrResourceNotFound, "room %d", req.RoomID)
		}
		if !room.IsAvailable {
			return fmt.Errorf("%w: room %d is disabled", ErrResourceUnavailable, room.ID)
		}

		existing, err := tx.OverlappingRoomBookings(ctx, room.ID, stay.Start, stay.End)
		if err != nil {
			return err
		}
		for _, b := range existing {
			if b.Status != models.StatusCancelled && Overlaps(stay, Interval{Start: b.CheckIn, End: b.CheckOut}) {
				return fmt.Errorf("%w: room %d is booked from %s to %s",
					ErrResourceUnavailable, room.ID, b.CheckIn.Format(time.DateOnly), b.CheckOut.Format(time.DateOnly))
			}
		}

		price, err := PriceRoomStay(room, stay.Start, stay.End, req.PartySize, req.WithMeal)
		if err != nil {
			return err
		}
		details, err := json.Marshal(price)
		if err != nil {
			return fmt.Errorf("encode price breakdown: %w", err)
		}

		b := &models.RoomBooking{
			ReferenceCode: newReference("RB"),
			GuestID:       req.GuestID,
			RoomID:        room.ID,
			CheckIn:       stay.Start,
			CheckOut:      stay.End,
			PartySize:     req.PartySize,
			WithMeal:      price.WithMeal,
			TotalPrice:    price.Total,
			PriceDetails:  details,
			Status:        models.StatusPending,
			Phone:         strings.TrimSpace(req.Phone),
			Notes:         strings.TrimSpace(req.Notes),
		}
		if err := tx.CreateRoomBooking(ctx, b); err != nil {
			return fmt.Errorf("failed to create room booking: %w", err)
		}
		b.Room = *room
		created = b
		return nil
	})
	if err != nil {
		return nil, storeErr(err)
	}

	log.Printf("✅ Room booking %d (%s) created: room=%d guest=%d %s..%s total=%.2f",
		created.ID, created.ReferenceCode, created.RoomID, created.GuestID,
		created.CheckIn.Format(time.DateOnly), created.CheckOut.Format(time.DateOnly), created.TotalPrice)
	publish(ctx, s.events, roomBookingEvent(events.BookingCreated, created))
	return created, nil
}

// CreateServiceBooking reserves a service for [Start, End) in pending status.
func (s *BookingService) CreateServiceBooking(ctx context.Context, req ServiceBookingRequest) (*models.ServiceBooking, error) {
	slot, err := NewInterval(req.Start.UTC(), req.End.UTC())
	if err != nil {
		return nil, err
	}
	if req.PartySize < 1 {
		return nil, fmt.Errorf("%w: party size must be at least 1", ErrInvalidInput)
	}

	var created *models.ServiceBooking
	err = s.repo.Transaction(ctx, func(tx repositories.BookingRepository) error {
		if err := ensureGuest(ctx, tx, req.GuestID); err != nil {
			return err
		}
		if req.RoomBookingID != nil {
			stay, err := tx.FindRoomBooking(ctx, *req.RoomBookingID, false)
			if err != nil {
				return notFound(err, ErrNotFound, "room booking %d", *req.RoomBookingID)
			}
			if stay.GuestID != req.GuestID {
				return fmt.Errorf("%w: room booking %d belongs to another guest", ErrInvalidInput, stay.ID)
			}
		}

		svc, err := tx.LockService(ctx, req.ServiceID)
		if err != nil {
			return notFound(err, ErrResourceNotFound, "service %d", req.ServiceID)
		}
		if !svc.IsAvailable {
			return fmt.Errorf("%w: service %d is disabled", ErrResourceUnavailable, svc.ID)
		}
		if svc.MaxCapacity != nil && req.PartySize > *svc.MaxCapacity {
			return fmt.Errorf("%w: party of %d exceeds service capacity %d",
				ErrCapacityExceeded, req.PartySize, *svc.MaxCapacity)
		}

		existing, err := tx.OverlappingServiceBookings(ctx, svc.ID, slot.Start, slot.End)
		if err != nil {
			return err
		}
		for _, b := range existing {
			if b.Status != models.StatusCancelled && Overlaps(slot, Interval{Start: b.StartTime, End: b.EndTime}) {
				return fmt.Errorf("%w: service %d is booked from %s to %s", ErrResourceUnavailable,
					svc.ID, b.StartTime.Format(time.DateTime), b.EndTime.Format(time.DateTime))
			}
		}

		price, err := PriceServiceBooking(svc, slot, req.PartySize)
		if err != nil {
			return err
		}

		b := &models.ServiceBooking{
			ReferenceCode: newReference("SB"),
			GuestID:       req.GuestID,
			ServiceID:     svc.ID,
			RoomBookingID: req.RoomBookingID,
			Date:          DateOnly(slot.Start),
			StartTime:     slot.Start,
			EndTime:       slot.End,
			PartySize:     req.PartySize,
			TotalPrice:    price,
			Status:        models.StatusPending,
			Notes:         strings.TrimSpace(req.Notes),
		}
		if err := tx.CreateServiceBooking(ctx, b); err != nil {
			return fmt.Errorf("failed to create service booking: %w", err)
		}
		b.Service = *svc
		created = b
		return nil
	})
	if err != nil {
		return nil, storeErr(err)
	}

	log.Printf("✅ Service booking %d (%s) created: service=%d guest=%d %s..%s total=%.2f",
		created.ID, created.ReferenceCode, created.ServiceID, created.GuestID,
		created.StartTime.Format(time.DateTime), created.EndTime.Format(time.DateTime), created.TotalPrice)
	publish(ctx, s.events, serviceBookingEvent(events.BookingCreated, created))
	return created, nil
}

func ensureGuest(ctx context.Context, tx repositories.BookingRepository, guestID uint) error {
	ok, err := tx.GuestExists(ctx, guestID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: guest %d", ErrNotFound, guestID)
	}
	return nil
}

// nextStatus decides whether moving from current to target changes anything.
// Cancelled is terminal: only a repeated cancel is accepted.
func nextStatus(current, target string) (bool, error) {
	if !models.IsBookingStatus(target) {
		return false, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, target)
	}
	if current == target {
		return false, nil
	}
	if current == models.StatusCancelled {
		return false, fmt.Errorf("%w: reservation is cancelled", ErrInvalidStatusTransition)
	}
	return true, nil
}

// CancelRoomBooking is idempotent: cancelling a cancelled booking succeeds.
func (s *BookingService) CancelRoomBooking(ctx context.Context, id uint) (*models.RoomBooking, error) {
	return s.SetRoomBookingStatus(ctx, id, models.StatusCancelled)
}

func (s *BookingService) CancelServiceBooking(ctx context.Context, id uint) (*models.ServiceBooking, error) {
	return s.SetServiceBookingStatus(ctx, id, models.StatusCancelled)
}

func (s *BookingService) SetRoomBookingStatus(ctx context.Context, id uint, status string) (*models.RoomBooking, error) {
	var (
		booking *models.RoomBooking
		changed bool
	)
	err := s.repo.Transaction(ctx, func(tx repositories.BookingRepository) error {
		b, err := tx.FindRoomBooking(ctx, id, true)
		if err != nil {
			return notFound(err, ErrNotFound, "room booking %d", id)
		}
		if changed, err = nextStatus(b.Status, status); err != nil || !changed {
			booking = b
			return err
		}
		if err := tx.UpdateRoomBookingStatus(ctx, id, status); err != nil {
			return fmt.Errorf("failed to update room booking %d: %w", id, err)
		}
		b.Status = status
		booking = b
		return nil
	})
	if err != nil {
		return nil, storeErr(err)
	}
	if changed {
		log.Printf("✅ Room booking %d -> %s", id, status)
		publish(ctx, s.events, roomBookingEvent(statusEventType(status), booking))
	}
	return booking, nil
}

func (s *BookingService) SetServiceBookingStatus(ctx context.Context, id uint, status string) (*models.ServiceBooking, error) {
	var (
		booking *models.ServiceBooking
		changed bool
	)
	err := s.repo.Transaction(ctx, func(tx repositories.BookingRepository) error {
		b, err := tx.FindServiceBooking(ctx, id, true)
		if err != nil {
			return notFound(err, ErrNotFound, "service booking %d", id)
		}
		if changed, err = nextStatus(b.Status, status); err != nil || !changed {
			booking = b
			return err
		}
		if err := tx.UpdateServiceBookingStatus(ctx, id, status); err != nil {
			return fmt.Errorf("failed to update service booking %d: %w", id, err)
		}
		b.Status = status
		booking = b
		return nil
	})
	if err != nil {
		return nil, storeErr(err)
	}
	if changed {
		log.Printf("✅ Service booking %d -> %s", id, status)
		publish(ctx, s.events, serviceBookingEvent(statusEventType(status), booking))
	}
	return booking, nil
}

func statusEventType(status string) string {
	if status == models.StatusCancelled {
		return events.BookingCancelled
	}
	return events.BookingStatusChanged
}

func (s *BookingService) GetRoomBooking(ctx context.Context, id uint) (*models.RoomBooking, error) {
	b, err := readWithRetry(ctx, "get room booking", func() (*models.RoomBooking, error) {
		return s.repo.FindRoomBooking(ctx, id, false)
	})
	if err != nil {
		return nil, notFound(err, ErrNotFound, "room booking %d", id)
	}
	return b, nil
}

func (s *BookingService) GetServiceBooking(ctx context.Context, id uint) (*models.ServiceBooking, error) {
	b, err := readWithRetry(ctx, "get service booking", func() (*models.ServiceBooking, error) {
		return s.repo.FindServiceBooking(ctx, id, false)
	})
	if err != nil {
		return nil, notFound(err, ErrNotFound, "service booking %d", id)
	}
	return b, nil
}

func (s *BookingService) GuestBookings(ctx context.Context, guestID uint) (*GuestBookings, error) {
	rooms, err := readWithRetry(ctx, "guest room bookings", func() ([]models.RoomBooking, error) {
		return s.repo.GuestRoomBookings(ctx, guestID)
	})
	if err != nil {
		return nil, err
	}
	svcs, err := readWithRetry(ctx, "guest service bookings", func() ([]models.ServiceBooking, error) {
		return s.repo.GuestServiceBookings(ctx, guestID)
	})
	if err != nil {
		return nil, err
	}
	if rooms == nil {
		rooms = []models.RoomBooking{}
	}
	if svcs == nil {
		svcs = []models.ServiceBooking{}
	}
	return &GuestBookings{Rooms: rooms, Services: svcs}, nil
}

// IsRoomFree reports whether no non-cancelled booking of roomID overlaps the
// nights [checkIn, checkOut). It is advisory; only CreateRoomBooking decides.
func (s *BookingService) IsRoomFree(ctx context.Context, roomID uint, checkIn, checkOut time.Time) (bool, error) {
	stay, err := StayInterval(checkIn, checkOut)
	if err != nil {
		return false, err
	}
	taken, err := s.roomIntervals(ctx, roomID, stay)
	if err != nil {
		return false, err
	}
	return freeOf(stay, taken), nil
}

func (s *BookingService) IsServiceFree(ctx context.Context, serviceID uint, slot Interval) (bool, error) {
	if !slot.End.After(slot.Start) {
		return false, fmt.Errorf("%w: slot must end after it starts", ErrInvalidDateRange)
	}
	taken, err := s.serviceIntervals(ctx, serviceID, slot)
	if err != nil {
		return false, err
	}
	return freeOf(slot, taken), nil
}

// AvailableSlots lists the slots of svc on date. Every slot of a disabled
// service is unavailable.
func (s *BookingService) AvailableSlots(ctx context.Context, svc *models.Service, date time.Time, window SlotWindow) ([]Slot, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}
	day := DateOnly(date)
	span := Interval{Start: day.Add(window.DayStart), End: day.Add(window.DayEnd)}
	if !svc.IsAvailable {
		return BuildSlots(day, window, []Interval{span})
	}
	taken, err := s.serviceIntervals(ctx, svc.ID, span)
	if err != nil {
		return nil, err
	}
	return BuildSlots(day, window, taken)
}

func (s *BookingService) roomIntervals(ctx context.Context, roomID uint, within Interval) ([]Interval, error) {
	list, err := readWithRetry(ctx, "room availability", func() ([]models.RoomBooking, error) {
		return s.repo.OverlappingRoomBookings(ctx, roomID, within.Start, within.End)
	})
	if err != nil {
		return nil, err
	}
	out := make([]Interval, 0, len(list))
	for _, b := range list {
		if b.Status != models.StatusCancelled {
			out = append(out, Interval{Start: b.CheckIn, End: b.CheckOut})
		}
	}
	return out, nil
}

func (s *BookingService) serviceIntervals(ctx context.Context, serviceID uint, within Interval) ([]Interval, error) {
	list, err := readWithRetry(ctx, "service availability", func() ([]models.ServiceBooking, error) {
		return s.repo.OverlappingServiceBookings(ctx, serviceID, within.Start, within.End)
	})
	if err != nil {
		return nil, err
	}
	out := make([]Interval, 0, len(list))
	for _, b := range list {
		if b.Status != models.StatusCancelled {
			out = append(out, Interval{Start: b.StartTime, End: b.EndTime})
		}
	}
	return out, nil
}

// IsBookingDecision reports whether err is an expected rejection rather than
// a fault.
func IsBookingDecision(err error) bool {
	return errors.Is(err, ErrInvalidDateRange) ||
		errors.Is(err, ErrResourceNotFound) ||
		errors.Is(err, ErrResourceUnavailable) ||
		errors.Is(err, ErrCapacityExceeded) ||
		errors.Is(err, ErrConfiguration)
}
