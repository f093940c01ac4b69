package services

import (
	"context"
	"fmt"
	"time"

	"resort-backend/models"
	"resort-backend/repositories"
)

// OccupancySpan is the calendar projection of one reservation. It is for
// display only and never feeds a booking decision.
type OccupancySpan struct {
	BookingID     uint      `json:"bookingId"`
	ReferenceCode string    `json:"referenceCode"`
	ResourceID    uint      `json:"resourceId"`
	GuestID       uint      `json:"guestId"`
	GuestName     string    `json:"guestName"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	PartySize     int       `json:"partySize"`
	Status        string    `json:"status"`
}

type BookingTotals struct {
	Total     int64   `json:"total"`
	Active    int64   `json:"active"`
	Cancelled int64   `json:"cancelled"`
	Revenue   float64 `json:"revenue"`
}

type BookingStats struct {
	Rooms    BookingTotals `json:"rooms"`
	Services BookingTotals `json:"services"`
}

type OccupancyService struct {
	repo      repositories.OccupancyRepository
	resources repositories.ResourceRepository
}

func NewOccupancyService(repo repositories.OccupancyRepository, resources repositories.ResourceRepository) *OccupancyService {
	return &OccupancyService{repo: repo, resources: resources}
}

// reportWindow turns the inclusive calendar range [start, end] into the
// half-open interval [start, end+1 day).
func reportWindow(start, end time.Time) (Interval, error) {
	if start.IsZero() || end.IsZero() {
		return Interval{}, fmt.Errorf("%w: report dates are required", ErrInvalidDateRange)
	}
	s, e := DateOnly(start), DateOnly(end)
	if e.Before(s) {
		return Interval{}, fmt.Errorf("%w: report end %s is before start %s",
			ErrInvalidDateRange, e.Format(time.DateOnly), s.Format(time.DateOnly))
	}
	return Interval{Start: s, End: e.AddDate(0, 0, 1)}, nil
}

func roomSpan(b models.RoomBooking) OccupancySpan {
	return OccupancySpan{
		BookingID:     b.ID,
		ReferenceCode: b.ReferenceCode,
		ResourceID:    b.RoomID,
		GuestID:       b.GuestID,
		GuestName:     guestName(b.Guest, b.GuestID),
		Start:         b.CheckIn,
		End:           b.CheckOut,
		PartySize:     b.PartySize,
		Status:        b.Status,
	}
}

func serviceSpan(b models.ServiceBooking) OccupancySpan {
	return OccupancySpan{
		BookingID:     b.ID,
		ReferenceCode: b.ReferenceCode,
		ResourceID:    b.ServiceID,
		GuestID:       b.GuestID,
		GuestName:     guestName(b.Guest, b.GuestID),
		Start:         b.StartTime,
		End:           b.EndTime,
		PartySize:     b.PartySize,
		Status:        b.Status,
	}
}

func guestName(g models.Guest, id uint) string {
	if g.ID == 0 {
		g.ID = id
	}
	return g.DisplayName()
}

// RoomOccupancy lists non-cancelled bookings of roomID overlapping the
// calendar days start..end inclusive, ordered by check-in.
func (s *OccupancyService) RoomOccupancy(ctx context.Context, roomID uint, start, end time.Time) ([]OccupancySpan, error) {
	window, err := reportWindow(start, end)
	if err != nil {
		return nil, err
	}
	if _, err := readWithRetry(ctx, "find room", func() (*models.Room, error) {
		return s.resources.FindRoom(ctx, roomID)
	}); err != nil {
		return nil, notFound(err, ErrResourceNotFound, "room %d", roomID)
	}
	byRoom, err := s.roomSpans(ctx, []uint{roomID}, window)
	if err != nil {
		return nil, err
	}
	spans := byRoom[roomID]
	if spans == nil {
		spans = []OccupancySpan{}
	}
	return spans, nil
}

// AllRoomsOccupancy returns an entry for every room, empty when the room has
// no bookings in the range.
func (s *OccupancyService) AllRoomsOccupancy(ctx context.Context, start, end time.Time) (map[uint][]OccupancySpan, error) {
	window, err := reportWindow(start, end)
	if err != nil {
		return nil, err
	}
	rooms, err := readWithRetry(ctx, "list rooms", func() ([]models.Room, error) {
		return s.resources.ListRooms(ctx, false)
	})
	if err != nil {
		return nil, err
	}
	byRoom, err := s.roomSpans(ctx, nil, window)
	if err != nil {
		return nil, err
	}
	out := make(map[uint][]OccupancySpan, len(rooms))
	for _, r := range rooms {
		spans := byRoom[r.ID]
		if spans == nil {
			spans = []OccupancySpan{}
		}
		out[r.ID] = spans
	}
	return out, nil
}

func (s *OccupancyService) roomSpans(ctx context.Context, roomIDs []uint, window Interval) (map[uint][]OccupancySpan, error) {
	list, err := readWithRetry(ctx, "room occupancy", func() ([]models.RoomBooking, error) {
		return s.repo.RoomBookingsBetween(ctx, roomIDs, window.Start, window.End)
	})
	if err != nil {
		return nil, err
	}
	out := make(map[uint][]OccupancySpan)
	for _, b := range list {
		if b.Status == models.StatusCancelled || !Overlaps(window, Interval{Start: b.CheckIn, End: b.CheckOut}) {
			continue
		}
		out[b.RoomID] = append(out[b.RoomID], roomSpan(b))
	}
	return out, nil
}

// ServiceOccupancy lists the non-cancelled bookings of serviceID on date,
// ordered by start time.
func (s *OccupancyService) ServiceOccupancy(ctx context.Context, serviceID uint, date time.Time) ([]OccupancySpan, error) {
	window, err := reportWindow(date, date)
	if err != nil {
		return nil, err
	}
	if _, err := readWithRetry(ctx, "find service", func() (*models.Service, error) {
		return s.resources.FindService(ctx, serviceID)
	}); err != nil {
		return nil, notFound(err, ErrResourceNotFound, "service %d", serviceID)
	}
	list, err := readWithRetry(ctx, "service occupancy", func() ([]models.ServiceBooking, error) {
		return s.repo.ServiceBookingsBetween(ctx, serviceID, window.Start, window.End)
	})
	if err != nil {
		return nil, err
	}
	out := make([]OccupancySpan, 0, len(list))
	for _, b := range list {
		if b.Status == models.StatusCancelled || !Overlaps(window, Interval{Start: b.StartTime, End: b.EndTime}) {
			continue
		}
		out = append(out, serviceSpan(b))
	}
	return out, nil
}

// Arrivals lists non-cancelled room bookings checking in on date.
func (s *OccupancyService) Arrivals(ctx context.Context, date time.Time) ([]models.RoomBooking, error) {
	return readWithRetry(ctx, "arrivals", func() ([]models.RoomBooking, error) {
		return s.repo.RoomBookingsCheckingIn(ctx, DateOnly(date))
	})
}

// Departures lists non-cancelled room bookings checking out on date.
func (s *OccupancyService) Departures(ctx context.Context, date time.Time) ([]models.RoomBooking, error) {
	return readWithRetry(ctx, "departures", func() ([]models.RoomBooking, error) {
		return s.repo.RoomBookingsCheckingOut(ctx, DateOnly(date))
	})
}

// Stats counts bookings of both kinds. Active is pending plus confirmed and
// revenue sums the totals of non-cancelled bookings.
func (s *OccupancyService) Stats(ctx context.Context) (*BookingStats, error) {
	rooms, err := readWithRetry(ctx, "room stats", func() (repositories.Totals, error) {
		return s.repo.RoomBookingTotals(ctx)
	})
	if err != nil {
		return nil, err
	}
	svcs, err := readWithRetry(ctx, "service stats", func() (repositories.Totals, error) {
		return s.repo.ServiceBookingTotals(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &BookingStats{Rooms: BookingTotals(rooms), Services: BookingTotals(svcs)}, nil
}
