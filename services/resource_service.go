package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"resort-backend/cache"
	"resort-backend/models"
	"resort-backend/repositories"
	"resort-backend/utils"
)

const (
	defaultCheckInTime  = "14:00"
	defaultCheckOutTime = "12:00"
)

const (
	cacheKeyRooms             = "rooms:all"
	cacheKeyAvailableRooms    = "rooms:available"
	cacheKeyServices          = "services:all"
	cacheKeyAvailableServices = "services:available"
)

// openEnded bounds "from now on" queries for reservations.
var openEnded = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// ResourceService is the room and service catalogue. Lists are served from
// the injected cache and invalidated on every catalogue write.
type ResourceService struct {
	repo     repositories.ResourceRepository
	bookings repositories.BookingRepository
	cache    cache.Cache
	ttl      time.Duration
	now      func() time.Time
}

func NewResourceService(repo repositories.ResourceRepository, bookings repositories.BookingRepository, c cache.Cache, ttl time.Duration) *ResourceService {
	if c == nil {
		c = cache.NewMemoryCache()
	}
	return &ResourceService{repo: repo, bookings: bookings, cache: c, ttl: ttl, now: time.Now}
}

type RoomInput struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	RoomType     string   `json:"roomType"`
	Capacity     int      `json:"capacity"`
	BasePrice    float64  `json:"basePrice"`
	WeekdayPrice *float64 `json:"weekdayPrice"`
	WeekendPrice *float64 `json:"weekendPrice"`
	MealPrice    *float64 `json:"mealPrice"`
	CheckInTime  string   `json:"checkInTime"`
	CheckOutTime string   `json:"checkOutTime"`
	ImageURL     string   `json:"imageUrl"`
	VideoURL     string   `json:"videoUrl"`
	Photos       []string `json:"photos"`
	Amenities    []string `json:"amenities"`
	IsAvailable  *bool    `json:"isAvailable"`
}

type ServiceInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	IsHourly    bool    `json:"isHourly"`
	MaxCapacity *int    `json:"maxCapacity"`
	ImageURL    string  `json:"imageUrl"`
	IsAvailable *bool   `json:"isAvailable"`
}

func (in RoomInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: room name is required", ErrInvalidInput)
	}
	if in.Capacity < 1 {
		return fmt.Errorf("%w: room capacity must be at least 1", ErrInvalidInput)
	}
	if in.BasePrice <= 0 || math.IsInf(in.BasePrice, 0) {
		return fmt.Errorf("%w: base price must be positive", ErrInvalidInput)
	}
	for _, rate := range []*float64{in.WeekdayPrice, in.WeekendPrice, in.MealPrice} {
		if rate != nil && !validRate(*rate) {
			return fmt.Errorf("%w: rates must not be negative", ErrInvalidInput)
		}
	}
	for _, clock := range []string{in.CheckInTime, in.CheckOutTime} {
		if clock == "" {
			continue
		}
		if _, err := utils.ParseClock(clock); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	return nil
}

func (in RoomInput) apply(room *models.Room) {
	room.Name = strings.TrimSpace(in.Name)
	room.Description = in.Description
	room.RoomType = in.RoomType
	room.Capacity = in.Capacity
	room.BasePrice = in.BasePrice
	room.WeekdayPrice = in.WeekdayPrice
	room.WeekendPrice = in.WeekendPrice
	room.MealPrice = in.MealPrice
	room.CheckInTime = utils.StringOrDefault(in.CheckInTime, defaultCheckInTime)
	room.CheckOutTime = utils.StringOrDefault(in.CheckOutTime, defaultCheckOutTime)
	room.ImageURL = in.ImageURL
	room.VideoURL = in.VideoURL
	room.Photos = nonNil(in.Photos)
	room.Amenities = nonNil(in.Amenities)
	if in.IsAvailable != nil {
		room.IsAvailable = *in.IsAvailable
	}
}

func (in ServiceInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: service name is required", ErrInvalidInput)
	}
	if !validRate(in.Price) {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if in.MaxCapacity != nil && *in.MaxCapacity < 1 {
		return fmt.Errorf("%w: max capacity must be at least 1", ErrInvalidInput)
	}
	return nil
}

func (in ServiceInput) apply(svc *models.Service) {
	svc.Name = strings.TrimSpace(in.Name)
	svc.Description = in.Description
	svc.Price = in.Price
	svc.IsHourly = in.IsHourly
	svc.MaxCapacity = in.MaxCapacity
	svc.ImageURL = in.ImageURL
	if in.IsAvailable != nil {
		svc.IsAvailable = *in.IsAvailable
	}
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

// cached serves key from the cache or loads and stores it. Cache faults are
// logged and fall through to the loader.
func cached[T any](ctx context.Context, s *ResourceService, key string, load func() (T, error)) (T, error) {
	if raw, err := s.cache.Get(ctx, key); err == nil {
		var v T
		if jerr := json.Unmarshal(raw, &v); jerr == nil {
			return v, nil
		}
		log.Printf("⚠️ Dropping undecodable cache entry %s", key)
	} else if !errors.Is(err, cache.ErrMiss) {
		log.Printf("⚠️ Cache get %s: %v", key, err)
	}

	v, err := load()
	if err != nil {
		return v, err
	}
	if raw, err := json.Marshal(v); err == nil {
		if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
			log.Printf("⚠️ Cache set %s: %v", key, err)
		}
	}
	return v, nil
}

func (s *ResourceService) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Printf("⚠️ Cache invalidate %v: %v", keys, err)
	}
}

// --- rooms ---

func (s *ResourceService) ListRooms(ctx context.Context, onlyAvailable bool) ([]models.Room, error) {
	key := cacheKeyRooms
	if onlyAvailable {
		key = cacheKeyAvailableRooms
	}
	rooms, err := cached(ctx, s, key, func() ([]models.Room, error) {
		return readWithRetry(ctx, "list rooms", func() ([]models.Room, error) {
			return s.repo.ListRooms(ctx, onlyAvailable)
		})
	})
	if rooms == nil && err == nil {
		rooms = []models.Room{}
	}
	return rooms, err
}

func (s *ResourceService) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	room, err := readWithRetry(ctx, "get room", func() (*models.Room, error) {
		return s.repo.FindRoom(ctx, id)
	})
	if err != nil {
		return nil, notFound(err, ErrResourceNotFound, "room %d", id)
	}
	return room, nil
}

// ListAvailableRooms returns enabled rooms with no non-cancelled booking
// overlapping [checkIn, checkOut) that can hold partySize guests without the
// overflow surcharge. partySize 0 skips the capacity filter.
func (s *ResourceService) ListAvailableRooms(ctx context.Context, checkIn, checkOut time.Time, partySize int) ([]models.Room, error) {
	stay, err := StayInterval(checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	rooms, err := s.ListRooms(ctx, true)
	if err != nil {
		return nil, err
	}
	out := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		if partySize > 0 && room.Capacity < partySize {
			continue
		}
		taken, err := readWithRetry(ctx, "room availability", func() ([]models.RoomBooking, error) {
			return s.bookings.OverlappingRoomBookings(ctx, room.ID, stay.Start, stay.End)
		})
		if err != nil {
			return nil, err
		}
		free := true
		for _, b := range taken {
			if b.Status != models.StatusCancelled && Overlaps(stay, Interval{Start: b.CheckIn, End: b.CheckOut}) {
				free = false
				break
			}
		}
		if free {
			out = append(out, room)
		}
	}
	return out, nil
}

func (s *ResourceService) CreateRoom(ctx context.Context, in RoomInput) (*models.Room, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	room := &models.Room{IsAvailable: true}
	in.apply(room)
	if err := s.repo.CreateRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", storeErr(err))
	}
	s.invalidate(ctx, cacheKeyRooms, cacheKeyAvailableRooms)
	log.Printf("✅ Room %d created: %s", room.ID, room.Name)
	return room, nil
}

// UpdateRoom replaces the room's fields. Existing reservations keep the
// price they were created with.
func (s *ResourceService) UpdateRoom(ctx context.Context, id uint, in RoomInput) (*models.Room, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(room)
	if err := s.repo.SaveRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to update room %d: %w", id, storeErr(err))
	}
	s.invalidate(ctx, cacheKeyRooms, cacheKeyAvailableRooms)
	return room, nil
}

func (s *ResourceService) SetRoomAvailability(ctx context.Context, id uint, available bool) (*models.Room, error) {
	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	room.IsAvailable = available
	if err := s.repo.SaveRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to update room %d: %w", id, storeErr(err))
	}
	s.invalidate(ctx, cacheKeyRooms, cacheKeyAvailableRooms)
	log.Printf("✅ Room %d available=%t", id, available)
	return room, nil
}

// DeleteRoom soft-disables the room. It is refused while the room has a
// non-cancelled reservation that has not ended yet.
func (s *ResourceService) DeleteRoom(ctx context.Context, id uint) error {
	if _, err := s.GetRoom(ctx, id); err != nil {
		return err
	}
	active, err := readWithRetry(ctx, "room reservations", func() ([]models.RoomBooking, error) {
		return s.bookings.OverlappingRoomBookings(ctx, id, DateOnly(s.now()), openEnded)
	})
	if err != nil {
		return err
	}
	if len(active) > 0 {
		return fmt.Errorf("%w: room %d has %d active reservation(s)", ErrResourceUnavailable, id, len(active))
	}
	_, err = s.SetRoomAvailability(ctx, id, false)
	return err
}

// --- services ---

func (s *ResourceService) ListServices(ctx context.Context, onlyAvailable bool) ([]models.Service, error) {
	key := cacheKeyServices
	if onlyAvailable {
		key = cacheKeyAvailableServices
	}
	list, err := cached(ctx, s, key, func() ([]models.Service, error) {
		return readWithRetry(ctx, "list services", func() ([]models.Service, error) {
			return s.repo.ListServices(ctx, onlyAvailable)
		})
	})
	if list == nil && err == nil {
		list = []models.Service{}
	}
	return list, err
}

func (s *ResourceService) GetService(ctx context.Context, id uint) (*models.Service, error) {
	svc, err := readWithRetry(ctx, "get service", func() (*models.Service, error) {
		return s.repo.FindService(ctx, id)
	})
	if err != nil {
		return nil, notFound(err, ErrResourceNotFound, "service %d", id)
	}
	return svc, nil
}

func (s *ResourceService) CreateService(ctx context.Context, in ServiceInput) (*models.Service, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	svc := &models.Service{IsAvailable: true}
	in.apply(svc)
	if err := s.repo.CreateService(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", storeErr(err))
	}
	s.invalidate(ctx, cacheKeyServices, cacheKeyAvailableServices)
	log.Printf("✅ Service %d created: %s", svc.ID, svc.Name)
	return svc, nil
}

func (s *ResourceService) UpdateService(ctx context.Context, id uint, in ServiceInput) (*models.Service, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	svc, err := s.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(svc)
	if err := s.repo.SaveService(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to update service %d: %w", id, storeErr(err))
	}
	s.invalidate(ctx, cacheKeyServices, cacheKeyAvailableServices)
	return svc, nil
}

func (s *ResourceService) SetServiceAvailability(ctx context.Context, id uint, available bool) (*models.Service, error) {
	svc, err := s.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	svc.IsAvailable = available
	if err := s.repo.SaveService(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to update service %d: %w", id, storeErr(err))
	}
	s.invalidate(ctx, cacheKeyServices, cacheKeyAvailableServices)
	log.Printf("✅ Service %d available=%t", id, available)
	return svc, nil
}

func (s *ResourceService) DeleteService(ctx context.Context, id uint) error {
	if _, err := s.GetService(ctx, id); err != nil {
		return err
	}
	active, err := readWithRetry(ctx, "service reservations", func() ([]models.ServiceBooking, error) {
		return s.bookings.OverlappingServiceBookings(ctx, id, s.now().UTC(), openEnded)
	})
	if err != nil {
		return err
	}
	if len(active) > 0 {
		return fmt.Errorf("%w: service %d has %d active reservation(s)", ErrResourceUnavailable, id, len(active))
	}
	_, err = s.SetServiceAvailability(ctx, id, false)
	return err
}
