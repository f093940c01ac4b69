package repositories

import (
	"context"
	"time"

	"resort-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingRepository is the write side of reservations. Transaction hands fn a
// repository bound to a single store transaction; LockRoom / LockService take
// a row lock on the resource that is held until the transaction ends, which
// serialises every check-then-insert against the same resource.
type BookingRepository interface {
	Transaction(ctx context.Context, fn func(tx BookingRepository) error) error

	LockRoom(ctx context.Context, id uint) (*models.Room, error)
	LockService(ctx context.Context, id uint) (*models.Service, error)
	GuestExists(ctx context.Context, id uint) (bool, error)

	// Overlapping* return non-cancelled reservations with start < end AND start' < end'.
	OverlappingRoomBookings(ctx context.Context, roomID uint, start, end time.Time) ([]models.RoomBooking, error)
	OverlappingServiceBookings(ctx context.Context, serviceID uint, start, end time.Time) ([]models.ServiceBooking, error)

	CreateRoomBooking(ctx context.Context, b *models.RoomBooking) error
	CreateServiceBooking(ctx context.Context, b *models.ServiceBooking) error

	FindRoomBooking(ctx context.Context, id uint, forUpdate bool) (*models.RoomBooking, error)
	FindServiceBooking(ctx context.Context, id uint, forUpdate bool) (*models.ServiceBooking, error)
	UpdateRoomBookingStatus(ctx context.Context, id uint, status string) error
	UpdateServiceBookingStatus(ctx context.Context, id uint, status string) error

	GuestRoomBookings(ctx context.Context, guestID uint) ([]models.RoomBooking, error)
	GuestServiceBookings(ctx context.Context, guestID uint) ([]models.ServiceBooking, error)
}

// OccupancyRepository is the read-only projection used by reporting.
type OccupancyRepository interface {
	RoomBookingsBetween(ctx context.Context, roomIDs []uint, start, end time.Time) ([]models.RoomBooking, error)
	ServiceBookingsBetween(ctx context.Context, serviceID uint, start, end time.Time) ([]models.ServiceBooking, error)
	RoomBookingsCheckingIn(ctx context.Context, day time.Time) ([]models.RoomBooking, error)
	RoomBookingsCheckingOut(ctx context.Context, day time.Time) ([]models.RoomBooking, error)
	RoomBookingTotals(ctx context.Context) (Totals, error)
	ServiceBookingTotals(ctx context.Context) (Totals, error)
}

type Totals struct {
	Total     int64
	Active    int64
	Cancelled int64
	Revenue   float64
}

type GormBookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

func (r *GormBookingRepository) Transaction(ctx context.Context, fn func(tx BookingRepository) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormBookingRepository{db: tx})
	})
	return translate(err)
}

func (r *GormBookingRepository) LockRoom(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&room, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

func (r *GormBookingRepository) LockService(ctx context.Context, id uint) (*models.Service, error) {
	var svc models.Service
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&svc, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &svc, nil
}

func (r *GormBookingRepository) GuestExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Guest{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func (r *GormBookingRepository) OverlappingRoomBookings(ctx context.Context, roomID uint, start, end time.Time) ([]models.RoomBooking, error) {
	var list []models.RoomBooking
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND status <> ?", roomID, models.StatusCancelled).
		Where("check_in < ? AND check_out > ?", end, start).
		Order("check_in ASC").
		Find(&list).Error
	return list, translate(err)
}

func (r *GormBookingRepository) OverlappingServiceBookings(ctx context.Context, serviceID uint, start, end time.Time) ([]models.ServiceBooking, error) {
	var list []models.ServiceBooking
	err := r.db.WithContext(ctx).
		Where("service_id = ? AND status <> ?", serviceID, models.StatusCancelled).
		Where("start_time < ? AND end_time > ?", end, start).
		Order("start_time ASC").
		Find(&list).Error
	return list, translate(err)
}

func (r *GormBookingRepository) CreateRoomBooking(ctx context.Context, b *models.RoomBooking) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error)
}

func (r *GormBookingRepository) CreateServiceBooking(ctx context.Context, b *models.ServiceBooking) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error)
}

func (r *GormBookingRepository) FindRoomBooking(ctx context.Context, id uint, forUpdate bool) (*models.RoomBooking, error) {
	q := r.db.WithContext(ctx)
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	} else {
		q = q.Preload("Guest").Preload("Room")
	}
	var b models.RoomBooking
	if err := q.First(&b, id).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r *GormBookingRepository) FindServiceBooking(ctx context.Context, id uint, forUpdate bool) (*models.ServiceBooking, error) {
	q := r.db.WithContext(ctx)
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	} else {
		q = q.Preload("Guest").Preload("Service")
	}
	var b models.ServiceBooking
	if err := q.First(&b, id).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r *GormBookingRepository) UpdateRoomBookingStatus(ctx context.Context, id uint, status string) error {
	res := r.db.WithContext(ctx).Model(&models.RoomBooking{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormBookingRepository) UpdateServiceBookingStatus(ctx context.Context, id uint, status string) error {
	res := r.db.WithContext(ctx).Model(&models.ServiceBooking{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormBookingRepository) GuestRoomBookings(ctx context.Context, guestID uint) ([]models.RoomBooking, error) {
	var list []models.RoomBooking
	err := r.db.WithContext(ctx).
		Preload("Room").
		Where("guest_id = ?", guestID).
		Order("created_at DESC").
		Find(&list).Error
	return list, translate(err)
}

func (r *GormBookingRepository) GuestServiceBookings(ctx context.Context, guestID uint) ([]models.ServiceBooking, error) {
	var list []models.ServiceBooking
	err := r.db.WithContext(ctx).
		Preload("Service").
		Where("guest_id = ?", guestID).
		Order("created_at DESC").
		Find(&list).Error
	return list, translate(err)
}

// --- reporting ---

func (r *GormBookingRepository) RoomBookingsBetween(ctx context.Context, roomIDs []uint, start, end time.Time) ([]models.RoomBooking, error) {
	q := r.db.WithContext(ctx).
		Preload("Guest").
		Where("status <> ?", models.StatusCancelled).
		Where("check_in < ? AND check_out > ?", end, start)
	if len(roomIDs) > 0 {
		q = q.Where("room_id IN ?", roomIDs)
	}
	var list []models.RoomBooking
	err := q.Order("room_id ASC, check_in ASC").Find(&list).Error
	return list, translate(err)
}

func (r *GormBookingRepository) ServiceBookingsBetween(ctx context.Context, serviceID uint, start, end time.Time) ([]models.ServiceBooking, error) {
	var list []models.ServiceBooking
	err := r.db.WithContext(ctx).
		Preload("Guest").
		Where("service_id = ? AND status <> ?", serviceID, models.StatusCancelled).
		Where("start_time < ? AND end_time > ?", end, start).
		Order("start_time ASC").
		Find(&list).Error
	return list, translate(err)
}

func (r *GormBookingRepository) RoomBookingsCheckingIn(ctx context.Context, day time.Time) ([]models.RoomBooking, error) {
	return r.roomBookingsOn(ctx, "check_in", day)
}

func (r *GormBookingRepository) RoomBookingsCheckingOut(ctx context.Context, day time.Time) ([]models.RoomBooking, error) {
	return r.roomBookingsOn(ctx, "check_out", day)
}

func (r *GormBookingRepository) roomBookingsOn(ctx context.Context, column string, day time.Time) ([]models.RoomBooking, error) {
	var list []models.RoomBooking
	err := r.db.WithContext(ctx).
		Preload("Guest").
		Preload("Room").
		Where("status <> ?", models.StatusCancelled).
		Where(clause.Gte{Column: clause.Column{Name: column}, Value: day}).
		Where(clause.Lt{Column: clause.Column{Name: column}, Value: day.AddDate(0, 0, 1)}).
		Order("room_id ASC").
		Find(&list).Error
	return list, translate(err)
}

func (r *GormBookingRepository) RoomBookingTotals(ctx context.Context) (Totals, error) {
	return r.totals(ctx, &models.RoomBooking{})
}

func (r *GormBookingRepository) ServiceBookingTotals(ctx context.Context) (Totals, error) {
	return r.totals(ctx, &models.ServiceBooking{})
}

func (r *GormBookingRepository) totals(ctx context.Context, model any) (Totals, error) {
	var out struct {
		Total     int64
		Cancelled int64
		Revenue   float64
	}
	err := r.db.WithContext(ctx).Model(model).
		Select(
			"COUNT(*) AS total, "+
				"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS cancelled, "+
				"COALESCE(SUM(CASE WHEN status <> ? THEN total_price ELSE 0 END), 0) AS revenue",
			models.StatusCancelled, models.StatusCancelled,
		).
		Scan(&out).Error
	if err != nil {
		return Totals{}, translate(err)
	}
	return Totals{
		Total:     out.Total,
		Active:    out.Total - out.Cancelled,
		Cancelled: out.Cancelled,
		Revenue:   out.Revenue,
	}, nil
}
