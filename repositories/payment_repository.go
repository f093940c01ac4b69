package repositories

import (
	"context"

	"resort-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository interface {
	Transaction(ctx context.Context, fn func(tx PaymentRepository) error) error
	// Bookings returns a booking repository sharing this repository's
	// connection, so status changes join the same transaction.
	Bookings() BookingRepository

	CreatePayment(ctx context.Context, p *models.Payment) error
	FindPayment(ctx context.Context, id uint, forUpdate bool) (*models.Payment, error)
	UpdatePayment(ctx context.Context, p *models.Payment) error
	PaymentsForRoomBooking(ctx context.Context, bookingID uint) ([]models.Payment, error)
	PaymentsForServiceBooking(ctx context.Context, bookingID uint) ([]models.Payment, error)
}

type GormPaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) Transaction(ctx context.Context, fn func(tx PaymentRepository) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormPaymentRepository{db: tx})
	})
	return translate(err)
}

func (r *GormPaymentRepository) Bookings() BookingRepository {
	return &GormBookingRepository{db: r.db}
}

func (r *GormPaymentRepository) CreatePayment(ctx context.Context, p *models.Payment) error {
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

func (r *GormPaymentRepository) FindPayment(ctx context.Context, id uint, forUpdate bool) (*models.Payment, error) {
	q := r.db.WithContext(ctx)
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var p models.Payment
	if err := q.First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *GormPaymentRepository) UpdatePayment(ctx context.Context, p *models.Payment) error {
	return translate(r.db.WithContext(ctx).Save(p).Error)
}

func (r *GormPaymentRepository) PaymentsForRoomBooking(ctx context.Context, bookingID uint) ([]models.Payment, error) {
	var list []models.Payment
	err := r.db.WithContext(ctx).Where("room_booking_id = ?", bookingID).Order("created_at ASC").Find(&list).Error
	return list, translate(err)
}

func (r *GormPaymentRepository) PaymentsForServiceBooking(ctx context.Context, bookingID uint) ([]models.Payment, error) {
	var list []models.Payment
	err := r.db.WithContext(ctx).Where("service_booking_id = ?", bookingID).Order("created_at ASC").Find(&list).Error
	return list, translate(err)
}
