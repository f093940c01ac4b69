package repositories

import (
	"context"

	"resort-backend/models"

	"gorm.io/gorm"
)

// ResourceRepository manages the bookable catalogue: rooms and services.
type ResourceRepository interface {
	ListRooms(ctx context.Context, onlyAvailable bool) ([]models.Room, error)
	FindRoom(ctx context.Context, id uint) (*models.Room, error)
	CreateRoom(ctx context.Context, room *models.Room) error
	SaveRoom(ctx context.Context, room *models.Room) error

	ListServices(ctx context.Context, onlyAvailable bool) ([]models.Service, error)
	FindService(ctx context.Context, id uint) (*models.Service, error)
	CreateService(ctx context.Context, svc *models.Service) error
	SaveService(ctx context.Context, svc *models.Service) error
}

type GormResourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *GormResourceRepository {
	return &GormResourceRepository{db: db}
}

// ListRooms orders rooms by base price, cheapest first.
func (r *GormResourceRepository) ListRooms(ctx context.Context, onlyAvailable bool) ([]models.Room, error) {
	q := r.db.WithContext(ctx).Order("base_price ASC, id ASC")
	if onlyAvailable {
		q = q.Where("is_available = ?", true)
	}
	var rooms []models.Room
	return rooms, translate(q.Find(&rooms).Error)
}

func (r *GormResourceRepository) FindRoom(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

func (r *GormResourceRepository) CreateRoom(ctx context.Context, room *models.Room) error {
	return translate(r.db.WithContext(ctx).Create(room).Error)
}

// SaveRoom writes every column, zero values included.
func (r *GormResourceRepository) SaveRoom(ctx context.Context, room *models.Room) error {
	return translate(r.db.WithContext(ctx).Save(room).Error)
}

func (r *GormResourceRepository) ListServices(ctx context.Context, onlyAvailable bool) ([]models.Service, error) {
	q := r.db.WithContext(ctx).Order("name ASC, id ASC")
	if onlyAvailable {
		q = q.Where("is_available = ?", true)
	}
	var list []models.Service
	return list, translate(q.Find(&list).Error)
}

func (r *GormResourceRepository) FindService(ctx context.Context, id uint) (*models.Service, error) {
	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, translate(err)
	}
	return &svc, nil
}

func (r *GormResourceRepository) CreateService(ctx context.Context, svc *models.Service) error {
	return translate(r.db.WithContext(ctx).Create(svc).Error)
}

func (r *GormResourceRepository) SaveService(ctx context.Context, svc *models.Service) error {
	return translate(r.db.WithContext(ctx).Save(svc).Error)
}
