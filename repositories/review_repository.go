package repositories

import (
	"context"

	"resort-backend/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	CreateReview(ctx context.Context, r *models.Review) error
	// RoomReviews lists a room's reviews newest first with the guest loaded.
	RoomReviews(ctx context.Context, roomID uint) ([]models.Review, error)
}

type GormReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

func (r *GormReviewRepository) CreateReview(ctx context.Context, review *models.Review) error {
	return translate(r.db.WithContext(ctx).Create(review).Error)
}

func (r *GormReviewRepository) RoomReviews(ctx context.Context, roomID uint) ([]models.Review, error) {
	var list []models.Review
	err := r.roomReviewsQuery(ctx, roomID).Preload("Guest").Find(&list).Error
	if err != nil {
		return nil, translate(err)
	}
	return list, nil
}

func (r *GormReviewRepository) roomReviewsQuery(ctx context.Context, roomID uint) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Review{}).
		Where("room_id = ?", roomID).
		Order("created_at DESC").Order("id DESC")
}
