package repositories

import (
	"context"

	"resort-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GuestRepository interface {
	FindGuest(ctx context.Context, id uint) (*models.Guest, error)
	FindGuestByExternalID(ctx context.Context, externalID string) (*models.Guest, error)
	// UpsertGuest inserts g or refreshes the profile columns of the row with
	// the same external id. g is reloaded from the store afterwards.
	UpsertGuest(ctx context.Context, g *models.Guest) error
}

type GormGuestRepository struct {
	db *gorm.DB
}

func NewGuestRepository(db *gorm.DB) *GormGuestRepository {
	return &GormGuestRepository{db: db}
}

func (r *GormGuestRepository) FindGuest(ctx context.Context, id uint) (*models.Guest, error) {
	var g models.Guest
	if err := r.db.WithContext(ctx).First(&g, id).Error; err != nil {
		return nil, translate(err)
	}
	return &g, nil
}

func (r *GormGuestRepository) FindGuestByExternalID(ctx context.Context, externalID string) (*models.Guest, error) {
	var g models.Guest
	if err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&g).Error; err != nil {
		return nil, translate(err)
	}
	return &g, nil
}

func (r *GormGuestRepository) UpsertGuest(ctx context.Context, g *models.Guest) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "first_name", "last_name", "phone", "updated_at"}),
	}).Create(g).Error
	if err != nil {
		return translate(err)
	}
	// MySQL does not report the id of an updated row.
	return translate(r.db.WithContext(ctx).Where("external_id = ?", g.ExternalID).First(g).Error)
}
