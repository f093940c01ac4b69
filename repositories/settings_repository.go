package repositories

import (
	"context"
	"errors"

	"resort-backend/models"

	"gorm.io/gorm"
)

type SettingsRepository interface {
	// GetSettings returns the single settings row, or ErrNotFound before
	// it has been written.
	GetSettings(ctx context.Context) (*models.ResortSetting, error)
	SaveSettings(ctx context.Context, s *models.ResortSetting) error
}

type GormSettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

func (r *GormSettingsRepository) GetSettings(ctx context.Context) (*models.ResortSetting, error) {
	var s models.ResortSetting
	err := r.db.WithContext(ctx).First(&s, models.ResortSettingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *GormSettingsRepository) SaveSettings(ctx context.Context, s *models.ResortSetting) error {
	s.ID = models.ResortSettingID
	return translate(r.db.WithContext(ctx).Save(s).Error)
}
