package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"resort-backend/models"
	"resort-backend/repositories"
	"resort-backend/utils"
)

// SettingsService serves the resort profile and the service-day window used
// for slot enumeration. Fields left blank fall back to the configured window.
type SettingsService struct {
	repo     repositories.SettingsRepository
	fallback SlotWindow
}

func NewSettingsService(repo repositories.SettingsRepository, fallback SlotWindow) *SettingsService {
	return &SettingsService{repo: repo, fallback: fallback}
}

type SettingsInput struct {
	Name            string `json:"name"`
	Address         string `json:"address"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Website         string `json:"website"`
	Logo            string `json:"logo"`
	ServiceDayStart string `json:"serviceDayStart"`
	ServiceDayEnd   string `json:"serviceDayEnd"`
	SlotMinutes     int    `json:"slotMinutes"`
}

// GetSettings returns the stored settings, or defaults derived from the
// fallback window before any have been saved.
func (s *SettingsService) GetSettings(ctx context.Context) (*models.ResortSetting, error) {
	st, err := readWithRetry(ctx, "get settings", func() (*models.ResortSetting, error) {
		return s.repo.GetSettings(ctx)
	})
	if errors.Is(err, repositories.ErrNotFound) {
		return &models.ResortSetting{
			ID:              models.ResortSettingID,
			ServiceDayStart: utils.FormatClock(s.fallback.DayStart),
			ServiceDayEnd:   utils.FormatClock(s.fallback.DayEnd),
			SlotMinutes:     int(s.fallback.Granularity / time.Minute),
		}, nil
	}
	return st, err
}

func (s *SettingsService) UpdateSettings(ctx context.Context, in SettingsInput) (*models.ResortSetting, error) {
	st := &models.ResortSetting{
		Name:            strings.TrimSpace(in.Name),
		Address:         strings.TrimSpace(in.Address),
		Phone:           strings.TrimSpace(in.Phone),
		Email:           strings.TrimSpace(in.Email),
		Website:         strings.TrimSpace(in.Website),
		Logo:            strings.TrimSpace(in.Logo),
		ServiceDayStart: strings.TrimSpace(in.ServiceDayStart),
		ServiceDayEnd:   strings.TrimSpace(in.ServiceDayEnd),
		SlotMinutes:     in.SlotMinutes,
	}
	if in.SlotMinutes < 0 {
		return nil, fmt.Errorf("%w: slot minutes must not be negative", ErrInvalidInput)
	}
	if _, err := s.windowOf(st); err != nil {
		return nil, err
	}
	if err := s.repo.SaveSettings(ctx, st); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", storeErr(err))
	}
	return st, nil
}

// SlotWindow resolves the service-day window: stored settings first, then
// the configured fallback.
func (s *SettingsService) SlotWindow(ctx context.Context) (SlotWindow, error) {
	st, err := readWithRetry(ctx, "get settings", func() (*models.ResortSetting, error) {
		return s.repo.GetSettings(ctx)
	})
	if errors.Is(err, repositories.ErrNotFound) {
		return s.fallback, nil
	}
	if err != nil {
		return SlotWindow{}, err
	}
	return s.windowOf(st)
}

func (s *SettingsService) windowOf(st *models.ResortSetting) (SlotWindow, error) {
	w := s.fallback
	if st.ServiceDayStart != "" {
		d, err := utils.ParseClock(st.ServiceDayStart)
		if err != nil {
			return SlotWindow{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		w.DayStart = d
	}
	if st.ServiceDayEnd != "" {
		d, err := utils.ParseClock(st.ServiceDayEnd)
		if err != nil {
			return SlotWindow{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		w.DayEnd = d
	}
	if st.SlotMinutes > 0 {
		w.Granularity = time.Duration(st.SlotMinutes) * time.Minute
	}
	return w, w.Validate()
}
