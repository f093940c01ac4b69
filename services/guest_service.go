package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"resort-backend/models"
	"resort-backend/repositories"
)

type GuestService struct {
	repo repositories.GuestRepository
}

func NewGuestService(repo repositories.GuestRepository) *GuestService {
	return &GuestService{repo: repo}
}

type GuestProfile struct {
	ExternalID string `json:"externalId"`
	Username   string `json:"username"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone"`
}

// GetOrCreateGuest returns the guest registered under ExternalID, creating it
// on first contact. Blank profile fields never overwrite stored ones; a
// non-blank phone replaces the stored one.
func (s *GuestService) GetOrCreateGuest(ctx context.Context, p GuestProfile) (*models.Guest, error) {
	p.ExternalID = strings.TrimSpace(p.ExternalID)
	if p.ExternalID == "" {
		return nil, fmt.Errorf("%w: external id is required", ErrInvalidInput)
	}

	g, err := s.repo.FindGuestByExternalID(ctx, p.ExternalID)
	switch {
	case err == nil:
		phone := strings.TrimSpace(p.Phone)
		if phone == "" || phone == g.Phone {
			return g, nil
		}
		g.Phone = phone
	case errors.Is(err, repositories.ErrNotFound):
		g = &models.Guest{ExternalID: p.ExternalID}
		log.Printf("✅ New guest %s", p.ExternalID)
	default:
		return nil, storeErr(err)
	}

	g.Username = firstNonBlank(p.Username, g.Username)
	g.FirstName = firstNonBlank(p.FirstName, g.FirstName)
	g.LastName = firstNonBlank(p.LastName, g.LastName)
	g.Phone = firstNonBlank(p.Phone, g.Phone)
	if err := s.repo.UpsertGuest(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to save guest %s: %w", p.ExternalID, storeErr(err))
	}
	return g, nil
}

func (s *GuestService) GetGuest(ctx context.Context, id uint) (*models.Guest, error) {
	g, err := readWithRetry(ctx, "get guest", func() (*models.Guest, error) {
		return s.repo.FindGuest(ctx, id)
	})
	if err != nil {
		return nil, notFound(err, ErrNotFound, "guest %d", id)
	}
	return g, nil
}

func (s *GuestService) GetGuestByExternalID(ctx context.Context, externalID string) (*models.Guest, error) {
	g, err := readWithRetry(ctx, "get guest", func() (*models.Guest, error) {
		return s.repo.FindGuestByExternalID(ctx, strings.TrimSpace(externalID))
	})
	if err != nil {
		return nil, notFound(err, ErrNotFound, "guest %q", externalID)
	}
	return g, nil
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
