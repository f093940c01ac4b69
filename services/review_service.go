package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"resort-backend/models"
	"resort-backend/repositories"
)

const maxReviewComment = 2000

type ReviewService struct {
	reviews   repositories.ReviewRepository
	resources repositories.ResourceRepository
	guests    repositories.GuestRepository
}

func NewReviewService(reviews repositories.ReviewRepository, resources repositories.ResourceRepository, guests repositories.GuestRepository) *ReviewService {
	return &ReviewService{reviews: reviews, resources: resources, guests: guests}
}

// RoomRating is a room's review list together with its average score.
type RoomRating struct {
	RoomID  uint            `json:"roomId"`
	Count   int             `json:"count"`
	Average float64         `json:"average"`
	Reviews []models.Review `json:"reviews"`
}

func (s *ReviewService) AddRoomReview(ctx context.Context, guestID, roomID uint, rating int, comment string) (*models.Review, error) {
	if rating < models.MinReviewRating || rating > models.MaxReviewRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, models.MinReviewRating, models.MaxReviewRating)
	}
	comment = strings.TrimSpace(comment)
	if len(comment) > maxReviewComment {
		return nil, fmt.Errorf("%w: comment is longer than %d characters", ErrInvalidInput, maxReviewComment)
	}
	if err := s.requireRoom(ctx, roomID); err != nil {
		return nil, err
	}
	guest, err := readWithRetry(ctx, "find guest", func() (*models.Guest, error) {
		return s.guests.FindGuest(ctx, guestID)
	})
	if err != nil {
		return nil, notFound(err, ErrNotFound, "guest %d", guestID)
	}

	review := &models.Review{GuestID: guestID, RoomID: roomID, Rating: rating, Comment: comment}
	if err := s.reviews.CreateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to save review: %w", storeErr(err))
	}
	review.Guest = *guest
	log.Printf("✅ Guest %d rated room %d: %d/5", guestID, roomID, rating)
	return review, nil
}

// RoomReviews returns the room's reviews newest first. A room nobody has
// reviewed yields an empty list and a zero average.
func (s *ReviewService) RoomReviews(ctx context.Context, roomID uint) (*RoomRating, error) {
	if err := s.requireRoom(ctx, roomID); err != nil {
		return nil, err
	}
	list, err := readWithRetry(ctx, "room reviews", func() ([]models.Review, error) {
		return s.reviews.RoomReviews(ctx, roomID)
	})
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.Review{}
	}
	return &RoomRating{RoomID: roomID, Count: len(list), Average: averageRating(list), Reviews: list}, nil
}

func (s *ReviewService) requireRoom(ctx context.Context, roomID uint) error {
	_, err := readWithRetry(ctx, "find room", func() (*models.Room, error) {
		return s.resources.FindRoom(ctx, roomID)
	})
	if err != nil {
		return notFound(err, ErrResourceNotFound, "room %d", roomID)
	}
	return nil
}

// averageRating rounds to one decimal place.
func averageRating(list []models.Review) float64 {
	if len(list) == 0 {
		return 0
	}
	sum := 0
	for _, r := range list {
		sum += r.Rating
	}
	return math.Round(float64(sum)/float64(len(list))*10) / 10
}
