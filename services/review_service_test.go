package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"resort-backend/models"
	"resort-backend/repositories"
)

func newReviewFixture() (*memStore, *ReviewService, models.Guest, models.Room) {
	store := newMemStore()
	guest := store.addGuest(models.Guest{ExternalID: "g-1", FirstName: "Ann"})
	room := store.addRoom(models.Room{Name: "Standard", Capacity: 2, BasePrice: 3000, IsAvailable: true})
	return store, NewReviewService(store, store, store), guest, room
}

func TestAddRoomReview(t *testing.T) {
	_, svc, guest, room := newReviewFixture()
	ctx := context.Background()

	tests := []struct {
		name    string
		guestID uint
		roomID  uint
		rating  int
		comment string
		wantErr error
	}{
		{"lowest rating", guest.ID, room.ID, 1, "noisy", nil},
		{"highest rating", guest.ID, room.ID, 5, "  lovely view  ", nil},
		{"zero rating", guest.ID, room.ID, 0, "", ErrInvalidInput},
		{"rating above five", guest.ID, room.ID, 6, "", ErrInvalidInput},
		{"negative rating", guest.ID, room.ID, -3, "", ErrInvalidInput},
		{"comment too long", guest.ID, room.ID, 4, strings.Repeat("x", maxReviewComment+1), ErrInvalidInput},
		{"unknown room", guest.ID, 999, 4, "", ErrResourceNotFound},
		{"unknown guest", 999, room.ID, 4, "", ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := svc.AddRoomReview(ctx, tt.guestID, tt.roomID, tt.rating, tt.comment)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if r.ID == 0 || r.Rating != tt.rating || r.Comment != strings.TrimSpace(tt.comment) || r.Guest.ID != guest.ID {
				t.Fatalf("review = %+v", r)
			}
		})
	}
}

func TestAddRoomReviewRejectsBeforeWriting(t *testing.T) {
	store, svc, guest, room := newReviewFixture()
	ctx := context.Background()
	if _, err := svc.AddRoomReview(ctx, guest.ID, room.ID, 9, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("got %v", err)
	}
	if _, err := svc.AddRoomReview(ctx, guest.ID, room.ID+100, 3, ""); !errors.Is(err, ErrResourceNotFound) {
		t.Fatalf("got %v", err)
	}
	if n := store.callCount("CreateReview"); n != 0 {
		t.Fatalf("CreateReview called %d times", n)
	}
}

func TestRoomReviews(t *testing.T) {
	store, svc, guest, room := newReviewFixture()
	other := store.addRoom(models.Room{Name: "Family", Capacity: 4, BasePrice: 5000, IsAvailable: true})
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store.addReview(models.Review{GuestID: guest.ID, RoomID: room.ID, Rating: 4, CreatedAt: base})
	store.addReview(models.Review{GuestID: guest.ID, RoomID: room.ID, Rating: 5, CreatedAt: base.Add(48 * time.Hour)})
	store.addReview(models.Review{GuestID: guest.ID, RoomID: room.ID, Rating: 4, CreatedAt: base.Add(24 * time.Hour)})
	store.addReview(models.Review{GuestID: guest.ID, RoomID: other.ID, Rating: 1, CreatedAt: base})
	ctx := context.Background()

	tests := []struct {
		name    string
		roomID  uint
		ratings []int
		average float64
		wantErr error
	}{
		{"newest first", room.ID, []int{5, 4, 4}, 4.3, nil},
		{"single review", other.ID, []int{1}, 1, nil},
		{"unknown room", 999, nil, 0, ErrResourceNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.RoomReviews(ctx, tt.roomID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got.Count != len(tt.ratings) || got.Average != tt.average {
				t.Fatalf("rating = %+v", got)
			}
			for i, r := range got.Reviews {
				if r.Rating != tt.ratings[i] || r.Guest.FirstName != "Ann" {
					t.Fatalf("review %d = %+v", i, r)
				}
			}
		})
	}
}

func TestRoomReviewsEmptyAndRetried(t *testing.T) {
	store, svc, _, room := newReviewFixture()
	store.failOn("RoomReviews", repositories.ErrSerialization)

	got, err := svc.RoomReviews(context.Background(), room.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Reviews == nil || got.Count != 0 || got.Average != 0 {
		t.Fatalf("rating = %+v", got)
	}
	if n := store.callCount("RoomReviews"); n != 2 {
		t.Fatalf("RoomReviews called %d times, want 2", n)
	}
}
