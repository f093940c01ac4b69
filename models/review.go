package models

import "time"

const (
	MinReviewRating = 1
	MaxReviewRating = 5
)

// Review is a guest's 1-5 star rating of a room.
type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	GuestID uint   `gorm:"column:guest_id;index;not null" json:"guestId"`
	RoomID  uint   `gorm:"column:room_id;index;not null" json:"roomId"`
	Rating  int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment string `gorm:"type:text" json:"comment,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	Guest Guest `gorm:"foreignKey:GuestID;references:ID" json:"guest,omitempty"`
}
