package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

func IsBookingStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// RoomBooking covers the nights [CheckIn, CheckOut). Both are stored as UTC midnight.
type RoomBooking struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	ReferenceCode string `gorm:"column:reference_code;uniqueIndex;size:16" json:"referenceCode"`

	GuestID uint `gorm:"column:guest_id;index;not null" json:"guestId"`
	RoomID  uint `gorm:"column:room_id;index:idx_room_booking_span,priority:1;not null" json:"roomId"`

	CheckIn  time.Time `gorm:"column:check_in;index:idx_room_booking_span,priority:2;not null" json:"checkIn"`
	CheckOut time.Time `gorm:"column:check_out;index:idx_room_booking_span,priority:3;not null" json:"checkOut"`

	PartySize    int            `gorm:"column:party_size;not null" json:"partySize"`
	WithMeal     bool           `gorm:"column:with_meal;not null" json:"withMeal"`
	TotalPrice   float64        `gorm:"column:total_price;not null" json:"totalPrice"`
	PriceDetails datatypes.JSON `gorm:"column:price_details" json:"priceDetails,omitempty"`
	Status       string         `gorm:"column:status;size:20;index;not null" json:"status"`
	Phone        string         `gorm:"size:20" json:"phone,omitempty"`
	Notes        string         `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Guest Guest `gorm:"foreignKey:GuestID;references:ID" json:"guest,omitempty"`
	Room  Room  `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}
