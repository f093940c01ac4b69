package models

import (
	"time"

	"gorm.io/datatypes"
)

// Room is a bookable room. Optional rates are nil when the room has no
// dedicated rate for that mode; pricing then falls back to BasePrice.
type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	RoomType    string `gorm:"column:room_type;size:50" json:"roomType"`
	Capacity    int    `gorm:"not null" json:"capacity"`

	BasePrice    float64  `gorm:"column:base_price;not null" json:"basePrice"`
	WeekdayPrice *float64 `gorm:"column:weekday_price" json:"weekdayPrice,omitempty"`
	WeekendPrice *float64 `gorm:"column:weekend_price" json:"weekendPrice,omitempty"`
	MealPrice    *float64 `gorm:"column:meal_price" json:"mealPrice,omitempty"`

	IsAvailable  bool   `gorm:"column:is_available;not null;index" json:"isAvailable"`
	CheckInTime  string `gorm:"column:check_in_time;size:5" json:"checkInTime"`
	CheckOutTime string `gorm:"column:check_out_time;size:5" json:"checkOutTime"`

	ImageURL  string                      `gorm:"column:image_url;size:500" json:"imageUrl,omitempty"`
	VideoURL  string                      `gorm:"column:video_url;size:500" json:"videoUrl,omitempty"`
	Photos    datatypes.JSONSlice[string] `gorm:"column:photos" json:"photos"`
	Amenities datatypes.JSONSlice[string] `gorm:"column:amenities" json:"amenities"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
