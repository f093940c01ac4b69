package models

import "time"

// Service is an ancillary bookable service (sauna, pool, excursion...).
type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"size:255;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	IsHourly    bool    `gorm:"column:is_hourly;not null" json:"isHourly"`
	MaxCapacity *int    `gorm:"column:max_capacity" json:"maxCapacity,omitempty"`
	ImageURL    string  `gorm:"column:image_url;size:500" json:"imageUrl,omitempty"`
	IsAvailable bool    `gorm:"column:is_available;not null;index" json:"isAvailable"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
