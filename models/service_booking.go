package models

import "time"

// ServiceBooking covers [StartTime, EndTime) on Date.
type ServiceBooking struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	ReferenceCode string `gorm:"column:reference_code;uniqueIndex;size:16" json:"referenceCode"`

	GuestID       uint  `gorm:"column:guest_id;index;not null" json:"guestId"`
	ServiceID     uint  `gorm:"column:service_id;index:idx_service_booking_span,priority:1;not null" json:"serviceId"`
	RoomBookingID *uint `gorm:"column:room_booking_id;index" json:"roomBookingId,omitempty"`

	Date      time.Time `gorm:"column:date;not null" json:"date"`
	StartTime time.Time `gorm:"column:start_time;index:idx_service_booking_span,priority:2;not null" json:"startTime"`
	EndTime   time.Time `gorm:"column:end_time;index:idx_service_booking_span,priority:3;not null" json:"endTime"`

	PartySize  int     `gorm:"column:party_size;not null" json:"partySize"`
	TotalPrice float64 `gorm:"column:total_price;not null" json:"totalPrice"`
	Status     string  `gorm:"column:status;size:20;index;not null" json:"status"`
	Notes      string  `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Guest       Guest        `gorm:"foreignKey:GuestID;references:ID" json:"guest,omitempty"`
	Service     Service      `gorm:"foreignKey:ServiceID;references:ID" json:"service,omitempty"`
	RoomBooking *RoomBooking `gorm:"foreignKey:RoomBookingID;references:ID" json:"-"`
}
