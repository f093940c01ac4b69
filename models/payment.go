package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentCancelled = "cancelled"
)

func IsPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentCancelled:
		return true
	}
	return false
}

// Payment belongs to exactly one of RoomBookingID / ServiceBookingID.
type Payment struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"uniqueIndex;size:36" json:"reference"`

	RoomBookingID    *uint `gorm:"column:room_booking_id;index" json:"roomBookingId,omitempty"`
	ServiceBookingID *uint `gorm:"column:service_booking_id;index" json:"serviceBookingId,omitempty"`

	Amount     float64           `gorm:"not null" json:"amount"`
	Method     string            `gorm:"size:50;not null" json:"method"`
	ExternalID string            `gorm:"column:external_id;size:255" json:"externalId,omitempty"`
	Status     string            `gorm:"size:20;index;not null" json:"status"`
	Details    datatypes.JSONMap `gorm:"column:details" json:"details,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
