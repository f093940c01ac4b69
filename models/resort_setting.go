package models

import "time"

// ResortSettingID is the id of the only settings row.
const ResortSettingID = 1

// ResortSetting is a single-row table.
type ResortSetting struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:255" json:"name"`
	Address string `gorm:"type:text" json:"address"`
	Phone   string `gorm:"size:50" json:"phone"`
	Email   string `gorm:"size:150" json:"email"`
	Website string `gorm:"size:255" json:"website"`
	Logo    string `gorm:"size:255" json:"logo"`

	ServiceDayStart string `gorm:"column:service_day_start;size:5" json:"service_day_start"`
	ServiceDayEnd   string `gorm:"column:service_day_end;size:5" json:"service_day_end"`
	SlotMinutes     int    `gorm:"column:slot_minutes" json:"slot_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
