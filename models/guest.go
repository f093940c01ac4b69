package models

import (
	"fmt"
	"strings"
	"time"
)

// Guest is identified by the chat/account id it first contacted us with.
type Guest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	ExternalID string `gorm:"column:external_id;uniqueIndex;size:64;not null" json:"externalId"`
	Username   string `gorm:"size:255" json:"username"`
	FirstName  string `gorm:"size:255" json:"firstName"`
	LastName   string `gorm:"size:255" json:"lastName"`
	Phone      string `gorm:"size:20" json:"phone"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (g Guest) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(g.FirstName) + " " + strings.TrimSpace(g.LastName))
	if name != "" {
		return name
	}
	if u := strings.TrimSpace(g.Username); u != "" {
		return u
	}
	return fmt.Sprintf("Guest #%d", g.ID)
}
