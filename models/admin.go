package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	PermissionRooms    = "rooms"
	PermissionServices = "services"
	PermissionBookings = "bookings"
	PermissionAdmins   = "admins"
)

var AllPermissions = []string{PermissionRooms, PermissionServices, PermissionBookings, PermissionAdmins}

func IsPermission(p string) bool {
	for _, known := range AllPermissions {
		if known == p {
			return true
		}
	}
	return false
}

type Admin struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	FullName     string            `gorm:"size:255" json:"full_name"`
	Username     string            `gorm:"uniqueIndex;size:150" json:"username"`
	Password     string            `gorm:"size:255" json:"-"` // bcrypt hash
	ExternalID   *string           `gorm:"column:external_id;uniqueIndex;size:64" json:"external_id,omitempty"`
	IsSuperAdmin bool              `gorm:"column:is_superadmin;not null" json:"is_superadmin"`
	Permissions  []AdminPermission `gorm:"foreignKey:AdminID" json:"permissions"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	DeletedAt    gorm.DeletedAt    `gorm:"index" json:"-"`
}

func (a Admin) Can(permission string) bool {
	if a.IsSuperAdmin {
		return true
	}
	for _, p := range a.Permissions {
		if p.Permission == permission {
			return true
		}
	}
	return false
}
