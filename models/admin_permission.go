package models

type AdminPermission struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	AdminID    uint   `gorm:"not null;index:idx_admin_permission,unique" json:"admin_id"`
	Permission string `gorm:"size:50;not null;index:idx_admin_permission,unique" json:"permission"`
}
