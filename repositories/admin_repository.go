package repositories

import (
	"context"

	"resort-backend/models"

	"gorm.io/gorm"
)

type AdminRepository interface {
	ListAdmins(ctx context.Context) ([]models.Admin, error)
	FindAdmin(ctx context.Context, id uint) (*models.Admin, error)
	FindAdminByUsername(ctx context.Context, username string) (*models.Admin, error)
	CreateAdmin(ctx context.Context, a *models.Admin) error
	DeleteAdmin(ctx context.Context, id uint) error
	// SetPermissions replaces the admin's permission rows.
	SetPermissions(ctx context.Context, adminID uint, permissions []string) error
}

type GormAdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{db: db}
}

func (r *GormAdminRepository) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	var list []models.Admin
	err := r.db.WithContext(ctx).Preload("Permissions").Order("id ASC").Find(&list).Error
	return list, translate(err)
}

func (r *GormAdminRepository) FindAdmin(ctx context.Context, id uint) (*models.Admin, error) {
	var a models.Admin
	if err := r.db.WithContext(ctx).Preload("Permissions").First(&a, id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *GormAdminRepository) FindAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var a models.Admin
	err := r.db.WithContext(ctx).Preload("Permissions").Where("username = ?", username).First(&a).Error
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *GormAdminRepository) CreateAdmin(ctx context.Context, a *models.Admin) error {
	return translate(r.db.WithContext(ctx).Create(a).Error)
}

func (r *GormAdminRepository) DeleteAdmin(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Admin{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormAdminRepository) SetPermissions(ctx context.Context, adminID uint, permissions []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("admin_id = ?", adminID).Delete(&models.AdminPermission{}).Error; err != nil {
			return err
		}
		if len(permissions) == 0 {
			return nil
		}
		rows := make([]models.AdminPermission, 0, len(permissions))
		for _, p := range permissions {
			rows = append(rows, models.AdminPermission{AdminID: adminID, Permission: p})
		}
		return tx.Create(&rows).Error
	})
	return translate(err)
}
