package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"apachemart/app/models"
	"apachemart/internal/schema"
	"apachemart/pkg/apperr"
	"apachemart/pkg/database"
	"apachemart/pkg/metrics"
)

// AdminRepository handles database operations for back-office users.
type AdminRepository struct {
	mgr *database.Manager
}

func NewAdminRepository(mgr *database.Manager) *AdminRepository {
	return &AdminRepository{mgr: mgr}
}

// GetAdmins returns every admin account.
func (r *AdminRepository) GetAdmins() ([]*models.Admin, error) {
	if err := guard(r.mgr); err != nil {
		return nil, err
	}
	defer metrics.ObserveDBQuery("select", time.Now())

	var rows []schema.AdminRow
	if err := r.mgr.DB().Order("id").Find(&rows).Error; err != nil {
		return nil, fail(r.mgr, fmt.Errorf("repositories: list admins: %w", err))
	}

	admins := make([]*models.Admin, 0, len(rows))
	for _, row := range rows {
		a, err := adminFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("repositories: map admin %d: %w", row.ID, err)
		}
		admins = append(admins, a)
	}
	return admins, nil
}

// GetAdminByID looks up one admin. A missing id returns (nil, nil).
func (r *AdminRepository) GetAdminByID(id uint) (*models.Admin, error) {
	if err := guard(r.mgr); err != nil {
		return nil, err
	}
	defer metrics.ObserveDBQuery("select", time.Now())

	var row schema.AdminRow
	err := r.mgr.DB().First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fail(r.mgr, fmt.Errorf("repositories: get admin %d: %w", id, err))
	}
	return adminFromRow(row)
}

// GetAdminByEmail looks up one admin by address. A missing email returns
// (nil, nil).
func (r *AdminRepository) GetAdminByEmail(email string) (*models.Admin, error) {
	if err := guard(r.mgr); err != nil {
		return nil, err
	}
	defer metrics.ObserveDBQuery("select", time.Now())

	var row schema.AdminRow
	err := r.mgr.DB().Where("email = ?", email).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fail(r.mgr, fmt.Errorf("repositories: get admin by email: %w", err))
	}
	return adminFromRow(row)
}

// AddAdmin creates a new admin account. A duplicate email fails with
// apperr.ErrEmailTaken.
func (r *AdminRepository) AddAdmin(admin *models.Admin) error {
	if err := guard(r.mgr); err != nil {
		return err
	}
	defer metrics.ObserveDBQuery("insert", time.Now())

	var count int64
	if err := r.mgr.DB().Model(&schema.AdminRow{}).
		Where("email = ?", admin.Email()).Count(&count).Error; err != nil {
		return fail(r.mgr, fmt.Errorf("repositories: check admin email: %w", err))
	}
	if count > 0 {
		return apperr.ErrEmailTaken
	}

	row := adminToRow(admin)
	if err := r.mgr.DB().Create(&row).Error; err != nil {
		return fail(r.mgr, fmt.Errorf("repositories: add admin: %w", err))
	}
	admin.ID = row.ID
	return nil
}

// AuthenticateAdmin returns the admin matching email and password, or
// (nil, nil) when either is wrong.
func (r *AdminRepository) AuthenticateAdmin(email, password string) (*models.Admin, error) {
	if err := guard(r.mgr); err != nil {
		return nil, err
	}
	defer metrics.ObserveDBQuery("select", time.Now())

	admin, err := r.GetAdminByEmail(email)
	if err != nil {
		return nil, err
	}
	if admin == nil || admin.Password() != password || !admin.IsActive {
		return nil, nil
	}
	return admin, nil
}
