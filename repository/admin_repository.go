package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/vasudha-connect/kinshipbackend/models"
)

// GormAdminRepository handles database operations for admin accounts
type GormAdminRepository struct {
	db *gorm.DB
}

// NewGormAdminRepository creates a new instance of GormAdminRepository
func NewGormAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{db: db}
}

// Create inserts a new admin account
func (r *GormAdminRepository) Create(admin *models.Admin) error {
	if err := r.db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin %s: %w", admin.Username, err)
	}
	return nil
}

// GetByUsername retrieves an admin by username. gorm.ErrRecordNotFound
// passes through.
func (r *GormAdminRepository) GetByUsername(username string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.Where("username = ?", username).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// Count returns the number of admin accounts
func (r *GormAdminRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}
