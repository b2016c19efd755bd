package repository

import (
	"fleet-management-backend/internal/authz"
	"fleet-management-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DriverRepository handles database operations for the driver roster
type DriverRepository struct {
	db *gorm.DB
}

// NewDriverRepository creates a new driver repository
func NewDriverRepository(db *gorm.DB) *DriverRepository {
	return &DriverRepository{db: db}
}

// Create creates a new driver
func (r *DriverRepository) Create(driver *models.Driver) error {
	return r.db.Create(driver).Error
}

// GetByID retrieves a driver by ID
func (r *DriverRepository) GetByID(id uuid.UUID) (*models.Driver, error) {
	var driver models.Driver
	err := r.db.First(&driver, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &driver, nil
}

// List retrieves drivers visible within the given scope, with pagination
func (r *DriverRepository) List(scope authz.Scope, limit, offset int) ([]models.Driver, int64, error) {
	var drivers []models.Driver
	var total int64

	query := scopeByCompany(r.db.Model(&models.Driver{}), scope)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("name ASC").Limit(limit).Offset(offset).Find(&drivers).Error; err != nil {
		return nil, 0, err
	}
	return drivers, total, nil
}

// Update applies a column update map to a driver
func (r *DriverRepository) Update(id uuid.UUID, updates map[string]interface{}) error {
	return r.db.Model(&models.Driver{}).Where("id = ?", id).Updates(updates).Error
}

// Delete deletes a driver
func (r *DriverRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Driver{}, "id = ?", id).Error
}
