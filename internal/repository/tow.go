package repository

import (
	"fleet-management-backend/internal/authz"
	"fleet-management-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TowRepository handles database operations for tow records
type TowRepository struct {
	db *gorm.DB
}

// NewTowRepository creates a new tow repository
func NewTowRepository(db *gorm.DB) *TowRepository {
	return &TowRepository{db: db}
}

// Create creates a new tow record
func (r *TowRepository) Create(tow *models.Tow) error {
	return r.db.Create(tow).Error
}

// GetByID retrieves a tow record by ID
func (r *TowRepository) GetByID(id uuid.UUID) (*models.Tow, error) {
	var tow models.Tow
	err := r.db.First(&tow, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &tow, nil
}

// List retrieves tow records visible within the given scope, with
// pagination. Driver scopes carry an owner filter so drivers only see
// tows they recorded themselves.
func (r *TowRepository) List(scope authz.Scope, limit, offset int) ([]models.Tow, int64, error) {
	var tows []models.Tow
	var total int64

	query := scopeByOwner(r.db.Model(&models.Tow{}), scope)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("tow_date DESC").Limit(limit).Offset(offset).Find(&tows).Error; err != nil {
		return nil, 0, err
	}
	return tows, total, nil
}

// Update applies a column update map to a tow record
func (r *TowRepository) Update(id uuid.UUID, updates map[string]interface{}) error {
	return r.db.Model(&models.Tow{}).Where("id = ?", id).Updates(updates).Error
}

// Delete deletes a tow record
func (r *TowRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Tow{}, "id = ?", id).Error
}
