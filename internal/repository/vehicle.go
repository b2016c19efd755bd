package repository

import (
	"fleet-management-backend/internal/authz"
	"fleet-management-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VehicleRepository handles database operations for vehicles
type VehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository creates a new vehicle repository
func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// Create creates a new vehicle
func (r *VehicleRepository) Create(vehicle *models.Vehicle) error {
	return r.db.Create(vehicle).Error
}

// GetByID retrieves a vehicle by ID
func (r *VehicleRepository) GetByID(id uuid.UUID) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.First(&vehicle, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// GetByLicensePlate retrieves a vehicle by license plate
func (r *VehicleRepository) GetByLicensePlate(plate string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.First(&vehicle, "license_plate = ?", plate).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// List retrieves vehicles visible within the given scope, with pagination
func (r *VehicleRepository) List(scope authz.Scope, limit, offset int) ([]models.Vehicle, int64, error) {
	var vehicles []models.Vehicle
	var total int64

	query := scopeByCompany(r.db.Model(&models.Vehicle{}), scope)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&vehicles).Error; err != nil {
		return nil, 0, err
	}
	return vehicles, total, nil
}

// Update applies a column update map to a vehicle
func (r *VehicleRepository) Update(id uuid.UUID, updates map[string]interface{}) error {
	return r.db.Model(&models.Vehicle{}).Where("id = ?", id).Updates(updates).Error
}

// Delete deletes a vehicle
func (r *VehicleRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Vehicle{}, "id = ?", id).Error
}
