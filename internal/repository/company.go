package repository

import (
	"fleet-management-backend/internal/authz"
	"fleet-management-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyRepository handles database operations for companies
type CompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// Create creates a new company
func (r *CompanyRepository) Create(company *models.Company) error {
	return r.db.Create(company).Error
}

// GetByID retrieves a company by ID
func (r *CompanyRepository) GetByID(id uuid.UUID) (*models.Company, error) {
	var company models.Company
	err := r.db.First(&company, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// GetByEmail retrieves a company by contact email
func (r *CompanyRepository) GetByEmail(email string) (*models.Company, error) {
	var company models.Company
	err := r.db.First(&company, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// List retrieves companies visible within the given scope, with pagination.
// Non-global scopes see only their own tenant record.
func (r *CompanyRepository) List(scope authz.Scope, limit, offset int) ([]models.Company, int64, error) {
	var companies []models.Company
	var total int64

	query := r.db.Model(&models.Company{})
	if !scope.All {
		query = query.Where("id::text = ?", scope.CompanyID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("name ASC").Limit(limit).Offset(offset).Find(&companies).Error; err != nil {
		return nil, 0, err
	}
	return companies, total, nil
}

// Update applies a column update map to a company
func (r *CompanyRepository) Update(id uuid.UUID, updates map[string]interface{}) error {
	return r.db.Model(&models.Company{}).Where("id = ?", id).Updates(updates).Error
}

// Delete deletes a company
func (r *CompanyRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Company{}, "id = ?", id).Error
}
