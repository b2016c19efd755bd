package repository

import (
	"fleet-management-backend/internal/authz"
	"fleet-management-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExpenseRepository handles database operations for expenses
type ExpenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Create creates a new expense
func (r *ExpenseRepository) Create(expense *models.Expense) error {
	return r.db.Create(expense).Error
}

// GetByID retrieves an expense by ID
func (r *ExpenseRepository) GetByID(id uuid.UUID) (*models.Expense, error) {
	var expense models.Expense
	err := r.db.First(&expense, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// List retrieves expenses visible within the given scope, with pagination.
// Expense visibility is company-wide, so the owner filter is not applied.
func (r *ExpenseRepository) List(scope authz.Scope, limit, offset int) ([]models.Expense, int64, error) {
	var expenses []models.Expense
	var total int64

	query := scopeByCompany(r.db.Model(&models.Expense{}), scope)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("date DESC").Limit(limit).Offset(offset).Find(&expenses).Error; err != nil {
		return nil, 0, err
	}
	return expenses, total, nil
}

// Update applies a column update map to an expense
func (r *ExpenseRepository) Update(id uuid.UUID, updates map[string]interface{}) error {
	return r.db.Model(&models.Expense{}).Where("id = ?", id).Updates(updates).Error
}

// Delete deletes an expense
func (r *ExpenseRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Expense{}, "id = ?", id).Error
}
