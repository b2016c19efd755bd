package repository

import (
	"fleet-management-backend/internal/authz"
	"fleet-management-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository handles database operations for user accounts
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "username = ?", username).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByResetToken retrieves a user by their pending password reset token
func (r *UserRepository) GetByResetToken(token string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "reset_token = ?", token).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves users visible within the given scope, with pagination
func (r *UserRepository) List(scope authz.Scope, limit, offset int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	query := scopeByCompany(r.db.Model(&models.User{}), scope)
	if scope.RoleOnly != "" {
		query = query.Where("role = ?", scope.RoleOnly)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Update applies a column update map to a user
func (r *UserRepository) Update(id uuid.UUID, updates map[string]interface{}) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error
}

// Save persists a full user record
func (r *UserRepository) Save(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete deletes a user
func (r *UserRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.User{}, "id = ?", id).Error
}
