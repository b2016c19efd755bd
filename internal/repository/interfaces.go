package repository

import (
	"fleet-management-backend/internal/authz"
	"fleet-management-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// UserRepositoryInterface defines the interface for user account repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByResetToken(token string) (*models.User, error)
	List(scope authz.Scope, limit, offset int) ([]models.User, int64, error)
	Update(id uuid.UUID, updates map[string]interface{}) error
	Save(user *models.User) error
	Delete(id uuid.UUID) error
}

// CompanyRepositoryInterface defines the interface for company repository operations
type CompanyRepositoryInterface interface {
	Create(company *models.Company) error
	GetByID(id uuid.UUID) (*models.Company, error)
	GetByEmail(email string) (*models.Company, error)
	List(scope authz.Scope, limit, offset int) ([]models.Company, int64, error)
	Update(id uuid.UUID, updates map[string]interface{}) error
	Delete(id uuid.UUID) error
}

// VehicleRepositoryInterface defines the interface for vehicle repository operations
type VehicleRepositoryInterface interface {
	Create(vehicle *models.Vehicle) error
	GetByID(id uuid.UUID) (*models.Vehicle, error)
	GetByLicensePlate(plate string) (*models.Vehicle, error)
	List(scope authz.Scope, limit, offset int) ([]models.Vehicle, int64, error)
	Update(id uuid.UUID, updates map[string]interface{}) error
	Delete(id uuid.UUID) error
}

// DriverRepositoryInterface defines the interface for driver roster repository operations
type DriverRepositoryInterface interface {
	Create(driver *models.Driver) error
	GetByID(id uuid.UUID) (*models.Driver, error)
	List(scope authz.Scope, limit, offset int) ([]models.Driver, int64, error)
	Update(id uuid.UUID, updates map[string]interface{}) error
	Delete(id uuid.UUID) error
}

// TowRepositoryInterface defines the interface for tow record repository operations
type TowRepositoryInterface interface {
	Create(tow *models.Tow) error
	GetByID(id uuid.UUID) (*models.Tow, error)
	List(scope authz.Scope, limit, offset int) ([]models.Tow, int64, error)
	Update(id uuid.UUID, updates map[string]interface{}) error
	Delete(id uuid.UUID) error
}

// ExpenseRepositoryInterface defines the interface for expense repository operations
type ExpenseRepositoryInterface interface {
	Create(expense *models.Expense) error
	GetByID(id uuid.UUID) (*models.Expense, error)
	List(scope authz.Scope, limit, offset int) ([]models.Expense, int64, error)
	Update(id uuid.UUID, updates map[string]interface{}) error
	Delete(id uuid.UUID) error
}

// TokenRepositoryInterface defines the interface for refresh token repository operations
type TokenRepositoryInterface interface {
	Create(token *models.Token) error
	GetByRefreshToken(refreshToken string) (*models.Token, error)
	DeleteByRefreshToken(refreshToken string) error
	DeleteByUserID(userID uuid.UUID) error
}
