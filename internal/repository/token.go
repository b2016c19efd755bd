package repository

import (
	"fleet-management-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenRepository handles database operations for issued refresh tokens
type TokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Create stores an issued token pair
func (r *TokenRepository) Create(token *models.Token) error {
	return r.db.Create(token).Error
}

// GetByRefreshToken retrieves a stored token by its refresh token value
func (r *TokenRepository) GetByRefreshToken(refreshToken string) (*models.Token, error) {
	var token models.Token
	err := r.db.First(&token, "refresh_token = ?", refreshToken).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// DeleteByRefreshToken revokes a single session
func (r *TokenRepository) DeleteByRefreshToken(refreshToken string) error {
	return r.db.Delete(&models.Token{}, "refresh_token = ?", refreshToken).Error
}

// DeleteByUserID revokes every session belonging to a user
func (r *TokenRepository) DeleteByUserID(userID uuid.UUID) error {
	return r.db.Delete(&models.Token{}, "user_id = ?", userID).Error
}
