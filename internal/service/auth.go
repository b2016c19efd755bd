package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"fleet-management-backend/internal/auth"
	"fleet-management-backend/internal/authz"
	"fleet-management-backend/internal/database/models"
	apperrors "fleet-management-backend/internal/errors"
	"fleet-management-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const resetTokenTTL = time.Hour

// AuthService handles registration, login and credential recovery
type AuthService struct {
	users     repository.UserRepositoryInterface
	tokens    repository.TokenRepositoryInterface
	jwt       *auth.Service
	evaluator *authz.Evaluator
	mailer    MailerInterface
	validator *validator.Validate
}

// NewAuthService creates a new authentication service
func NewAuthService(users repository.UserRepositoryInterface, tokens repository.TokenRepositoryInterface, jwt *auth.Service, evaluator *authz.Evaluator, mailer MailerInterface, validator *validator.Validate) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		jwt:       jwt,
		evaluator: evaluator,
		mailer:    mailer,
		validator: validator,
	}
}

// RegisterRequest represents a request to register a driver account. Only
// admins and superadmins may register accounts; elevation happens through
// the user management API.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued token pair and the account it belongs to
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

// Register creates a new driver account in the actor's company
func (s *AuthService) Register(actor authz.Actor, req *RegisterRequest) (*UserResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	companyID := actor.CompanyID
	if companyID == "" {
		companyID = models.DefaultCompanyID
	}
	dec := s.evaluator.EvaluateCreate(actor, authz.ResourceUser, authz.CreateAttrs{
		Role:      authz.RoleDriver,
		CompanyID: companyID,
	})
	if !dec.Allowed() {
		return nil, dec.Err()
	}

	// Check the username before hashing, so conflicts never persist anything.
	existing, err := s.users.GetByUsername(req.Username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrUsernameExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:      req.Name,
		Username:  req.Username,
		Role:      authz.RoleDriver,
		Status:    models.UserStatusActive,
		Phone:     req.Phone,
		CompanyID: companyID,
		Auth:      models.UserAuth{PasswordHash: hash},
	}
	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return toUserResponse(user), nil
}

// Login verifies credentials and issues a token pair. The issued pair is
// recorded together with the caller's IP and user agent for session audit.
func (s *AuthService) Login(req *LoginRequest, ip, userAgent string) (*LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.users.GetByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !auth.ComparePassword(user.Auth.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if user.Status != models.UserStatusActive {
		return nil, apperrors.ErrAccountInactive
	}

	return s.issueSession(user, ip, userAgent)
}

// Refresh exchanges a valid refresh token for a fresh pair, rotating the
// stored session.
func (s *AuthService) Refresh(refreshToken, ip, userAgent string) (*LoginResponse, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	// The token must still be on record; logout revokes it.
	if _, err := s.tokens.GetByRefreshToken(refreshToken); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}

	user, err := s.users.GetByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user.Status != models.UserStatusActive {
		return nil, apperrors.ErrAccountInactive
	}

	if err := s.tokens.DeleteByRefreshToken(refreshToken); err != nil {
		return nil, fmt.Errorf("failed to rotate session: %w", err)
	}
	return s.issueSession(user, ip, userAgent)
}

// Logout revokes the session behind the given refresh token
func (s *AuthService) Logout(refreshToken string) error {
	if refreshToken == "" {
		return apperrors.ErrInvalidToken
	}
	return s.tokens.DeleteByRefreshToken(refreshToken)
}

// Profile returns the acting user's own account
func (s *AuthService) Profile(actor authz.Actor) (*UserResponse, error) {
	user, err := s.users.GetByID(actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toUserResponse(user), nil
}

// ForgotPassword issues a short-lived reset token and mails it out. An
// unknown username is not an error, so the endpoint cannot be used to
// probe for accounts.
func (s *AuthService) ForgotPassword(username string) error {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	token, err := randomToken()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(resetTokenTTL)
	err = s.users.Update(user.ID, map[string]interface{}{
		"reset_token":        token,
		"reset_token_expiry": expiry,
	})
	if err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	return s.mailer.SendPasswordReset(user.Username, token)
}

// ResetPassword consumes a reset token and sets the new password. All of
// the user's sessions are revoked.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	if token == "" {
		return apperrors.ErrInvalidResetToken
	}
	if len(newPassword) < 6 {
		return apperrors.NewValidationError("password", "must be at least 6 characters")
	}

	user, err := s.users.GetByResetToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidResetToken
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}
	if user.Auth.ResetTokenExpiry == nil || time.Now().After(*user.Auth.ResetTokenExpiry) {
		return apperrors.ErrInvalidResetToken
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	err = s.users.Update(user.ID, map[string]interface{}{
		"password_hash":      hash,
		"reset_token":        "",
		"reset_token_expiry": nil,
	})
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return s.tokens.DeleteByUserID(user.ID)
}

func (s *AuthService) issueSession(user *models.User, ip, userAgent string) (*LoginResponse, error) {
	access, refresh, err := s.jwt.GenerateTokenPair(user.ID, user.Username, user.Role, user.CompanyID)
	if err != nil {
		return nil, err
	}

	session := &models.Token{
		RefreshToken: refresh,
		AccessToken:  access,
		IP:           ip,
		UserAgent:    userAgent,
		UserID:       user.ID,
	}
	if err := s.tokens.Create(session); err != nil {
		return nil, fmt.Errorf("failed to record session: %w", err)
	}

	return &LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         *toUserResponse(user),
	}, nil
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
