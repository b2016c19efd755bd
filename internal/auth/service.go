package auth

import (
	"fmt"
	"time"

	"fleet-management-backend/internal/authz"
	apperrors "fleet-management-backend/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// Claims represents the JWT token claims carried by access and refresh
// tokens. They contain exactly what the permission evaluator needs to
// reconstruct the actor.
type Claims struct {
	UserID    uuid.UUID  `json:"user_id"`
	Username  string     `json:"username"`
	Role      authz.Role `json:"role"`
	CompanyID string     `json:"company_id"`
	jwt.RegisteredClaims
}

// Actor converts verified claims into the evaluator's actor value.
func (c *Claims) Actor() authz.Actor {
	return authz.Actor{
		ID:        c.UserID,
		Role:      c.Role,
		CompanyID: c.CompanyID,
	}
}

// Service issues and validates JWT token pairs and hashes passwords.
type Service struct {
	accessSecret    []byte
	refreshSecret   []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewService creates a new auth service. TTL strings use Go duration
// syntax; empty values fall back to 24h access / 30d refresh.
func NewService(accessSecret, refreshSecret, accessTTL, refreshTTL string) (*Service, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, fmt.Errorf("token secrets are required")
	}

	s := &Service{
		accessSecret:    []byte(accessSecret),
		refreshSecret:   []byte(refreshSecret),
		accessTokenTTL:  24 * time.Hour,
		refreshTokenTTL: 30 * 24 * time.Hour,
	}
	if accessTTL != "" {
		d, err := time.ParseDuration(accessTTL)
		if err != nil {
			return nil, fmt.Errorf("parse access token TTL: %w", err)
		}
		s.accessTokenTTL = d
	}
	if refreshTTL != "" {
		d, err := time.ParseDuration(refreshTTL)
		if err != nil {
			return nil, fmt.Errorf("parse refresh token TTL: %w", err)
		}
		s.refreshTokenTTL = d
	}
	return s, nil
}

// GenerateTokenPair issues an access token and a refresh token for the user.
func (s *Service) GenerateTokenPair(userID uuid.UUID, username string, role authz.Role, companyID string) (access string, refresh string, err error) {
	access, err = s.generate(s.accessSecret, s.accessTokenTTL, userID, username, role, companyID)
	if err != nil {
		return "", "", fmt.Errorf("sign access token: %w", err)
	}
	refresh, err = s.generate(s.refreshSecret, s.refreshTokenTTL, userID, username, role, companyID)
	if err != nil {
		return "", "", fmt.Errorf("sign refresh token: %w", err)
	}
	return access, refresh, nil
}

func (s *Service) generate(secret []byte, ttl time.Duration, userID uuid.UUID, username string, role authz.Role, companyID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:    userID,
		Username:  username,
		Role:      role,
		CompanyID: companyID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "fleet-management-backend",
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateAccessToken verifies an access token and returns its claims.
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.validate(tokenString, s.accessSecret)
}

// ValidateRefreshToken verifies a refresh token and returns its claims.
func (s *Service) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return s.validate(tokenString, s.refreshSecret)
}

func (s *Service) validate(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// ComparePassword reports whether the plaintext password matches the hash.
func ComparePassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
