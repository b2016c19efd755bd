package service

import (
	"errors"
	"fmt"
	"time"

	"fleet-management-backend/internal/auth"
	"fleet-management-backend/internal/authz"
	"fleet-management-backend/internal/database/models"
	apperrors "fleet-management-backend/internal/errors"
	"fleet-management-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService handles business logic for user accounts
type UserService struct {
	repo      repository.UserRepositoryInterface
	evaluator *authz.Evaluator
	validator *validator.Validate
}

// NewUserService creates a new user service
func NewUserService(repo repository.UserRepositoryInterface, evaluator *authz.Evaluator, validator *validator.Validate) *UserService {
	return &UserService{
		repo:      repo,
		evaluator: evaluator,
		validator: validator,
	}
}

// CreateUserRequest represents the request to create a user account
type CreateUserRequest struct {
	Name       string     `json:"name" validate:"required,max=100"`
	Username   string     `json:"username" validate:"required,min=3,max=50"`
	Password   string     `json:"password" validate:"required,min=6,max=72"`
	Role       authz.Role `json:"role" validate:"omitempty,oneof=superadmin admin driver"`
	Phone      string     `json:"phone" validate:"omitempty,max=20"`
	CompanyID  string     `json:"company_id" validate:"omitempty,max=64"`
	License    string     `json:"license" validate:"omitempty,max=50"`
	Experience int        `json:"experience" validate:"omitempty,min=0"`
}

// UpdateUserRequest represents a partial update to a user account. Nil
// fields are untouched; the write filter decides which of the present
// fields the actor may actually change.
type UpdateUserRequest struct {
	Name       *string     `json:"name" validate:"omitempty,max=100"`
	Username   *string     `json:"username" validate:"omitempty,min=3,max=50"`
	Password   *string     `json:"password" validate:"omitempty,min=6,max=72"`
	Role       *authz.Role `json:"role" validate:"omitempty,oneof=superadmin admin driver"`
	Status     *string     `json:"status" validate:"omitempty,oneof=active inactive onleave"`
	Phone      *string     `json:"phone" validate:"omitempty,max=20"`
	CompanyID  *string     `json:"company_id" validate:"omitempty,max=64"`
	License    *string     `json:"license" validate:"omitempty,max=50"`
	Experience *int        `json:"experience" validate:"omitempty,min=0"`
	IsDriver   *bool       `json:"is_driver"`
}

func (r *UpdateUserRequest) updates() map[string]interface{} {
	u := map[string]interface{}{}
	if r.Name != nil {
		u[authz.FieldName] = *r.Name
	}
	if r.Username != nil {
		u[authz.FieldUsername] = *r.Username
	}
	if r.Password != nil {
		u[authz.FieldPassword] = *r.Password
	}
	if r.Role != nil {
		u[authz.FieldRole] = *r.Role
	}
	if r.Status != nil {
		u[authz.FieldStatus] = *r.Status
	}
	if r.Phone != nil {
		u[authz.FieldPhone] = *r.Phone
	}
	if r.CompanyID != nil {
		u[authz.FieldCompanyID] = *r.CompanyID
	}
	if r.License != nil {
		u[authz.FieldLicense] = *r.License
	}
	if r.Experience != nil {
		u[authz.FieldExperience] = *r.Experience
	}
	if r.IsDriver != nil {
		u[authz.FieldIsDriver] = *r.IsDriver
	}
	return u
}

// UserResponse represents the response for user operations
type UserResponse struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Username   string     `json:"username"`
	Role       authz.Role `json:"role"`
	Status     string     `json:"status"`
	IsVerified bool       `json:"is_verified"`
	Phone      string     `json:"phone,omitempty"`
	CompanyID  string     `json:"company_id"`
	License    string     `json:"license,omitempty"`
	Experience int        `json:"experience,omitempty"`
	IsDriver   bool       `json:"is_driver"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users    []UserResponse `json:"users"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// Create creates a new user account
func (s *UserService) Create(actor authz.Actor, req *CreateUserRequest) (*UserResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	role := req.Role
	if role == "" {
		role = authz.RoleDriver
	}
	companyID := req.CompanyID
	if companyID == "" {
		companyID = actor.CompanyID
	}

	dec := s.evaluator.EvaluateCreate(actor, authz.ResourceUser, authz.CreateAttrs{
		Role:      role,
		CompanyID: companyID,
	})
	if !dec.Allowed() {
		return nil, dec.Err()
	}

	existing, err := s.repo.GetByUsername(req.Username)
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
		Role:      role,
		Status:    models.UserStatusActive,
		Phone:     req.Phone,
		CompanyID: companyID,
		DriverInfo: models.DriverInfo{
			License:    req.License,
			Experience: req.Experience,
			IsDriver:   role == authz.RoleDriver,
		},
		Auth: models.UserAuth{PasswordHash: hash},
	}
	if err := s.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return toUserResponse(user), nil
}

// GetByID retrieves a user account visible to the actor
func (s *UserService) GetByID(actor authz.Actor, id uuid.UUID) (*UserResponse, error) {
	user, err := s.load(id)
	if err != nil {
		return nil, err
	}

	dec := s.evaluator.Evaluate(actor, authz.ActionRead, authz.ResourceUser, userTarget(user))
	if !dec.Allowed() {
		return nil, dec.Err()
	}
	return toUserResponse(user), nil
}

// List retrieves user accounts within the actor's visibility scope
func (s *UserService) List(actor authz.Actor, page, pageSize int) (*UserListResponse, error) {
	page, pageSize = normalizePage(page, pageSize)

	scope := s.evaluator.ListScope(actor, authz.ResourceUser)
	users, total, err := s.repo.List(scope, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = *toUserResponse(&users[i])
	}
	return &UserListResponse{Users: responses, Total: total, Page: page, PageSize: pageSize}, nil
}

// ListDrivers retrieves the driver accounts within the actor's visibility
// scope, regardless of the actor's own role
func (s *UserService) ListDrivers(actor authz.Actor, page, pageSize int) (*UserListResponse, error) {
	page, pageSize = normalizePage(page, pageSize)

	scope := s.evaluator.ListScope(actor, authz.ResourceUser)
	scope.RoleOnly = authz.RoleDriver
	users, total, err := s.repo.List(scope, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}

	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = *toUserResponse(&users[i])
	}
	return &UserListResponse{Users: responses, Total: total, Page: page, PageSize: pageSize}, nil
}

// Update applies a partial update to a user account, limited to the fields
// the actor may change
func (s *UserService) Update(actor authz.Actor, id uuid.UUID, req *UpdateUserRequest) (*UserResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.load(id)
	if err != nil {
		return nil, err
	}

	dec := s.evaluator.EvaluateUpdate(actor, authz.ResourceUser, userTarget(user), req.updates())
	if !dec.Allowed() {
		return nil, dec.Err()
	}

	columns := map[string]interface{}{}
	for _, field := range dec.Fields {
		switch field {
		case authz.FieldName:
			columns["name"] = *req.Name
		case authz.FieldUsername:
			if *req.Username != user.Username {
				existing, err := s.repo.GetByUsername(*req.Username)
				if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, fmt.Errorf("failed to check existing user: %w", err)
				}
				if existing != nil {
					return nil, apperrors.ErrUsernameExists
				}
			}
			columns["username"] = *req.Username
		case authz.FieldPassword:
			hash, err := auth.HashPassword(*req.Password)
			if err != nil {
				return nil, err
			}
			columns["password_hash"] = hash
		case authz.FieldRole:
			columns["role"] = *req.Role
		case authz.FieldStatus:
			columns["status"] = *req.Status
		case authz.FieldPhone:
			columns["phone"] = *req.Phone
		case authz.FieldCompanyID:
			columns["company_id"] = *req.CompanyID
		case authz.FieldLicense:
			columns["driver_license"] = *req.License
		case authz.FieldExperience:
			columns["driver_experience"] = *req.Experience
		case authz.FieldIsDriver:
			columns["is_driver"] = *req.IsDriver
		}
	}
	if len(columns) > 0 {
		if err := s.repo.Update(id, columns); err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	updated, err := s.load(id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(updated), nil
}

// Delete removes a user account
func (s *UserService) Delete(actor authz.Actor, id uuid.UUID) error {
	user, err := s.load(id)
	if err != nil {
		return err
	}

	dec := s.evaluator.Evaluate(actor, authz.ActionDelete, authz.ResourceUser, userTarget(user))
	if !dec.Allowed() {
		return dec.Err()
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *UserService) load(id uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func userTarget(user *models.User) *authz.Target {
	return &authz.Target{
		ID:        user.ID,
		CompanyID: user.CompanyID,
		Role:      user.Role,
	}
}

func toUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:         user.ID,
		Name:       user.Name,
		Username:   user.Username,
		Role:       user.Role,
		Status:     string(user.Status),
		IsVerified: user.IsVerified,
		Phone:      user.Phone,
		CompanyID:  user.CompanyID,
		License:    user.DriverInfo.License,
		Experience: user.DriverInfo.Experience,
		IsDriver:   user.DriverInfo.IsDriver,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
