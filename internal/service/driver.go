package service

import (
	"errors"
	"fmt"
	"time"

	"fleet-management-backend/internal/authz"
	"fleet-management-backend/internal/database/models"
	apperrors "fleet-management-backend/internal/errors"
	"fleet-management-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DriverService handles business logic for the driver roster
type DriverService struct {
	repo      repository.DriverRepositoryInterface
	evaluator *authz.Evaluator
	validator *validator.Validate
}

// NewDriverService creates a new driver roster service
func NewDriverService(repo repository.DriverRepositoryInterface, evaluator *authz.Evaluator, validator *validator.Validate) *DriverService {
	return &DriverService{
		repo:      repo,
		evaluator: evaluator,
		validator: validator,
	}
}

// CreateDriverRequest represents the request to create a roster driver
type CreateDriverRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	Phone      string `json:"phone" validate:"required,max=20"`
	License    string `json:"license" validate:"required,max=50"`
	Experience int    `json:"experience" validate:"omitempty,min=0"`
	Avatar     string `json:"avatar" validate:"omitempty,max=512"`
	CompanyID  string `json:"company_id" validate:"omitempty,max=64"`
}

// UpdateDriverRequest represents a partial update to a roster driver
type UpdateDriverRequest struct {
	Name       *string `json:"name" validate:"omitempty,max=100"`
	Phone      *string `json:"phone" validate:"omitempty,max=20"`
	License    *string `json:"license" validate:"omitempty,max=50"`
	Experience *int    `json:"experience" validate:"omitempty,min=0"`
	Avatar     *string `json:"avatar" validate:"omitempty,max=512"`
	Status     *string `json:"status" validate:"omitempty,oneof=active inactive onleave"`
	CompanyID  *string `json:"company_id" validate:"omitempty,max=64"`
}

func (r *UpdateDriverRequest) updates() map[string]interface{} {
	u := map[string]interface{}{}
	if r.Name != nil {
		u[authz.FieldName] = *r.Name
	}
	if r.Phone != nil {
		u[authz.FieldPhone] = *r.Phone
	}
	if r.License != nil {
		u[authz.FieldLicense] = *r.License
	}
	if r.Experience != nil {
		u[authz.FieldExperience] = *r.Experience
	}
	if r.Avatar != nil {
		u[authz.FieldAvatar] = *r.Avatar
	}
	if r.Status != nil {
		u[authz.FieldStatus] = *r.Status
	}
	if r.CompanyID != nil {
		u[authz.FieldCompanyID] = *r.CompanyID
	}
	return u
}

// DriverResponse represents the response for driver roster operations
type DriverResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	License    string    `json:"license"`
	Experience int       `json:"experience"`
	Avatar     string    `json:"avatar,omitempty"`
	Status     string    `json:"status"`
	CompanyID  string    `json:"company_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DriverListResponse represents a paginated list of roster drivers
type DriverListResponse struct {
	Drivers  []DriverResponse `json:"drivers"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// Create creates a new roster driver
func (s *DriverService) Create(actor authz.Actor, req *CreateDriverRequest) (*DriverResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	companyID := req.CompanyID
	if companyID == "" {
		companyID = actor.CompanyID
	}
	dec := s.evaluator.EvaluateCreate(actor, authz.ResourceDriver, authz.CreateAttrs{CompanyID: companyID})
	if !dec.Allowed() {
		return nil, dec.Err()
	}

	avatar := req.Avatar
	if avatar == "" {
		avatar = models.DefaultDriverAvatar
	}

	driver := &models.Driver{
		Name:       req.Name,
		Phone:      req.Phone,
		License:    req.License,
		Experience: req.Experience,
		Avatar:     avatar,
		Status:     models.DriverStatusActive,
		CompanyID:  companyID,
	}
	if err := s.repo.Create(driver); err != nil {
		return nil, fmt.Errorf("failed to create driver: %w", err)
	}

	return toDriverResponse(driver), nil
}

// GetByID retrieves a roster driver visible to the actor
func (s *DriverService) GetByID(actor authz.Actor, id uuid.UUID) (*DriverResponse, error) {
	driver, err := s.load(id)
	if err != nil {
		return nil, err
	}

	dec := s.evaluator.Evaluate(actor, authz.ActionRead, authz.ResourceDriver, driverTarget(driver))
	if !dec.Allowed() {
		return nil, dec.Err()
	}
	return toDriverResponse(driver), nil
}

// List retrieves roster drivers within the actor's visibility scope
func (s *DriverService) List(actor authz.Actor, page, pageSize int) (*DriverListResponse, error) {
	page, pageSize = normalizePage(page, pageSize)

	scope := s.evaluator.ListScope(actor, authz.ResourceDriver)
	drivers, total, err := s.repo.List(scope, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}

	responses := make([]DriverResponse, len(drivers))
	for i := range drivers {
		responses[i] = *toDriverResponse(&drivers[i])
	}
	return &DriverListResponse{Drivers: responses, Total: total, Page: page, PageSize: pageSize}, nil
}

// Update applies a partial update to a roster driver, limited to the
// fields the actor may change
func (s *DriverService) Update(actor authz.Actor, id uuid.UUID, req *UpdateDriverRequest) (*DriverResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	driver, err := s.load(id)
	if err != nil {
		return nil, err
	}

	dec := s.evaluator.EvaluateUpdate(actor, authz.ResourceDriver, driverTarget(driver), req.updates())
	if !dec.Allowed() {
		return nil, dec.Err()
	}

	columns := map[string]interface{}{}
	for _, field := range dec.Fields {
		switch field {
		case authz.FieldName:
			columns["name"] = *req.Name
		case authz.FieldPhone:
			columns["phone"] = *req.Phone
		case authz.FieldLicense:
			columns["license"] = *req.License
		case authz.FieldExperience:
			columns["experience"] = *req.Experience
		case authz.FieldAvatar:
			columns["avatar"] = *req.Avatar
		case authz.FieldStatus:
			columns["status"] = *req.Status
		case authz.FieldCompanyID:
			columns["company_id"] = *req.CompanyID
		}
	}
	if len(columns) > 0 {
		if err := s.repo.Update(id, columns); err != nil {
			return nil, fmt.Errorf("failed to update driver: %w", err)
		}
	}

	updated, err := s.load(id)
	if err != nil {
		return nil, err
	}
	return toDriverResponse(updated), nil
}

// Delete removes a roster driver
func (s *DriverService) Delete(actor authz.Actor, id uuid.UUID) error {
	driver, err := s.load(id)
	if err != nil {
		return err
	}

	dec := s.evaluator.Evaluate(actor, authz.ActionDelete, authz.ResourceDriver, driverTarget(driver))
	if !dec.Allowed() {
		return dec.Err()
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete driver: %w", err)
	}
	return nil
}

func (s *DriverService) load(id uuid.UUID) (*models.Driver, error) {
	driver, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDriverNotFound
		}
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}
	return driver, nil
}

func driverTarget(driver *models.Driver) *authz.Target {
	return &authz.Target{
		ID:        driver.ID,
		CompanyID: driver.CompanyID,
	}
}

func toDriverResponse(driver *models.Driver) *DriverResponse {
	return &DriverResponse{
		ID:         driver.ID,
		Name:       driver.Name,
		Phone:      driver.Phone,
		License:    driver.License,
		Experience: driver.Experience,
		Avatar:     driver.Avatar,
		Status:     string(driver.Status),
		CompanyID:  driver.CompanyID,
		CreatedAt:  driver.CreatedAt,
		UpdatedAt:  driver.UpdatedAt,
	}
}
