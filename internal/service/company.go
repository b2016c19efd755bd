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

// CompanyService handles business logic for companies
type CompanyService struct {
	repo      repository.CompanyRepositoryInterface
	evaluator *authz.Evaluator
	validator *validator.Validate
}

// NewCompanyService creates a new company service
func NewCompanyService(repo repository.CompanyRepositoryInterface, evaluator *authz.Evaluator, validator *validator.Validate) *CompanyService {
	return &CompanyService{
		repo:      repo,
		evaluator: evaluator,
		validator: validator,
	}
}

// CreateCompanyRequest represents the request to create a company
type CreateCompanyRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Address string `json:"address" validate:"omitempty,max=255"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Logo    string `json:"logo" validate:"omitempty,max=512"`
}

// UpdateCompanyRequest represents a partial update to a company
type UpdateCompanyRequest struct {
	Name    *string `json:"name" validate:"omitempty,max=100"`
	Address *string `json:"address" validate:"omitempty,max=255"`
	Phone   *string `json:"phone" validate:"omitempty,max=20"`
	Email   *string `json:"email" validate:"omitempty,email,max=255"`
	Logo    *string `json:"logo" validate:"omitempty,max=512"`
	Status  *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (r *UpdateCompanyRequest) updates() map[string]interface{} {
	u := map[string]interface{}{}
	if r.Name != nil {
		u[authz.FieldName] = *r.Name
	}
	if r.Address != nil {
		u[authz.FieldAddress] = *r.Address
	}
	if r.Phone != nil {
		u[authz.FieldPhone] = *r.Phone
	}
	if r.Email != nil {
		u[authz.FieldEmail] = *r.Email
	}
	if r.Logo != nil {
		u[authz.FieldLogo] = *r.Logo
	}
	if r.Status != nil {
		u[authz.FieldStatus] = *r.Status
	}
	return u
}

// CompanyResponse represents the response for company operations
type CompanyResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email"`
	Logo      string    `json:"logo,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompanyListResponse represents a paginated list of companies
type CompanyListResponse struct {
	Companies []CompanyResponse `json:"companies"`
	Total     int64             `json:"total"`
	Page      int               `json:"page"`
	PageSize  int               `json:"page_size"`
}

// Create creates a new company
func (s *CompanyService) Create(actor authz.Actor, req *CreateCompanyRequest) (*CompanyResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	dec := s.evaluator.EvaluateCreate(actor, authz.ResourceCompany, authz.CreateAttrs{})
	if !dec.Allowed() {
		return nil, dec.Err()
	}

	existing, err := s.repo.GetByEmail(req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing company: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrCompanyEmailExists
	}

	company := &models.Company{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
		Logo:    req.Logo,
		Status:  models.CompanyStatusActive,
	}
	if err := s.repo.Create(company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	return toCompanyResponse(company), nil
}

// GetByID retrieves a company visible to the actor
func (s *CompanyService) GetByID(actor authz.Actor, id uuid.UUID) (*CompanyResponse, error) {
	company, err := s.load(id)
	if err != nil {
		return nil, err
	}

	dec := s.evaluator.Evaluate(actor, authz.ActionRead, authz.ResourceCompany, companyTarget(company))
	if !dec.Allowed() {
		return nil, dec.Err()
	}
	return toCompanyResponse(company), nil
}

// List retrieves companies within the actor's visibility scope
func (s *CompanyService) List(actor authz.Actor, page, pageSize int) (*CompanyListResponse, error) {
	page, pageSize = normalizePage(page, pageSize)

	scope := s.evaluator.ListScope(actor, authz.ResourceCompany)
	companies, total, err := s.repo.List(scope, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	responses := make([]CompanyResponse, len(companies))
	for i := range companies {
		responses[i] = *toCompanyResponse(&companies[i])
	}
	return &CompanyListResponse{Companies: responses, Total: total, Page: page, PageSize: pageSize}, nil
}

// Update applies a partial update to a company, limited to the fields the
// actor may change
func (s *CompanyService) Update(actor authz.Actor, id uuid.UUID, req *UpdateCompanyRequest) (*CompanyResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	company, err := s.load(id)
	if err != nil {
		return nil, err
	}

	dec := s.evaluator.EvaluateUpdate(actor, authz.ResourceCompany, companyTarget(company), req.updates())
	if !dec.Allowed() {
		return nil, dec.Err()
	}

	columns := map[string]interface{}{}
	for _, field := range dec.Fields {
		switch field {
		case authz.FieldName:
			columns["name"] = *req.Name
		case authz.FieldAddress:
			columns["address"] = *req.Address
		case authz.FieldPhone:
			columns["phone"] = *req.Phone
		case authz.FieldEmail:
			if *req.Email != company.Email {
				existing, err := s.repo.GetByEmail(*req.Email)
				if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, fmt.Errorf("failed to check existing company: %w", err)
				}
				if existing != nil {
					return nil, apperrors.ErrCompanyEmailExists
				}
			}
			columns["email"] = *req.Email
		case authz.FieldLogo:
			columns["logo"] = *req.Logo
		case authz.FieldStatus:
			columns["status"] = *req.Status
		}
	}
	if len(columns) > 0 {
		if err := s.repo.Update(id, columns); err != nil {
			return nil, fmt.Errorf("failed to update company: %w", err)
		}
	}

	updated, err := s.load(id)
	if err != nil {
		return nil, err
	}
	return toCompanyResponse(updated), nil
}

// Delete removes a company
func (s *CompanyService) Delete(actor authz.Actor, id uuid.UUID) error {
	company, err := s.load(id)
	if err != nil {
		return err
	}

	dec := s.evaluator.Evaluate(actor, authz.ActionDelete, authz.ResourceCompany, companyTarget(company))
	if !dec.Allowed() {
		return dec.Err()
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	return nil
}

func (s *CompanyService) load(id uuid.UUID) (*models.Company, error) {
	company, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

// companyTarget keys the tenant scope by the company's own ID, since an
// actor's company_id claim names the company record it belongs to.
func companyTarget(company *models.Company) *authz.Target {
	return &authz.Target{
		ID:        company.ID,
		CompanyID: company.ID.String(),
	}
}

func toCompanyResponse(company *models.Company) *CompanyResponse {
	return &CompanyResponse{
		ID:        company.ID,
		Name:      company.Name,
		Address:   company.Address,
		Phone:     company.Phone,
		Email:     company.Email,
		Logo:      company.Logo,
		Status:    string(company.Status),
		CreatedAt: company.CreatedAt,
		UpdatedAt: company.UpdatedAt,
	}
}
