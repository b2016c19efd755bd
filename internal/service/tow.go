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

// TowService handles business logic for tow records
type TowService struct {
	repo      repository.TowRepositoryInterface
	evaluator *authz.Evaluator
	validator *validator.Validate
}

// NewTowService creates a new tow record service
func NewTowService(repo repository.TowRepositoryInterface, evaluator *authz.Evaluator, validator *validator.Validate) *TowService {
	return &TowService{
		repo:      repo,
		evaluator: evaluator,
		validator: validator,
	}
}

// CreateTowRequest represents the request to record a tow
type CreateTowRequest struct {
	TowTruck     string    `json:"tow_truck" validate:"required,max=100"`
	Driver       string    `json:"driver" validate:"required,max=100"`
	LicensePlate string    `json:"license_plate" validate:"required,max=20"`
	TowDate      time.Time `json:"tow_date" validate:"required"`
	Distance     float64   `json:"distance" validate:"min=0"`
	Company      string    `json:"company" validate:"required,max=100"`
	Images       []string  `json:"images" validate:"omitempty,dive,max=512"`
	CompanyID    string    `json:"company_id" validate:"omitempty,max=64"`
}

// UpdateTowRequest represents a partial update to a tow record
type UpdateTowRequest struct {
	TowTruck     *string    `json:"tow_truck" validate:"omitempty,max=100"`
	Driver       *string    `json:"driver" validate:"omitempty,max=100"`
	LicensePlate *string    `json:"license_plate" validate:"omitempty,max=20"`
	TowDate      *time.Time `json:"tow_date"`
	Distance     *float64   `json:"distance" validate:"omitempty,min=0"`
	Company      *string    `json:"company" validate:"omitempty,max=100"`
	Images       *[]string  `json:"images" validate:"omitempty,dive,max=512"`
	CompanyID    *string    `json:"company_id" validate:"omitempty,max=64"`
}

func (r *UpdateTowRequest) updates() map[string]interface{} {
	u := map[string]interface{}{}
	if r.TowTruck != nil {
		u[authz.FieldTowTruck] = *r.TowTruck
	}
	if r.Driver != nil {
		u[authz.FieldDriverName] = *r.Driver
	}
	if r.LicensePlate != nil {
		u[authz.FieldLicensePlate] = *r.LicensePlate
	}
	if r.TowDate != nil {
		u[authz.FieldTowDate] = *r.TowDate
	}
	if r.Distance != nil {
		u[authz.FieldDistance] = *r.Distance
	}
	if r.Company != nil {
		u[authz.FieldCompanyName] = *r.Company
	}
	if r.Images != nil {
		u[authz.FieldImages] = *r.Images
	}
	if r.CompanyID != nil {
		u[authz.FieldCompanyID] = *r.CompanyID
	}
	return u
}

// TowResponse represents the response for tow record operations
type TowResponse struct {
	ID           uuid.UUID `json:"id"`
	TowTruck     string    `json:"tow_truck"`
	Driver       string    `json:"driver"`
	LicensePlate string    `json:"license_plate"`
	TowDate      time.Time `json:"tow_date"`
	Distance     float64   `json:"distance"`
	Company      string    `json:"company"`
	Images       []string  `json:"images"`
	CompanyID    string    `json:"company_id"`
	UserID       uuid.UUID `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TowListResponse represents a paginated list of tow records
type TowListResponse struct {
	Tows     []TowResponse `json:"tows"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// Create records a new tow. The record is owned by the acting user.
func (s *TowService) Create(actor authz.Actor, req *CreateTowRequest) (*TowResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	companyID := req.CompanyID
	if companyID == "" {
		companyID = actor.CompanyID
	}
	dec := s.evaluator.EvaluateCreate(actor, authz.ResourceTow, authz.CreateAttrs{CompanyID: companyID})
	if !dec.Allowed() {
		return nil, dec.Err()
	}

	tow := &models.Tow{
		TowTruck:     req.TowTruck,
		Driver:       req.Driver,
		LicensePlate: req.LicensePlate,
		TowDate:      req.TowDate,
		Distance:     req.Distance,
		Company:      req.Company,
		Images:       models.StringArray(req.Images),
		CompanyID:    companyID,
		UserID:       actor.ID,
	}
	if err := s.repo.Create(tow); err != nil {
		return nil, fmt.Errorf("failed to create tow record: %w", err)
	}

	return toTowResponse(tow), nil
}

// GetByID retrieves a tow record visible to the actor
func (s *TowService) GetByID(actor authz.Actor, id uuid.UUID) (*TowResponse, error) {
	tow, err := s.load(id)
	if err != nil {
		return nil, err
	}

	dec := s.evaluator.Evaluate(actor, authz.ActionRead, authz.ResourceTow, towTarget(tow))
	if !dec.Allowed() {
		return nil, dec.Err()
	}
	return toTowResponse(tow), nil
}

// List retrieves tow records within the actor's visibility scope
func (s *TowService) List(actor authz.Actor, page, pageSize int) (*TowListResponse, error) {
	page, pageSize = normalizePage(page, pageSize)

	scope := s.evaluator.ListScope(actor, authz.ResourceTow)
	tows, total, err := s.repo.List(scope, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list tow records: %w", err)
	}

	responses := make([]TowResponse, len(tows))
	for i := range tows {
		responses[i] = *toTowResponse(&tows[i])
	}
	return &TowListResponse{Tows: responses, Total: total, Page: page, PageSize: pageSize}, nil
}

// Update applies a partial update to a tow record, limited to the fields
// the actor may change
func (s *TowService) Update(actor authz.Actor, id uuid.UUID, req *UpdateTowRequest) (*TowResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	tow, err := s.load(id)
	if err != nil {
		return nil, err
	}

	dec := s.evaluator.EvaluateUpdate(actor, authz.ResourceTow, towTarget(tow), req.updates())
	if !dec.Allowed() {
		return nil, dec.Err()
	}

	columns := map[string]interface{}{}
	for _, field := range dec.Fields {
		switch field {
		case authz.FieldTowTruck:
			columns["tow_truck"] = *req.TowTruck
		case authz.FieldDriverName:
			columns["driver"] = *req.Driver
		case authz.FieldLicensePlate:
			columns["license_plate"] = *req.LicensePlate
		case authz.FieldTowDate:
			columns["tow_date"] = *req.TowDate
		case authz.FieldDistance:
			columns["distance"] = *req.Distance
		case authz.FieldCompanyName:
			columns["company"] = *req.Company
		case authz.FieldImages:
			columns["images"] = models.StringArray(*req.Images)
		case authz.FieldCompanyID:
			columns["company_id"] = *req.CompanyID
		}
	}
	if len(columns) > 0 {
		if err := s.repo.Update(id, columns); err != nil {
			return nil, fmt.Errorf("failed to update tow record: %w", err)
		}
	}

	updated, err := s.load(id)
	if err != nil {
		return nil, err
	}
	return toTowResponse(updated), nil
}

// Delete removes a tow record
func (s *TowService) Delete(actor authz.Actor, id uuid.UUID) error {
	tow, err := s.load(id)
	if err != nil {
		return err
	}

	dec := s.evaluator.Evaluate(actor, authz.ActionDelete, authz.ResourceTow, towTarget(tow))
	if !dec.Allowed() {
		return dec.Err()
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete tow record: %w", err)
	}
	return nil
}

func (s *TowService) load(id uuid.UUID) (*models.Tow, error) {
	tow, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTowNotFound
		}
		return nil, fmt.Errorf("failed to get tow record: %w", err)
	}
	return tow, nil
}

func towTarget(tow *models.Tow) *authz.Target {
	return &authz.Target{
		ID:        tow.ID,
		CompanyID: tow.CompanyID,
		OwnerID:   tow.UserID,
	}
}

func toTowResponse(tow *models.Tow) *TowResponse {
	return &TowResponse{
		ID:           tow.ID,
		TowTruck:     tow.TowTruck,
		Driver:       tow.Driver,
		LicensePlate: tow.LicensePlate,
		TowDate:      tow.TowDate,
		Distance:     tow.Distance,
		Company:      tow.Company,
		Images:       tow.Images,
		CompanyID:    tow.CompanyID,
		UserID:       tow.UserID,
		CreatedAt:    tow.CreatedAt,
		UpdatedAt:    tow.UpdatedAt,
	}
}
