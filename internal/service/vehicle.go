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

// VehicleService handles business logic for fleet vehicles
type VehicleService struct {
	repo      repository.VehicleRepositoryInterface
	evaluator *authz.Evaluator
	validator *validator.Validate
}

// NewVehicleService creates a new vehicle service
func NewVehicleService(repo repository.VehicleRepositoryInterface, evaluator *authz.Evaluator, validator *validator.Validate) *VehicleService {
	return &VehicleService{
		repo:      repo,
		evaluator: evaluator,
		validator: validator,
	}
}

// CreateVehicleRequest represents the request to create a vehicle
type CreateVehicleRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Model        string `json:"model" validate:"required,max=100"`
	Year         int    `json:"year" validate:"required,min=1950,max=2100"`
	LicensePlate string `json:"license_plate" validate:"required,max=20"`
	Image        string `json:"image" validate:"omitempty,max=512"`
	CompanyID    string `json:"company_id" validate:"omitempty,max=64"`
}

// UpdateVehicleRequest represents a partial update to a vehicle
type UpdateVehicleRequest struct {
	Name         *string `json:"name" validate:"omitempty,max=100"`
	Model        *string `json:"model" validate:"omitempty,max=100"`
	Year         *int    `json:"year" validate:"omitempty,min=1950,max=2100"`
	LicensePlate *string `json:"license_plate" validate:"omitempty,max=20"`
	Image        *string `json:"image" validate:"omitempty,max=512"`
	Status       *string `json:"status" validate:"omitempty,oneof=active inactive maintenance"`
	CompanyID    *string `json:"company_id" validate:"omitempty,max=64"`
}

func (r *UpdateVehicleRequest) updates() map[string]interface{} {
	u := map[string]interface{}{}
	if r.Name != nil {
		u[authz.FieldName] = *r.Name
	}
	if r.Model != nil {
		u[authz.FieldModel] = *r.Model
	}
	if r.Year != nil {
		u[authz.FieldYear] = *r.Year
	}
	if r.LicensePlate != nil {
		u[authz.FieldLicensePlate] = *r.LicensePlate
	}
	if r.Image != nil {
		u[authz.FieldImage] = *r.Image
	}
	if r.Status != nil {
		u[authz.FieldStatus] = *r.Status
	}
	if r.CompanyID != nil {
		u[authz.FieldCompanyID] = *r.CompanyID
	}
	return u
}

// VehicleResponse represents the response for vehicle operations
type VehicleResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	LicensePlate string    `json:"license_plate"`
	PlateNumber  string    `json:"plate_number,omitempty"`
	Image        string    `json:"image,omitempty"`
	Status       string    `json:"status"`
	CompanyID    string    `json:"company_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// VehicleListResponse represents a paginated list of vehicles
type VehicleListResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// Create creates a new vehicle
func (s *VehicleService) Create(actor authz.Actor, req *CreateVehicleRequest) (*VehicleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	companyID := req.CompanyID
	if companyID == "" {
		companyID = actor.CompanyID
	}
	dec := s.evaluator.EvaluateCreate(actor, authz.ResourceVehicle, authz.CreateAttrs{CompanyID: companyID})
	if !dec.Allowed() {
		return nil, dec.Err()
	}

	existing, err := s.repo.GetByLicensePlate(req.LicensePlate)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing vehicle: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrVehiclePlateExists
	}

	vehicle := &models.Vehicle{
		Name:         req.Name,
		Model:        req.Model,
		Year:         req.Year,
		LicensePlate: req.LicensePlate,
		Image:        req.Image,
		Status:       models.VehicleStatusActive,
		CompanyID:    companyID,
	}
	if err := s.repo.Create(vehicle); err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	return toVehicleResponse(vehicle), nil
}

// GetByID retrieves a vehicle visible to the actor
func (s *VehicleService) GetByID(actor authz.Actor, id uuid.UUID) (*VehicleResponse, error) {
	vehicle, err := s.load(id)
	if err != nil {
		return nil, err
	}

	dec := s.evaluator.Evaluate(actor, authz.ActionRead, authz.ResourceVehicle, vehicleTarget(vehicle))
	if !dec.Allowed() {
		return nil, dec.Err()
	}
	return toVehicleResponse(vehicle), nil
}

// List retrieves vehicles within the actor's visibility scope
func (s *VehicleService) List(actor authz.Actor, page, pageSize int) (*VehicleListResponse, error) {
	page, pageSize = normalizePage(page, pageSize)

	scope := s.evaluator.ListScope(actor, authz.ResourceVehicle)
	vehicles, total, err := s.repo.List(scope, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}

	responses := make([]VehicleResponse, len(vehicles))
	for i := range vehicles {
		responses[i] = *toVehicleResponse(&vehicles[i])
	}
	return &VehicleListResponse{Vehicles: responses, Total: total, Page: page, PageSize: pageSize}, nil
}

// Update applies a partial update to a vehicle, limited to the fields the
// actor may change
func (s *VehicleService) Update(actor authz.Actor, id uuid.UUID, req *UpdateVehicleRequest) (*VehicleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	vehicle, err := s.load(id)
	if err != nil {
		return nil, err
	}

	dec := s.evaluator.EvaluateUpdate(actor, authz.ResourceVehicle, vehicleTarget(vehicle), req.updates())
	if !dec.Allowed() {
		return nil, dec.Err()
	}

	columns := map[string]interface{}{}
	for _, field := range dec.Fields {
		switch field {
		case authz.FieldName:
			columns["name"] = *req.Name
		case authz.FieldModel:
			columns["model"] = *req.Model
		case authz.FieldYear:
			columns["year"] = *req.Year
		case authz.FieldLicensePlate:
			if *req.LicensePlate != vehicle.LicensePlate {
				existing, err := s.repo.GetByLicensePlate(*req.LicensePlate)
				if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, fmt.Errorf("failed to check existing vehicle: %w", err)
				}
				if existing != nil {
					return nil, apperrors.ErrVehiclePlateExists
				}
			}
			columns["license_plate"] = *req.LicensePlate
			// Keep the legacy mirror column in step with the plate.
			columns["plate_number"] = *req.LicensePlate
		case authz.FieldImage:
			columns["image"] = *req.Image
		case authz.FieldStatus:
			columns["status"] = *req.Status
		case authz.FieldCompanyID:
			columns["company_id"] = *req.CompanyID
		}
	}
	if len(columns) > 0 {
		if err := s.repo.Update(id, columns); err != nil {
			return nil, fmt.Errorf("failed to update vehicle: %w", err)
		}
	}

	updated, err := s.load(id)
	if err != nil {
		return nil, err
	}
	return toVehicleResponse(updated), nil
}

// Delete removes a vehicle
func (s *VehicleService) Delete(actor authz.Actor, id uuid.UUID) error {
	vehicle, err := s.load(id)
	if err != nil {
		return err
	}

	dec := s.evaluator.Evaluate(actor, authz.ActionDelete, authz.ResourceVehicle, vehicleTarget(vehicle))
	if !dec.Allowed() {
		return dec.Err()
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	return nil
}

func (s *VehicleService) load(id uuid.UUID) (*models.Vehicle, error) {
	vehicle, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	return vehicle, nil
}

func vehicleTarget(vehicle *models.Vehicle) *authz.Target {
	return &authz.Target{
		ID:        vehicle.ID,
		CompanyID: vehicle.CompanyID,
	}
}

func toVehicleResponse(vehicle *models.Vehicle) *VehicleResponse {
	return &VehicleResponse{
		ID:           vehicle.ID,
		Name:         vehicle.Name,
		Model:        vehicle.Model,
		Year:         vehicle.Year,
		LicensePlate: vehicle.LicensePlate,
		PlateNumber:  vehicle.PlateNumber,
		Image:        vehicle.Image,
		Status:       string(vehicle.Status),
		CompanyID:    vehicle.CompanyID,
		CreatedAt:    vehicle.CreatedAt,
		UpdatedAt:    vehicle.UpdatedAt,
	}
}
