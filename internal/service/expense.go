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

// ExpenseService handles business logic for expenses
type ExpenseService struct {
	repo      repository.ExpenseRepositoryInterface
	evaluator *authz.Evaluator
	validator *validator.Validate
}

// NewExpenseService creates a new expense service
func NewExpenseService(repo repository.ExpenseRepositoryInterface, evaluator *authz.Evaluator, validator *validator.Validate) *ExpenseService {
	return &ExpenseService{
		repo:      repo,
		evaluator: evaluator,
		validator: validator,
	}
}

// CreateExpenseRequest represents the request to record an expense
type CreateExpenseRequest struct {
	Name        string    `json:"name" validate:"required,max=100"`
	Description string    `json:"description" validate:"omitempty,max=500"`
	Date        time.Time `json:"date" validate:"required"`
	Amount      float64   `json:"amount" validate:"required,min=0"`
	CompanyID   string    `json:"company_id" validate:"omitempty,max=64"`
}

// UpdateExpenseRequest represents a partial update to an expense
type UpdateExpenseRequest struct {
	Name        *string    `json:"name" validate:"omitempty,max=100"`
	Description *string    `json:"description" validate:"omitempty,max=500"`
	Date        *time.Time `json:"date"`
	Amount      *float64   `json:"amount" validate:"omitempty,min=0"`
	CompanyID   *string    `json:"company_id" validate:"omitempty,max=64"`
}

func (r *UpdateExpenseRequest) updates() map[string]interface{} {
	u := map[string]interface{}{}
	if r.Name != nil {
		u[authz.FieldName] = *r.Name
	}
	if r.Description != nil {
		u[authz.FieldDescription] = *r.Description
	}
	if r.Date != nil {
		u[authz.FieldDate] = *r.Date
	}
	if r.Amount != nil {
		u[authz.FieldAmount] = *r.Amount
	}
	if r.CompanyID != nil {
		u[authz.FieldCompanyID] = *r.CompanyID
	}
	return u
}

// ExpenseResponse represents the response for expense operations
type ExpenseResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	Amount      float64   `json:"amount"`
	CompanyID   string    `json:"company_id"`
	UserID      uuid.UUID `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ExpenseListResponse represents a paginated list of expenses
type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// Create records a new expense owned by the acting user
func (s *ExpenseService) Create(actor authz.Actor, req *CreateExpenseRequest) (*ExpenseResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	companyID := req.CompanyID
	if companyID == "" {
		companyID = actor.CompanyID
	}
	dec := s.evaluator.EvaluateCreate(actor, authz.ResourceExpense, authz.CreateAttrs{CompanyID: companyID})
	if !dec.Allowed() {
		return nil, dec.Err()
	}

	expense := &models.Expense{
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
		Amount:      req.Amount,
		CompanyID:   companyID,
		UserID:      actor.ID,
	}
	if err := s.repo.Create(expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	return toExpenseResponse(expense), nil
}

// GetByID retrieves an expense visible to the actor
func (s *ExpenseService) GetByID(actor authz.Actor, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.load(id)
	if err != nil {
		return nil, err
	}

	dec := s.evaluator.Evaluate(actor, authz.ActionRead, authz.ResourceExpense, expenseTarget(expense))
	if !dec.Allowed() {
		return nil, dec.Err()
	}
	return toExpenseResponse(expense), nil
}

// List retrieves expenses within the actor's visibility scope. Expense
// visibility is company-wide for every role.
func (s *ExpenseService) List(actor authz.Actor, page, pageSize int) (*ExpenseListResponse, error) {
	page, pageSize = normalizePage(page, pageSize)

	scope := s.evaluator.ListScope(actor, authz.ResourceExpense)
	expenses, total, err := s.repo.List(scope, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = *toExpenseResponse(&expenses[i])
	}
	return &ExpenseListResponse{Expenses: responses, Total: total, Page: page, PageSize: pageSize}, nil
}

// Update applies a partial update to an expense, limited to the fields the
// actor may change
func (s *ExpenseService) Update(actor authz.Actor, id uuid.UUID, req *UpdateExpenseRequest) (*ExpenseResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	expense, err := s.load(id)
	if err != nil {
		return nil, err
	}

	dec := s.evaluator.EvaluateUpdate(actor, authz.ResourceExpense, expenseTarget(expense), req.updates())
	if !dec.Allowed() {
		return nil, dec.Err()
	}

	columns := map[string]interface{}{}
	for _, field := range dec.Fields {
		switch field {
		case authz.FieldName:
			columns["name"] = *req.Name
		case authz.FieldDescription:
			columns["description"] = *req.Description
		case authz.FieldDate:
			columns["date"] = *req.Date
		case authz.FieldAmount:
			columns["amount"] = *req.Amount
		case authz.FieldCompanyID:
			columns["company_id"] = *req.CompanyID
		}
	}
	if len(columns) > 0 {
		if err := s.repo.Update(id, columns); err != nil {
			return nil, fmt.Errorf("failed to update expense: %w", err)
		}
	}

	updated, err := s.load(id)
	if err != nil {
		return nil, err
	}
	return toExpenseResponse(updated), nil
}

// Delete removes an expense
func (s *ExpenseService) Delete(actor authz.Actor, id uuid.UUID) error {
	expense, err := s.load(id)
	if err != nil {
		return err
	}

	dec := s.evaluator.Evaluate(actor, authz.ActionDelete, authz.ResourceExpense, expenseTarget(expense))
	if !dec.Allowed() {
		return dec.Err()
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}

func (s *ExpenseService) load(id uuid.UUID) (*models.Expense, error) {
	expense, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return expense, nil
}

func expenseTarget(expense *models.Expense) *authz.Target {
	return &authz.Target{
		ID:        expense.ID,
		CompanyID: expense.CompanyID,
		OwnerID:   expense.UserID,
	}
}

func toExpenseResponse(expense *models.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:          expense.ID,
		Name:        expense.Name,
		Description: expense.Description,
		Date:        expense.Date,
		Amount:      expense.Amount,
		CompanyID:   expense.CompanyID,
		UserID:      expense.UserID,
		CreatedAt:   expense.CreatedAt,
		UpdatedAt:   expense.UpdatedAt,
	}
}
