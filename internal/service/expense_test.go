package service_test

import (
	"testing"
	"time"

	"fleet-management-backend/internal/authz"
	"fleet-management-backend/internal/database/models"
	apperrors "fleet-management-backend/internal/errors"
	"fleet-management-backend/internal/mocks"
	"fleet-management-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newExpenseService(t *testing.T) (*service.ExpenseService, *mocks.MockExpenseRepositoryInterface) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockExpenseRepositoryInterface(ctrl)
	svc := service.NewExpenseService(repo, authz.NewEvaluator(), validator.New())
	return svc, repo
}

func testExpense(companyID string, ownerID uuid.UUID) *models.Expense {
	return &models.Expense{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      "Fuel",
		Date:      time.Now(),
		Amount:    120.50,
		CompanyID: companyID,
		UserID:    ownerID,
	}
}

func TestExpenseCreateByDriverOwnedByActor(t *testing.T) {
	svc, repo := newExpenseService(t)
	actor := driverActor("acme")

	repo.EXPECT().Create(gomock.Any()).DoAndReturn(func(e *models.Expense) error {
		assert.Equal(t, actor.ID, e.UserID)
		assert.Equal(t, "acme", e.CompanyID)
		return nil
	})

	resp, err := svc.Create(actor, &service.CreateExpenseRequest{
		Name:   "Fuel",
		Date:   time.Now(),
		Amount: 120.50,
	})
	require.NoError(t, err)
	assert.Equal(t, actor.ID, resp.UserID)
}

func TestExpenseCreateForeignCompanyDenied(t *testing.T) {
	svc, _ := newExpenseService(t)
	actor := driverActor("acme")

	_, err := svc.Create(actor, &service.CreateExpenseRequest{
		Name:      "Fuel",
		Date:      time.Now(),
		Amount:    120.50,
		CompanyID: "rival",
	})
	assert.True(t, apperrors.IsAuthorization(err))
}

func TestExpenseReadCompanyWideForDriver(t *testing.T) {
	svc, repo := newExpenseService(t)
	actor := driverActor("acme")
	expense := testExpense("acme", uuid.New()) // someone else's expense

	repo.EXPECT().GetByID(expense.ID).Return(expense, nil)

	resp, err := svc.GetByID(actor, expense.ID)
	require.NoError(t, err)
	assert.Equal(t, expense.ID, resp.ID)
}

func TestExpenseUpdateDeniedForDriver(t *testing.T) {
	svc, repo := newExpenseService(t)
	actor := driverActor("acme")
	expense := testExpense("acme", actor.ID) // even their own

	repo.EXPECT().GetByID(expense.ID).Return(expense, nil)

	amount := 99.0
	_, err := svc.Update(actor, expense.ID, &service.UpdateExpenseRequest{Amount: &amount})
	assert.True(t, apperrors.IsAuthorization(err))
}

func TestExpenseUpdateByAdmin(t *testing.T) {
	svc, repo := newExpenseService(t)
	actor := adminActor("acme")
	expense := testExpense("acme", uuid.New())

	repo.EXPECT().GetByID(expense.ID).Return(expense, nil).Times(2)
	repo.EXPECT().Update(expense.ID, gomock.Any()).DoAndReturn(func(_ uuid.UUID, columns map[string]interface{}) error {
		assert.Equal(t, 99.0, columns["amount"])
		return nil
	})

	amount := 99.0
	_, err := svc.Update(actor, expense.ID, &service.UpdateExpenseRequest{Amount: &amount})
	require.NoError(t, err)
}

func TestExpenseDeleteRequiresSuperadmin(t *testing.T) {
	svc, repo := newExpenseService(t)
	actor := adminActor("acme")
	expense := testExpense("acme", uuid.New())

	repo.EXPECT().GetByID(expense.ID).Return(expense, nil)

	err := svc.Delete(actor, expense.ID)
	assert.True(t, apperrors.IsAuthorization(err))
}
