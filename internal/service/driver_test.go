package service_test

import (
	"testing"

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

func newDriverService(t *testing.T) (*service.DriverService, *mocks.MockDriverRepositoryInterface) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockDriverRepositoryInterface(ctrl)
	svc := service.NewDriverService(repo, authz.NewEvaluator(), validator.New())
	return svc, repo
}

func testRosterDriver(companyID string) *models.Driver {
	return &models.Driver{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      "Jonas Petraitis",
		Phone:     "+37060000000",
		License:   "B-123456",
		Status:    models.DriverStatusActive,
		CompanyID: companyID,
	}
}

func TestDriverCreateDefaultsAvatarAndCompany(t *testing.T) {
	svc, repo := newDriverService(t)
	actor := adminActor("acme")

	repo.EXPECT().Create(gomock.Any()).DoAndReturn(func(d *models.Driver) error {
		assert.Equal(t, "acme", d.CompanyID)
		assert.Equal(t, models.DefaultDriverAvatar, d.Avatar)
		return nil
	})

	resp, err := svc.Create(actor, &service.CreateDriverRequest{
		Name:    "Jonas Petraitis",
		Phone:   "+37060000000",
		License: "B-123456",
	})
	require.NoError(t, err)
	assert.Equal(t, "acme", resp.CompanyID)
}

func TestDriverCreateForeignCompanyDenied(t *testing.T) {
	svc, _ := newDriverService(t)
	actor := adminActor("acme")

	_, err := svc.Create(actor, &service.CreateDriverRequest{
		Name:      "Jonas Petraitis",
		Phone:     "+37060000000",
		License:   "B-123456",
		CompanyID: "rival",
	})
	assert.True(t, apperrors.IsAuthorization(err))
}

func TestDriverGetForeignCompanyDenied(t *testing.T) {
	svc, repo := newDriverService(t)
	actor := driverActor("acme")
	roster := testRosterDriver("rival")

	repo.EXPECT().GetByID(roster.ID).Return(roster, nil)

	_, err := svc.GetByID(actor, roster.ID)
	assert.True(t, apperrors.IsAuthorization(err))
}

func TestDriverUpdateStatusByAdmin(t *testing.T) {
	svc, repo := newDriverService(t)
	actor := adminActor("acme")
	roster := testRosterDriver("acme")

	repo.EXPECT().GetByID(roster.ID).Return(roster, nil).Times(2)
	repo.EXPECT().Update(roster.ID, gomock.Any()).DoAndReturn(func(_ uuid.UUID, columns map[string]interface{}) error {
		assert.Equal(t, "onleave", columns["status"])
		return nil
	})

	status := "onleave"
	_, err := svc.Update(actor, roster.ID, &service.UpdateDriverRequest{Status: &status})
	require.NoError(t, err)
}

func TestDriverUpdateCompanyChangeRequiresSuperadmin(t *testing.T) {
	svc, repo := newDriverService(t)
	actor := adminActor("acme")
	roster := testRosterDriver("acme")

	repo.EXPECT().GetByID(roster.ID).Return(roster, nil)

	rival := "rival"
	_, err := svc.Update(actor, roster.ID, &service.UpdateDriverRequest{CompanyID: &rival})
	assert.True(t, apperrors.IsAuthorization(err))
}

func TestDriverListScopedToCompany(t *testing.T) {
	svc, repo := newDriverService(t)
	actor := adminActor("acme")

	repo.EXPECT().List(gomock.Any(), 20, 0).DoAndReturn(func(scope authz.Scope, _, _ int) ([]models.Driver, int64, error) {
		assert.False(t, scope.All)
		assert.Equal(t, "acme", scope.CompanyID)
		return []models.Driver{*testRosterDriver("acme")}, 1, nil
	})

	resp, err := svc.List(actor, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
}

func TestDriverDeleteForeignCompanyDenied(t *testing.T) {
	svc, repo := newDriverService(t)
	actor := adminActor("acme")
	roster := testRosterDriver("rival")

	repo.EXPECT().GetByID(roster.ID).Return(roster, nil)

	err := svc.Delete(actor, roster.ID)
	assert.True(t, apperrors.IsAuthorization(err))
}
