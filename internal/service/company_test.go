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
	"gorm.io/gorm"
)

func newCompanyService(t *testing.T) (*service.CompanyService, *mocks.MockCompanyRepositoryInterface) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCompanyRepositoryInterface(ctrl)
	svc := service.NewCompanyService(repo, authz.NewEvaluator(), validator.New())
	return svc, repo
}

func superadminActor() authz.Actor {
	return authz.Actor{ID: uuid.New(), Role: authz.RoleSuperadmin, CompanyID: models.DefaultCompanyID}
}

func testCompany() *models.Company {
	return &models.Company{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      "Acme Towing",
		Email:     "contact@acme-towing.test",
		Status:    models.CompanyStatusActive,
	}
}

func TestCompanyCreateRequiresSuperadmin(t *testing.T) {
	svc, _ := newCompanyService(t)

	_, err := svc.Create(adminActor("acme"), &service.CreateCompanyRequest{
		Name:  "Acme Towing",
		Email: "contact@acme-towing.test",
	})
	assert.True(t, apperrors.IsAuthorization(err))
}

func TestCompanyCreateDuplicateEmail(t *testing.T) {
	svc, repo := newCompanyService(t)

	repo.EXPECT().GetByEmail("contact@acme-towing.test").Return(testCompany(), nil)

	_, err := svc.Create(superadminActor(), &service.CreateCompanyRequest{
		Name:  "Acme Towing Again",
		Email: "contact@acme-towing.test",
	})
	assert.ErrorIs(t, err, apperrors.ErrCompanyEmailExists)
}

func TestCompanyCreateBySuperadmin(t *testing.T) {
	svc, repo := newCompanyService(t)

	repo.EXPECT().GetByEmail("contact@acme-towing.test").Return(nil, gorm.ErrRecordNotFound)
	repo.EXPECT().Create(gomock.Any()).DoAndReturn(func(c *models.Company) error {
		assert.Equal(t, "Acme Towing", c.Name)
		c.ID = uuid.New()
		return nil
	})

	resp, err := svc.Create(superadminActor(), &service.CreateCompanyRequest{
		Name:  "Acme Towing",
		Email: "contact@acme-towing.test",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Towing", resp.Name)
}

func TestCompanyGetForeignDenied(t *testing.T) {
	svc, repo := newCompanyService(t)
	company := testCompany()
	actor := adminActor("some-other-company")

	repo.EXPECT().GetByID(company.ID).Return(company, nil)

	_, err := svc.GetByID(actor, company.ID)
	assert.True(t, apperrors.IsAuthorization(err))
}

func TestCompanyGetOwnCompany(t *testing.T) {
	svc, repo := newCompanyService(t)
	company := testCompany()
	actor := adminActor(company.ID.String())

	repo.EXPECT().GetByID(company.ID).Return(company, nil)

	resp, err := svc.GetByID(actor, company.ID)
	require.NoError(t, err)
	assert.Equal(t, company.ID, resp.ID)
}

func TestCompanyUpdateAdminLimitedToContactFields(t *testing.T) {
	svc, repo := newCompanyService(t)
	company := testCompany()
	actor := adminActor(company.ID.String())

	repo.EXPECT().GetByID(company.ID).Return(company, nil).Times(2)
	repo.EXPECT().Update(company.ID, gomock.Any()).DoAndReturn(func(_ uuid.UUID, columns map[string]interface{}) error {
		// Admins may fix contact details; the name belongs to superadmin.
		assert.Equal(t, "+1-555-0123", columns["phone"])
		_, hasName := columns["name"]
		assert.False(t, hasName)
		return nil
	})

	name := "Renamed Co"
	phone := "+1-555-0123"
	_, err := svc.Update(actor, company.ID, &service.UpdateCompanyRequest{Name: &name, Phone: &phone})
	require.NoError(t, err)
}

func TestCompanyUpdateDuplicateEmail(t *testing.T) {
	svc, repo := newCompanyService(t)
	company := testCompany()
	other := testCompany()
	other.Email = "other@fleet.test"

	repo.EXPECT().GetByID(company.ID).Return(company, nil)
	repo.EXPECT().GetByEmail("other@fleet.test").Return(other, nil)

	email := "other@fleet.test"
	_, err := svc.Update(superadminActor(), company.ID, &service.UpdateCompanyRequest{Email: &email})
	assert.ErrorIs(t, err, apperrors.ErrCompanyEmailExists)
}

func TestCompanyDeleteRequiresSuperadmin(t *testing.T) {
	svc, repo := newCompanyService(t)
	company := testCompany()
	actor := adminActor(company.ID.String())

	repo.EXPECT().GetByID(company.ID).Return(company, nil)

	err := svc.Delete(actor, company.ID)
	assert.True(t, apperrors.IsAuthorization(err))
}

func TestCompanyDeleteBySuperadmin(t *testing.T) {
	svc, repo := newCompanyService(t)
	company := testCompany()

	repo.EXPECT().GetByID(company.ID).Return(company, nil)
	repo.EXPECT().Delete(company.ID).Return(nil)

	err := svc.Delete(superadminActor(), company.ID)
	assert.NoError(t, err)
}
