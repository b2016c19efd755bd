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

func newVehicleService(t *testing.T) (*service.VehicleService, *mocks.MockVehicleRepositoryInterface) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockVehicleRepositoryInterface(ctrl)
	svc := service.NewVehicleService(repo, authz.NewEvaluator(), validator.New())
	return svc, repo
}

func testVehicle(companyID string) *models.Vehicle {
	return &models.Vehicle{
		BaseModel:    models.BaseModel{ID: uuid.New()},
		Name:         "Truck 7",
		Model:        "Volvo FH16",
		Year:         2021,
		LicensePlate: "AB-1234-CD",
		Status:       models.VehicleStatusActive,
		CompanyID:    companyID,
	}
}

func TestVehicleCreateDefaultsToActorCompany(t *testing.T) {
	svc, repo := newVehicleService(t)
	actor := adminActor("acme")

	repo.EXPECT().GetByLicensePlate("AB-1234-CD").Return(nil, gorm.ErrRecordNotFound)
	repo.EXPECT().Create(gomock.Any()).DoAndReturn(func(v *models.Vehicle) error {
		assert.Equal(t, "acme", v.CompanyID)
		assert.Equal(t, models.VehicleStatusActive, v.Status)
		return nil
	})

	resp, err := svc.Create(actor, &service.CreateVehicleRequest{
		Name:         "Truck 7",
		Model:        "Volvo FH16",
		Year:         2021,
		LicensePlate: "AB-1234-CD",
	})
	require.NoError(t, err)
	assert.Equal(t, "acme", resp.CompanyID)
}

func TestVehicleCreateDuplicatePlate(t *testing.T) {
	svc, repo := newVehicleService(t)
	actor := adminActor("acme")

	repo.EXPECT().GetByLicensePlate("AB-1234-CD").Return(testVehicle("acme"), nil)

	_, err := svc.Create(actor, &service.CreateVehicleRequest{
		Name:         "Truck 7",
		Model:        "Volvo FH16",
		Year:         2021,
		LicensePlate: "AB-1234-CD",
	})
	assert.ErrorIs(t, err, apperrors.ErrVehiclePlateExists)
}

func TestVehicleCreateForeignCompanyDenied(t *testing.T) {
	svc, _ := newVehicleService(t)
	actor := adminActor("acme")

	_, err := svc.Create(actor, &service.CreateVehicleRequest{
		Name:         "Truck 7",
		Model:        "Volvo FH16",
		Year:         2021,
		LicensePlate: "AB-1234-CD",
		CompanyID:    "rival",
	})
	assert.True(t, apperrors.IsAuthorization(err))
}

func TestVehicleGetForeignCompanyDenied(t *testing.T) {
	svc, repo := newVehicleService(t)
	actor := adminActor("acme")
	vehicle := testVehicle("rival")

	repo.EXPECT().GetByID(vehicle.ID).Return(vehicle, nil)

	_, err := svc.GetByID(actor, vehicle.ID)
	assert.True(t, apperrors.IsAuthorization(err))
}

func TestVehicleUpdateCompanyChangeRequiresSuperadmin(t *testing.T) {
	svc, repo := newVehicleService(t)
	actor := adminActor("acme")
	vehicle := testVehicle("acme")

	repo.EXPECT().GetByID(vehicle.ID).Return(vehicle, nil)

	rival := "rival"
	_, err := svc.Update(actor, vehicle.ID, &service.UpdateVehicleRequest{CompanyID: &rival})
	assert.True(t, apperrors.IsAuthorization(err))
}

func TestVehicleUpdatePlateKeepsMirrorColumn(t *testing.T) {
	svc, repo := newVehicleService(t)
	actor := adminActor("acme")
	vehicle := testVehicle("acme")

	repo.EXPECT().GetByID(vehicle.ID).Return(vehicle, nil).Times(2)
	repo.EXPECT().GetByLicensePlate("ZZ-9999-XX").Return(nil, gorm.ErrRecordNotFound)
	repo.EXPECT().Update(vehicle.ID, gomock.Any()).DoAndReturn(func(_ uuid.UUID, columns map[string]interface{}) error {
		assert.Equal(t, "ZZ-9999-XX", columns["license_plate"])
		assert.Equal(t, "ZZ-9999-XX", columns["plate_number"])
		return nil
	})

	plate := "ZZ-9999-XX"
	_, err := svc.Update(actor, vehicle.ID, &service.UpdateVehicleRequest{LicensePlate: &plate})
	require.NoError(t, err)
}

func TestVehicleDeleteByCompanyAdmin(t *testing.T) {
	svc, repo := newVehicleService(t)
	actor := adminActor("acme")
	vehicle := testVehicle("acme")

	repo.EXPECT().GetByID(vehicle.ID).Return(vehicle, nil)
	repo.EXPECT().Delete(vehicle.ID).Return(nil)

	require.NoError(t, svc.Delete(actor, vehicle.ID))
}
