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

func newUserService(t *testing.T) (*service.UserService, *mocks.MockUserRepositoryInterface) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserRepositoryInterface(ctrl)
	svc := service.NewUserService(repo, authz.NewEvaluator(), validator.New())
	return svc, repo
}

func adminActor(companyID string) authz.Actor {
	return authz.Actor{ID: uuid.New(), Role: authz.RoleAdmin, CompanyID: companyID}
}

func driverActor(companyID string) authz.Actor {
	return authz.Actor{ID: uuid.New(), Role: authz.RoleDriver, CompanyID: companyID}
}

func companyUser(companyID string) *models.User {
	return &models.User{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      "Company User",
		Username:  "user-" + uuid.NewString()[:8],
		Role:      authz.RoleDriver,
		Status:    models.UserStatusActive,
		CompanyID: companyID,
	}
}

func TestUserCreateByAdminDefaultsToOwnCompany(t *testing.T) {
	svc, repo := newUserService(t)
	actor := adminActor("acme")

	repo.EXPECT().GetByUsername("newuser").Return(nil, gorm.ErrRecordNotFound)
	repo.EXPECT().Create(gomock.Any()).DoAndReturn(func(u *models.User) error {
		assert.Equal(t, "acme", u.CompanyID)
		assert.Equal(t, authz.RoleDriver, u.Role)
		assert.True(t, u.DriverInfo.IsDriver)
		return nil
	})

	resp, err := svc.Create(actor, &service.CreateUserRequest{
		Name:     "New User",
		Username: "newuser",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "acme", resp.CompanyID)
}

func TestUserCreateByDriverDenied(t *testing.T) {
	svc, _ := newUserService(t)
	actor := driverActor("acme")

	_, err := svc.Create(actor, &service.CreateUserRequest{
		Name:     "New User",
		Username: "newuser",
		Password: "secret123",
	})
	assert.True(t, apperrors.IsAuthorization(err))
}

func TestUserCreateAdminCannotGrantAdminRole(t *testing.T) {
	svc, _ := newUserService(t)
	actor := adminActor("acme")

	_, err := svc.Create(actor, &service.CreateUserRequest{
		Name:     "New Admin",
		Username: "newadmin",
		Password: "secret123",
		Role:     authz.RoleAdmin,
	})
	assert.True(t, apperrors.IsAuthorization(err))
}

func TestUserCreateAdminCannotTargetForeignCompany(t *testing.T) {
	svc, _ := newUserService(t)
	actor := adminActor("acme")

	_, err := svc.Create(actor, &service.CreateUserRequest{
		Name:      "New User",
		Username:  "newuser",
		Password:  "secret123",
		CompanyID: "rival",
	})
	assert.True(t, apperrors.IsAuthorization(err))
}

func TestUserGetForeignCompanyDenied(t *testing.T) {
	svc, repo := newUserService(t)
	actor := adminActor("acme")
	foreign := companyUser("rival")

	repo.EXPECT().GetByID(foreign.ID).Return(foreign, nil)

	_, err := svc.GetByID(actor, foreign.ID)
	assert.True(t, apperrors.IsAuthorization(err))
}

func TestUserGetMissing(t *testing.T) {
	svc, repo := newUserService(t)
	actor := adminActor("acme")
	id := uuid.New()

	repo.EXPECT().GetByID(id).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetByID(actor, id)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserListScopedToCompanyForAdmin(t *testing.T) {
	svc, repo := newUserService(t)
	actor := adminActor("acme")

	repo.EXPECT().List(gomock.Any(), 20, 0).DoAndReturn(func(scope authz.Scope, limit, offset int) ([]models.User, int64, error) {
		assert.False(t, scope.All)
		assert.Equal(t, "acme", scope.CompanyID)
		return []models.User{*companyUser("acme")}, 1, nil
	})

	resp, err := svc.List(actor, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	assert.Len(t, resp.Users, 1)
}

func TestUserListDriversForcesDriverRole(t *testing.T) {
	svc, repo := newUserService(t)
	actor := adminActor("acme")

	repo.EXPECT().List(gomock.Any(), 20, 0).DoAndReturn(func(scope authz.Scope, limit, offset int) ([]models.User, int64, error) {
		assert.Equal(t, authz.RoleDriver, scope.RoleOnly)
		assert.Equal(t, "acme", scope.CompanyID)
		return nil, 0, nil
	})

	_, err := svc.ListDrivers(actor, 1, 20)
	require.NoError(t, err)
}

func TestUserUpdateRestrictedFieldRejectedForDriver(t *testing.T) {
	svc, repo := newUserService(t)
	target := companyUser("acme")
	actor := authz.Actor{ID: target.ID, Role: authz.RoleDriver, CompanyID: "acme"}

	repo.EXPECT().GetByID(target.ID).Return(target, nil)

	role := authz.RoleAdmin
	_, err := svc.Update(actor, target.ID, &service.UpdateUserRequest{Role: &role})
	assert.True(t, apperrors.IsAuthorization(err))
}

func TestUserUpdateSelfDropsUnpermittedFields(t *testing.T) {
	svc, repo := newUserService(t)
	target := companyUser("acme")
	actor := authz.Actor{ID: target.ID, Role: authz.RoleDriver, CompanyID: "acme"}

	repo.EXPECT().GetByID(target.ID).Return(target, nil).Times(2)
	repo.EXPECT().Update(target.ID, gomock.Any()).DoAndReturn(func(_ uuid.UUID, columns map[string]interface{}) error {
		// A driver editing themselves may rename; phone is dropped silently.
		assert.Equal(t, map[string]interface{}{"name": "New Name"}, columns)
		return nil
	})

	name := "New Name"
	phone := "+1-555-0100"
	_, err := svc.Update(actor, target.ID, &service.UpdateUserRequest{Name: &name, Phone: &phone})
	require.NoError(t, err)
}

func TestUserUpdatePasswordIsHashed(t *testing.T) {
	svc, repo := newUserService(t)
	target := companyUser("acme")
	actor := adminActor("acme")

	repo.EXPECT().GetByID(target.ID).Return(target, nil).Times(2)
	repo.EXPECT().Update(target.ID, gomock.Any()).DoAndReturn(func(_ uuid.UUID, columns map[string]interface{}) error {
		hash, ok := columns["password_hash"].(string)
		require.True(t, ok)
		assert.NotEqual(t, "new-secret", hash)
		_, raw := columns["password"]
		assert.False(t, raw)
		return nil
	})

	password := "new-secret"
	_, err := svc.Update(actor, target.ID, &service.UpdateUserRequest{Password: &password})
	require.NoError(t, err)
}

func TestUserSelfDeleteForbidden(t *testing.T) {
	svc, repo := newUserService(t)
	target := companyUser("acme")
	target.Role = authz.RoleSuperadmin
	actor := authz.Actor{ID: target.ID, Role: authz.RoleSuperadmin, CompanyID: "acme"}

	repo.EXPECT().GetByID(target.ID).Return(target, nil)

	err := svc.Delete(actor, target.ID)
	assert.True(t, apperrors.IsAuthorization(err))
}

func TestUserDeleteRequiresSuperadmin(t *testing.T) {
	svc, repo := newUserService(t)
	target := companyUser("acme")
	actor := adminActor("acme")

	repo.EXPECT().GetByID(target.ID).Return(target, nil)

	err := svc.Delete(actor, target.ID)
	assert.True(t, apperrors.IsAuthorization(err))
}

func TestUserDeleteBySuperadmin(t *testing.T) {
	svc, repo := newUserService(t)
	target := companyUser("acme")
	actor := authz.Actor{ID: uuid.New(), Role: authz.RoleSuperadmin, CompanyID: models.DefaultCompanyID}

	repo.EXPECT().GetByID(target.ID).Return(target, nil)
	repo.EXPECT().Delete(target.ID).Return(nil)

	err := svc.Delete(actor, target.ID)
	assert.NoError(t, err)
}
