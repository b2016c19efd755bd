package service_test

import (
	"testing"
	"time"

	"fleet-management-backend/internal/auth"
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

type authTestDeps struct {
	users  *mocks.MockUserRepositoryInterface
	tokens *mocks.MockTokenRepositoryInterface
	mailer *mocks.MockMailerInterface
	jwt    *auth.Service
	svc    *service.AuthService
}

func newAuthTestDeps(t *testing.T) *authTestDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	jwtSvc, err := auth.NewService("test-access-secret", "test-refresh-secret", "15m", "720h")
	require.NoError(t, err)

	d := &authTestDeps{
		users:  mocks.NewMockUserRepositoryInterface(ctrl),
		tokens: mocks.NewMockTokenRepositoryInterface(ctrl),
		mailer: mocks.NewMockMailerInterface(ctrl),
		jwt:    jwtSvc,
	}
	d.svc = service.NewAuthService(d.users, d.tokens, d.jwt, authz.NewEvaluator(), d.mailer, validator.New())
	return d
}

func activeUser(t *testing.T, username, password string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &models.User{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      "Test User",
		Username:  username,
		Role:      authz.RoleDriver,
		Status:    models.UserStatusActive,
		CompanyID: "acme",
		Auth:      models.UserAuth{PasswordHash: hash},
	}
}

func TestRegisterCreatesDriverInActorCompany(t *testing.T) {
	d := newAuthTestDeps(t)
	actor := adminActor("acme")

	d.users.EXPECT().GetByUsername("newdriver").Return(nil, gorm.ErrRecordNotFound)
	d.users.EXPECT().Create(gomock.Any()).DoAndReturn(func(u *models.User) error {
		assert.Equal(t, authz.RoleDriver, u.Role)
		assert.Equal(t, "acme", u.CompanyID)
		assert.NotEmpty(t, u.Auth.PasswordHash)
		assert.NotEqual(t, "secret123", u.Auth.PasswordHash)
		u.ID = uuid.New()
		return nil
	})

	resp, err := d.svc.Register(actor, &service.RegisterRequest{
		Name:     "New Driver",
		Username: "newdriver",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "newdriver", resp.Username)
	assert.Equal(t, authz.RoleDriver, resp.Role)
}

func TestRegisterByDriverDenied(t *testing.T) {
	d := newAuthTestDeps(t)

	// No repository expectations: the denial must precede any lookup or write.
	_, err := d.svc.Register(driverActor("acme"), &service.RegisterRequest{
		Name:     "Intruder",
		Username: "intruder",
		Password: "secret123",
	})
	assert.True(t, apperrors.IsAuthorization(err))
}

func TestRegisterWithoutActorDenied(t *testing.T) {
	d := newAuthTestDeps(t)

	_, err := d.svc.Register(authz.Actor{}, &service.RegisterRequest{
		Name:     "Intruder",
		Username: "intruder",
		Password: "secret123",
	})
	assert.True(t, apperrors.IsAuthorization(err))
}

func TestRegisterUsernameConflictPersistsNothing(t *testing.T) {
	d := newAuthTestDeps(t)

	// No Create expectation: a conflict must be detected before any write.
	d.users.EXPECT().GetByUsername("taken").Return(activeUser(t, "taken", "whatever1"), nil)

	_, err := d.svc.Register(adminActor("acme"), &service.RegisterRequest{
		Name:     "Someone",
		Username: "taken",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, apperrors.ErrUsernameExists)
}

func TestLoginSuccessRecordsSession(t *testing.T) {
	d := newAuthTestDeps(t)
	user := activeUser(t, "driver1", "secret123")

	d.users.EXPECT().GetByUsername("driver1").Return(user, nil)
	d.tokens.EXPECT().Create(gomock.Any()).DoAndReturn(func(tok *models.Token) error {
		assert.Equal(t, user.ID, tok.UserID)
		assert.Equal(t, "10.0.0.1", tok.IP)
		assert.NotEmpty(t, tok.RefreshToken)
		return nil
	})

	resp, err := d.svc.Login(&service.LoginRequest{Username: "driver1", Password: "secret123"}, "10.0.0.1", "test-agent")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, user.ID, resp.User.ID)

	claims, err := d.jwt.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, authz.RoleDriver, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	d := newAuthTestDeps(t)
	user := activeUser(t, "driver1", "secret123")

	d.users.EXPECT().GetByUsername("driver1").Return(user, nil)

	_, err := d.svc.Login(&service.LoginRequest{Username: "driver1", Password: "wrong-pass"}, "", "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownUsername(t *testing.T) {
	d := newAuthTestDeps(t)

	d.users.EXPECT().GetByUsername("ghost").Return(nil, gorm.ErrRecordNotFound)

	_, err := d.svc.Login(&service.LoginRequest{Username: "ghost", Password: "secret123"}, "", "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	d := newAuthTestDeps(t)
	user := activeUser(t, "driver1", "secret123")
	user.Status = models.UserStatusInactive

	d.users.EXPECT().GetByUsername("driver1").Return(user, nil)

	_, err := d.svc.Login(&service.LoginRequest{Username: "driver1", Password: "secret123"}, "", "")
	assert.ErrorIs(t, err, apperrors.ErrAccountInactive)
}

func TestRefreshRotatesSession(t *testing.T) {
	d := newAuthTestDeps(t)
	user := activeUser(t, "driver1", "secret123")

	_, refresh, err := d.jwt.GenerateTokenPair(user.ID, user.Username, user.Role, user.CompanyID)
	require.NoError(t, err)

	d.tokens.EXPECT().GetByRefreshToken(refresh).Return(&models.Token{UserID: user.ID, RefreshToken: refresh}, nil)
	d.users.EXPECT().GetByID(user.ID).Return(user, nil)
	d.tokens.EXPECT().DeleteByRefreshToken(refresh).Return(nil)
	d.tokens.EXPECT().Create(gomock.Any()).Return(nil)

	resp, err := d.svc.Refresh(refresh, "10.0.0.2", "test-agent")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
}

func TestRefreshRevokedTokenRejected(t *testing.T) {
	d := newAuthTestDeps(t)
	user := activeUser(t, "driver1", "secret123")

	_, refresh, err := d.jwt.GenerateTokenPair(user.ID, user.Username, user.Role, user.CompanyID)
	require.NoError(t, err)

	// Logout deleted the session row; a structurally valid token is not enough.
	d.tokens.EXPECT().GetByRefreshToken(refresh).Return(nil, gorm.ErrRecordNotFound)

	_, err = d.svc.Refresh(refresh, "", "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestRefreshGarbageTokenRejected(t *testing.T) {
	d := newAuthTestDeps(t)

	_, err := d.svc.Refresh("not-a-jwt", "", "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestLogoutEmptyToken(t *testing.T) {
	d := newAuthTestDeps(t)

	err := d.svc.Logout("")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestForgotPasswordUnknownUsernameSucceedsSilently(t *testing.T) {
	d := newAuthTestDeps(t)

	// No Update and no mail: the response must not reveal whether the
	// account exists.
	d.users.EXPECT().GetByUsername("ghost").Return(nil, gorm.ErrRecordNotFound)

	err := d.svc.ForgotPassword("ghost")
	assert.NoError(t, err)
}

func TestForgotPasswordStoresTokenAndMails(t *testing.T) {
	d := newAuthTestDeps(t)
	user := activeUser(t, "driver1", "secret123")

	var storedToken string
	d.users.EXPECT().GetByUsername("driver1").Return(user, nil)
	d.users.EXPECT().Update(user.ID, gomock.Any()).DoAndReturn(func(_ uuid.UUID, updates map[string]interface{}) error {
		tok, ok := updates["reset_token"].(string)
		require.True(t, ok)
		assert.Len(t, tok, 64)
		storedToken = tok
		expiry, ok := updates["reset_token_expiry"].(time.Time)
		require.True(t, ok)
		assert.True(t, expiry.After(time.Now()))
		return nil
	})
	d.mailer.EXPECT().SendPasswordReset("driver1", gomock.Any()).DoAndReturn(func(_, tok string) error {
		assert.Equal(t, storedToken, tok)
		return nil
	})

	err := d.svc.ForgotPassword("driver1")
	assert.NoError(t, err)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	d := newAuthTestDeps(t)
	user := activeUser(t, "driver1", "old-secret")
	expired := time.Now().Add(-time.Minute)
	user.Auth.ResetToken = "deadbeef"
	user.Auth.ResetTokenExpiry = &expired

	d.users.EXPECT().GetByResetToken("deadbeef").Return(user, nil)

	err := d.svc.ResetPassword("deadbeef", "new-secret")
	assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)
}

func TestResetPasswordRevokesSessions(t *testing.T) {
	d := newAuthTestDeps(t)
	user := activeUser(t, "driver1", "old-secret")
	expiry := time.Now().Add(30 * time.Minute)
	user.Auth.ResetToken = "deadbeef"
	user.Auth.ResetTokenExpiry = &expiry

	d.users.EXPECT().GetByResetToken("deadbeef").Return(user, nil)
	d.users.EXPECT().Update(user.ID, gomock.Any()).DoAndReturn(func(_ uuid.UUID, updates map[string]interface{}) error {
		assert.NotEmpty(t, updates["password_hash"])
		assert.Equal(t, "", updates["reset_token"])
		return nil
	})
	d.tokens.EXPECT().DeleteByUserID(user.ID).Return(nil)

	err := d.svc.ResetPassword("deadbeef", "new-secret")
	assert.NoError(t, err)
}

func TestResetPasswordShortPassword(t *testing.T) {
	d := newAuthTestDeps(t)

	err := d.svc.ResetPassword("deadbeef", "abc")
	assert.True(t, apperrors.IsValidation(err))
}
