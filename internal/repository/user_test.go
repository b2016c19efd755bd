//go:build integration
// +build integration

package repository

import (
	"testing"

	"fleet-management-backend/internal/authz"
	"fleet-management-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type UserRepositoryTestSuite struct {
	*testutils.BaseTestSuite
	repo      *UserRepository
	factories *testutils.FactorySet
}

func (s *UserRepositoryTestSuite) SetupSuite() {
	s.BaseTestSuite = testutils.SetupTestSuite(s.T())
	s.repo = NewUserRepository(s.DB)
	s.factories = testutils.NewFactorySet()
}

func (s *UserRepositoryTestSuite) TestCreateAndGetByUsername() {
	user := s.factories.User.WithUsername("dispatch1")
	s.Require().NoError(s.repo.Create(user))

	found, err := s.repo.GetByUsername("dispatch1")
	s.Require().NoError(err)
	s.Equal(user.ID, found.ID)
	s.Equal(authz.RoleDriver, found.Role)
	s.NotEmpty(found.Auth.PasswordHash)
}

func (s *UserRepositoryTestSuite) TestUsernameUniqueIndex() {
	first := s.factories.User.WithUsername("taken")
	s.Require().NoError(s.repo.Create(first))

	dup := s.factories.User.WithUsername("taken")
	s.Error(s.repo.Create(dup))
}

func (s *UserRepositoryTestSuite) TestGetByIDNotFound() {
	_, err := s.repo.GetByID(uuid.New())
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *UserRepositoryTestSuite) TestListScopedByCompany() {
	s.Require().NoError(s.repo.Create(s.factories.User.WithCompany("acme")))
	s.Require().NoError(s.repo.Create(s.factories.User.WithCompany("acme")))
	s.Require().NoError(s.repo.Create(s.factories.User.WithCompany("globex")))

	users, total, err := s.repo.List(authz.Scope{CompanyID: "acme"}, 10, 0)
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	for _, u := range users {
		s.Equal("acme", u.CompanyID)
	}

	users, total, err = s.repo.List(authz.Scope{All: true}, 10, 0)
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Len(users, 3)
}

func (s *UserRepositoryTestSuite) TestListScopedByRole() {
	admin := s.factories.User.Admin("acme")
	s.Require().NoError(s.repo.Create(admin))
	s.Require().NoError(s.repo.Create(s.factories.User.WithCompany("acme")))

	users, total, err := s.repo.List(authz.Scope{CompanyID: "acme", RoleOnly: authz.RoleDriver}, 10, 0)
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(users, 1)
	s.Equal(authz.RoleDriver, users[0].Role)
}

func (s *UserRepositoryTestSuite) TestUpdateColumnMap() {
	user := s.factories.User.Create()
	s.Require().NoError(s.repo.Create(user))

	err := s.repo.Update(user.ID, map[string]interface{}{
		"name":   "Renamed",
		"status": "onleave",
	})
	s.Require().NoError(err)

	found, err := s.repo.GetByID(user.ID)
	s.Require().NoError(err)
	s.Equal("Renamed", found.Name)
	s.Equal("onleave", string(found.Status))
	// Untouched columns survive a partial update.
	s.Equal(user.Username, found.Username)
}

func (s *UserRepositoryTestSuite) TestResetTokenLookup() {
	user := s.factories.User.Create()
	user.Auth.ResetToken = "reset-abc"
	s.Require().NoError(s.repo.Create(user))

	found, err := s.repo.GetByResetToken("reset-abc")
	s.Require().NoError(err)
	s.Equal(user.ID, found.ID)

	_, err = s.repo.GetByResetToken("nope")
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *UserRepositoryTestSuite) TestDelete() {
	user := s.factories.User.Create()
	s.Require().NoError(s.repo.Create(user))
	s.Require().NoError(s.repo.Delete(user.ID))

	_, err := s.repo.GetByID(user.ID)
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func TestUserRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryTestSuite))
}
