//go:build integration
// +build integration

package repository

import (
	"testing"

	"fleet-management-backend/internal/authz"
	"fleet-management-backend/internal/database/models"
	"fleet-management-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type TowRepositoryTestSuite struct {
	*testutils.BaseTestSuite
	repo      *TowRepository
	factories *testutils.FactorySet
}

func (s *TowRepositoryTestSuite) SetupSuite() {
	s.BaseTestSuite = testutils.SetupTestSuite(s.T())
	s.repo = NewTowRepository(s.DB)
	s.factories = testutils.NewFactorySet()
}

func (s *TowRepositoryTestSuite) TestImagesRoundTrip() {
	tow := s.factories.Tow.Create()
	tow.Images = models.StringArray{"front.jpg", "rear.jpg"}
	s.Require().NoError(s.repo.Create(tow))

	found, err := s.repo.GetByID(tow.ID)
	s.Require().NoError(err)
	s.Equal(models.StringArray{"front.jpg", "rear.jpg"}, found.Images)
}

func (s *TowRepositoryTestSuite) TestListOwnerScope() {
	driverID := uuid.New()

	mine := s.factories.Tow.WithCompany("acme")
	mine.UserID = driverID
	s.Require().NoError(s.repo.Create(mine))

	peer := s.factories.Tow.WithCompany("acme")
	s.Require().NoError(s.repo.Create(peer))

	foreign := s.factories.Tow.WithCompany("globex")
	foreign.UserID = driverID
	s.Require().NoError(s.repo.Create(foreign))

	// Driver scope: same tenant AND own records only.
	tows, total, err := s.repo.List(authz.Scope{CompanyID: "acme", OwnerID: &driverID}, 10, 0)
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(tows, 1)
	s.Equal(mine.ID, tows[0].ID)

	// Admin scope: whole tenant.
	_, total, err = s.repo.List(authz.Scope{CompanyID: "acme"}, 10, 0)
	s.Require().NoError(err)
	s.Equal(int64(2), total)

	// Global scope.
	_, total, err = s.repo.List(authz.Scope{All: true}, 10, 0)
	s.Require().NoError(err)
	s.Equal(int64(3), total)
}

func (s *TowRepositoryTestSuite) TestUpdateColumnMap() {
	tow := s.factories.Tow.Create()
	s.Require().NoError(s.repo.Create(tow))

	err := s.repo.Update(tow.ID, map[string]interface{}{
		"distance":  99.9,
		"tow_truck": "Truck 2",
	})
	s.Require().NoError(err)

	found, err := s.repo.GetByID(tow.ID)
	s.Require().NoError(err)
	s.Equal(99.9, found.Distance)
	s.Equal("Truck 2", found.TowTruck)
}

func TestTowRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TowRepositoryTestSuite))
}
