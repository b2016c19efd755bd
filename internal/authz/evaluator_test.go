package authz

import (
	"testing"

	apperrors "fleet-management-backend/internal/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func superadmin() Actor {
	return Actor{ID: uuid.New(), Role: RoleSuperadmin, CompanyID: "default"}
}

func adminOf(company string) Actor {
	return Actor{ID: uuid.New(), Role: RoleAdmin, CompanyID: company}
}

func driverOf(company string) Actor {
	return Actor{ID: uuid.New(), Role: RoleDriver, CompanyID: company}
}

func TestEvaluateIsPure(t *testing.T) {
	e := NewEvaluator()
	actor := adminOf("c1")
	target := &Target{ID: uuid.New(), CompanyID: "c1", Role: RoleDriver}

	first := e.Evaluate(actor, ActionUpdate, ResourceUser, target)
	for i := 0; i < 100; i++ {
		again := e.Evaluate(actor, ActionUpdate, ResourceUser, target)
		assert.Equal(t, first.Effect, again.Effect)
		assert.Equal(t, first.Reason, again.Reason)
		assert.Equal(t, first.Fields, again.Fields)
	}
}

func TestUnmappedActionDeniedWithOwnReason(t *testing.T) {
	e := NewEvaluator()
	target := &Target{ID: uuid.New(), CompanyID: "c1"}

	dec := e.Evaluate(superadmin(), Action("approve"), ResourceVehicle, target)
	assert.False(t, dec.Allowed())
	assert.Equal(t, reasonUnknownAction, dec.Reason)
}

func TestTenantIsolation(t *testing.T) {
	e := NewEvaluator()
	resources := []Resource{ResourceUser, ResourceCompany, ResourceVehicle, ResourceDriver, ResourceTow, ResourceExpense}
	actions := []Action{ActionRead, ActionUpdate, ActionDelete}

	for _, actor := range []Actor{adminOf("c1"), driverOf("c1")} {
		for _, resource := range resources {
			for _, action := range actions {
				target := &Target{ID: uuid.New(), CompanyID: "c2", OwnerID: uuid.New(), Role: RoleDriver}
				dec := e.Evaluate(actor, action, resource, target)
				assert.False(t, dec.Allowed(),
					"%s %s on %s in foreign company must be denied", actor.Role, action, resource)
				assert.True(t, apperrors.IsAuthorization(dec.Err()) || apperrors.IsNotFound(dec.Err()),
					"denial must map to forbidden or not-found")
			}
		}
	}
}

func TestSuperadminGlobalScope(t *testing.T) {
	e := NewEvaluator()
	actor := superadmin()

	for _, resource := range []Resource{ResourceUser, ResourceCompany, ResourceVehicle, ResourceDriver, ResourceTow, ResourceExpense} {
		target := &Target{ID: uuid.New(), CompanyID: "c2", OwnerID: uuid.New(), Role: RoleDriver}
		dec := e.Evaluate(actor, ActionUpdate, resource, target)
		assert.True(t, dec.Allowed(), "superadmin update on %s must be allowed", resource)
	}
}

func TestSelfDeleteAlwaysForbidden(t *testing.T) {
	e := NewEvaluator()

	for _, actor := range []Actor{superadmin(), adminOf("c1"), driverOf("c1")} {
		target := &Target{ID: actor.ID, CompanyID: actor.CompanyID, Role: actor.Role}
		dec := e.Evaluate(actor, ActionDelete, ResourceUser, target)
		assert.False(t, dec.Allowed(), "%s must not delete itself", actor.Role)
	}
}

func TestUserDelete(t *testing.T) {
	e := NewEvaluator()
	target := &Target{ID: uuid.New(), CompanyID: "c1", Role: RoleDriver}

	assert.True(t, e.Evaluate(superadmin(), ActionDelete, ResourceUser, target).Allowed())
	assert.False(t, e.Evaluate(adminOf("c1"), ActionDelete, ResourceUser, target).Allowed())
	assert.False(t, e.Evaluate(driverOf("c1"), ActionDelete, ResourceUser, target).Allowed())
}

func TestAdminCannotEditElevatedAccounts(t *testing.T) {
	e := NewEvaluator()
	actor := adminOf("c1")

	for _, role := range []Role{RoleAdmin, RoleSuperadmin} {
		target := &Target{ID: uuid.New(), CompanyID: "c1", Role: role}
		dec := e.Evaluate(actor, ActionUpdate, ResourceUser, target)
		require.False(t, dec.Allowed())
		assert.Contains(t, dec.Reason, "only superadmin may edit admin or superadmin accounts")
	}
}

func TestRoleEscalationGuard(t *testing.T) {
	e := NewEvaluator()
	actor := adminOf("c1")
	target := &Target{ID: uuid.New(), CompanyID: "c1", Role: RoleDriver}

	for _, escalated := range []Role{RoleAdmin, RoleSuperadmin} {
		dec := e.EvaluateUpdate(actor, ResourceUser, target, map[string]interface{}{
			"role": string(escalated),
		})
		assert.False(t, dec.Allowed(), "admin must not grant role %s", escalated)
	}

	// Demotion to driver stays allowed for admins.
	dec := e.EvaluateUpdate(actor, ResourceUser, target, map[string]interface{}{"role": "driver"})
	require.True(t, dec.Allowed())
	assert.Contains(t, dec.Fields, FieldRole)

	// Creation follows the same rule.
	for _, escalated := range []Role{RoleAdmin, RoleSuperadmin} {
		dec := e.EvaluateCreate(actor, ResourceUser, CreateAttrs{Role: escalated, CompanyID: "c1"})
		assert.False(t, dec.Allowed())
	}
	assert.True(t, e.EvaluateCreate(superadmin(), ResourceUser, CreateAttrs{Role: RoleAdmin, CompanyID: "c2"}).Allowed())
}

func TestUserCreateGates(t *testing.T) {
	e := NewEvaluator()

	assert.False(t, e.EvaluateCreate(driverOf("c1"), ResourceUser, CreateAttrs{Role: RoleDriver}).Allowed(),
		"drivers cannot create accounts")
	assert.True(t, e.EvaluateCreate(adminOf("c1"), ResourceUser, CreateAttrs{Role: RoleDriver, CompanyID: "c1"}).Allowed())
	assert.False(t, e.EvaluateCreate(adminOf("c1"), ResourceUser, CreateAttrs{Role: RoleDriver, CompanyID: "c2"}).Allowed(),
		"admins cannot assign users to a foreign company")
	assert.True(t, e.EvaluateCreate(superadmin(), ResourceUser, CreateAttrs{Role: RoleDriver, CompanyID: "c2"}).Allowed())
}

func TestCompanyPolicies(t *testing.T) {
	e := NewEvaluator()
	own := &Target{ID: uuid.New(), CompanyID: "c1"}
	foreign := &Target{ID: uuid.New(), CompanyID: "c2"}

	t.Run("create is superadmin only", func(t *testing.T) {
		assert.True(t, e.EvaluateCreate(superadmin(), ResourceCompany, CreateAttrs{}).Allowed())
		assert.False(t, e.EvaluateCreate(adminOf("c1"), ResourceCompany, CreateAttrs{}).Allowed())
		assert.False(t, e.EvaluateCreate(driverOf("c1"), ResourceCompany, CreateAttrs{}).Allowed())
	})

	t.Run("read own company only", func(t *testing.T) {
		assert.True(t, e.Evaluate(adminOf("c1"), ActionRead, ResourceCompany, own).Allowed())
		assert.True(t, e.Evaluate(driverOf("c1"), ActionRead, ResourceCompany, own).Allowed())
		assert.False(t, e.Evaluate(adminOf("c1"), ActionRead, ResourceCompany, foreign).Allowed())
		assert.True(t, e.Evaluate(superadmin(), ActionRead, ResourceCompany, foreign).Allowed())
	})

	t.Run("admin update is limited to contact fields", func(t *testing.T) {
		dec := e.EvaluateUpdate(adminOf("c1"), ResourceCompany, own, map[string]interface{}{
			"phone":   "05551112233",
			"address": "New Street 1",
			"email":   "fleet@example.com",
			"name":    "Renamed Fleet",
			"status":  "inactive",
		})
		require.True(t, dec.Allowed())
		assert.ElementsMatch(t, []string{"address", "email", "phone"}, dec.Fields)
	})

	t.Run("driver cannot update", func(t *testing.T) {
		dec := e.EvaluateUpdate(driverOf("c1"), ResourceCompany, own, map[string]interface{}{"phone": "1"})
		assert.False(t, dec.Allowed())
	})

	t.Run("delete is superadmin only", func(t *testing.T) {
		assert.False(t, e.Evaluate(adminOf("c1"), ActionDelete, ResourceCompany, own).Allowed())
		assert.True(t, e.Evaluate(superadmin(), ActionDelete, ResourceCompany, foreign).Allowed())
	})
}

func TestTowDriverOwnership(t *testing.T) {
	e := NewEvaluator()
	d1 := driverOf("c1")
	d2 := driverOf("c1")
	admin := adminOf("c1")

	record := &Target{ID: uuid.New(), CompanyID: "c1", OwnerID: d2.ID}

	// Driver D1 reading a tow owned by D2 in the same company is forbidden,
	// while the company admin reading the same record is allowed.
	dec := e.Evaluate(d1, ActionRead, ResourceTow, record)
	require.False(t, dec.Allowed())
	assert.Contains(t, dec.Reason, "own tow records")

	assert.True(t, e.Evaluate(admin, ActionRead, ResourceTow, record).Allowed())
	assert.True(t, e.Evaluate(d2, ActionRead, ResourceTow, record).Allowed())

	// Same ownership rule for updates.
	assert.False(t, e.Evaluate(d1, ActionUpdate, ResourceTow, record).Allowed())
	assert.True(t, e.Evaluate(d2, ActionUpdate, ResourceTow, record).Allowed())

	// Deletes are reserved for superadmin.
	assert.False(t, e.Evaluate(admin, ActionDelete, ResourceTow, record).Allowed())
	assert.False(t, e.Evaluate(d2, ActionDelete, ResourceTow, record).Allowed())
	assert.True(t, e.Evaluate(superadmin(), ActionDelete, ResourceTow, record).Allowed())
}

func TestExpensePolicies(t *testing.T) {
	e := NewEvaluator()
	record := &Target{ID: uuid.New(), CompanyID: "c1", OwnerID: uuid.New()}

	// No per-user restriction on reads within the company.
	assert.True(t, e.Evaluate(driverOf("c1"), ActionRead, ResourceExpense, record).Allowed())
	assert.True(t, e.Evaluate(adminOf("c1"), ActionRead, ResourceExpense, record).Allowed())

	// Drivers never update expenses, not even their own.
	own := &Target{ID: uuid.New(), CompanyID: "c1", OwnerID: uuid.New()}
	d := driverOf("c1")
	own.OwnerID = d.ID
	dec := e.Evaluate(d, ActionUpdate, ResourceExpense, own)
	require.False(t, dec.Allowed())
	assert.Contains(t, dec.Reason, "admin or superadmin")

	assert.True(t, e.Evaluate(adminOf("c1"), ActionUpdate, ResourceExpense, record).Allowed())
	assert.False(t, e.Evaluate(adminOf("c1"), ActionDelete, ResourceExpense, record).Allowed())
	assert.True(t, e.Evaluate(superadmin(), ActionDelete, ResourceExpense, record).Allowed())
}

func TestDriverPeerVisibility(t *testing.T) {
	e := NewEvaluator()
	d := driverOf("c1")

	peer := &Target{ID: uuid.New(), CompanyID: "c1", Role: RoleDriver}
	boss := &Target{ID: uuid.New(), CompanyID: "c1", Role: RoleAdmin}

	assert.True(t, e.Evaluate(d, ActionRead, ResourceUser, peer).Allowed())
	assert.False(t, e.Evaluate(d, ActionRead, ResourceUser, boss).Allowed())

	self := &Target{ID: d.ID, CompanyID: "c1", Role: RoleDriver}
	assert.True(t, e.Evaluate(d, ActionRead, ResourceUser, self).Allowed())
}

func TestListScope(t *testing.T) {
	e := NewEvaluator()

	t.Run("superadmin sees everything", func(t *testing.T) {
		scope := e.ListScope(superadmin(), ResourceTow)
		assert.True(t, scope.All)
		assert.Empty(t, scope.CompanyID)
	})

	t.Run("admin is company scoped", func(t *testing.T) {
		scope := e.ListScope(adminOf("c1"), ResourceTow)
		assert.False(t, scope.All)
		assert.Equal(t, "c1", scope.CompanyID)
		assert.Nil(t, scope.OwnerID)
	})

	t.Run("driver tow listing is owner scoped", func(t *testing.T) {
		d := driverOf("c1")
		scope := e.ListScope(d, ResourceTow)
		require.NotNil(t, scope.OwnerID)
		assert.Equal(t, d.ID, *scope.OwnerID)
		assert.Equal(t, "c1", scope.CompanyID)
	})

	t.Run("driver user listing is peer scoped", func(t *testing.T) {
		scope := e.ListScope(driverOf("c1"), ResourceUser)
		assert.Equal(t, RoleDriver, scope.RoleOnly)
	})

	t.Run("driver expense listing has no owner restriction", func(t *testing.T) {
		scope := e.ListScope(driverOf("c1"), ResourceExpense)
		assert.Nil(t, scope.OwnerID)
		assert.Equal(t, "c1", scope.CompanyID)
	})
}

func TestUnknownRoleDenied(t *testing.T) {
	e := NewEvaluator()
	actor := Actor{ID: uuid.New(), Role: "user", CompanyID: "c1"}
	target := &Target{ID: uuid.New(), CompanyID: "c1", Role: RoleDriver}

	assert.False(t, e.Evaluate(actor, ActionRead, ResourceUser, target).Allowed())
	assert.False(t, e.EvaluateCreate(actor, ResourceTow, CreateAttrs{CompanyID: "c1"}).Allowed())
}

func TestRoleOrder(t *testing.T) {
	assert.True(t, RoleSuperadmin.AtLeast(RoleAdmin))
	assert.True(t, RoleAdmin.AtLeast(RoleDriver))
	assert.False(t, RoleDriver.AtLeast(RoleAdmin))
	assert.True(t, RoleAdmin.IsElevated())
	assert.False(t, RoleDriver.IsElevated())
	assert.False(t, Role("user").IsValid())
}
