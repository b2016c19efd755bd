package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldFilterIdempotence(t *testing.T) {
	e := NewEvaluator()
	actor := adminOf("c1")
	target := &Target{ID: uuid.New(), CompanyID: "c1", Role: RoleDriver}
	updates := map[string]interface{}{
		"name":     "New Name",
		"username": "newname",
		"status":   "onleave",
		"license":  "B",
		"unknown":  "dropped",
	}

	first := e.EvaluateUpdate(actor, ResourceUser, target, updates)
	require.True(t, first.Allowed())

	// Re-filtering the already-filtered set yields the same set.
	refiltered := map[string]interface{}{}
	for _, f := range first.Fields {
		refiltered[f] = updates[f]
	}
	second := e.EvaluateUpdate(actor, ResourceUser, target, refiltered)
	require.True(t, second.Allowed())
	assert.Equal(t, first.Fields, second.Fields)
}

func TestSelfEditIsNameOnly(t *testing.T) {
	e := NewEvaluator()
	d := driverOf("c1")
	self := &Target{ID: d.ID, CompanyID: "c1", Role: RoleDriver}

	dec := e.EvaluateUpdate(d, ResourceUser, self, map[string]interface{}{
		"name":   "Me",
		"status": "active",
	})
	require.True(t, dec.Allowed())
	assert.Equal(t, []string{FieldName}, dec.Fields)
}

func TestRestrictedFieldsAreSurfacedNotDropped(t *testing.T) {
	e := NewEvaluator()

	t.Run("driver changing own password", func(t *testing.T) {
		d := driverOf("c1")
		self := &Target{ID: d.ID, CompanyID: "c1", Role: RoleDriver}
		dec := e.EvaluateUpdate(d, ResourceUser, self, map[string]interface{}{"password": "hunter2"})
		require.False(t, dec.Allowed())
		assert.Contains(t, dec.Reason, "password")
	})

	t.Run("admin changing own password", func(t *testing.T) {
		// Target role constraints apply: admins change driver passwords only.
		a := adminOf("c1")
		self := &Target{ID: a.ID, CompanyID: "c1", Role: RoleAdmin}
		dec := e.EvaluateUpdate(a, ResourceUser, self, map[string]interface{}{"password": "hunter2"})
		assert.False(t, dec.Allowed())
	})

	t.Run("admin changing driver password", func(t *testing.T) {
		a := adminOf("c1")
		target := &Target{ID: uuid.New(), CompanyID: "c1", Role: RoleDriver}
		dec := e.EvaluateUpdate(a, ResourceUser, target, map[string]interface{}{"password": "hunter2"})
		require.True(t, dec.Allowed())
		assert.Contains(t, dec.Fields, FieldPassword)
	})

	t.Run("admin moving user between companies", func(t *testing.T) {
		a := adminOf("c1")
		target := &Target{ID: uuid.New(), CompanyID: "c1", Role: RoleDriver}
		dec := e.EvaluateUpdate(a, ResourceUser, target, map[string]interface{}{"company_id": "c2"})
		require.False(t, dec.Allowed())
		assert.Contains(t, dec.Reason, "company")
	})

	t.Run("owner field is immutable", func(t *testing.T) {
		a := adminOf("c1")
		target := &Target{ID: uuid.New(), CompanyID: "c1", OwnerID: uuid.New()}
		dec := e.EvaluateUpdate(a, ResourceTow, target, map[string]interface{}{"user_id": uuid.New().String()})
		assert.False(t, dec.Allowed())
	})

	t.Run("superadmin passes all restricted fields", func(t *testing.T) {
		target := &Target{ID: uuid.New(), CompanyID: "c1", Role: RoleDriver}
		dec := e.EvaluateUpdate(superadmin(), ResourceUser, target, map[string]interface{}{
			"password":   "hunter2",
			"role":       "admin",
			"company_id": "c2",
		})
		require.True(t, dec.Allowed())
		assert.ElementsMatch(t, []string{FieldCompanyID, FieldPassword, FieldRole}, dec.Fields)
	})
}

func TestUnknownFieldsDropSilently(t *testing.T) {
	e := NewEvaluator()
	actor := adminOf("c1")
	target := &Target{ID: uuid.New(), CompanyID: "c1"}

	dec := e.EvaluateUpdate(actor, ResourceVehicle, target, map[string]interface{}{
		"name":          "Truck 7",
		"model":         "FH16",
		"color":         "red",
		"towing_rating": 9000,
	})
	require.True(t, dec.Allowed())
	assert.ElementsMatch(t, []string{FieldModel, FieldName}, dec.Fields)
}

func TestAllowedFieldsSorted(t *testing.T) {
	actor := superadmin()
	target := &Target{ID: uuid.New(), CompanyID: "c1", Role: RoleDriver}

	fields := AllowedFields(actor, ResourceUser, target)
	assert.IsNonDecreasing(t, fields)

	again := AllowedFields(actor, ResourceUser, target)
	assert.Equal(t, fields, again)
}

func TestVehicleCompanyReassignment(t *testing.T) {
	e := NewEvaluator()
	target := &Target{ID: uuid.New(), CompanyID: "c1"}

	dec := e.EvaluateUpdate(adminOf("c1"), ResourceVehicle, target, map[string]interface{}{
		"company_id": "c2",
	})
	assert.False(t, dec.Allowed())

	dec = e.EvaluateUpdate(superadmin(), ResourceVehicle, target, map[string]interface{}{
		"company_id": "c2",
	})
	require.True(t, dec.Allowed())
	assert.Contains(t, dec.Fields, FieldCompanyID)
}
