// Package authz implements the permission model for the fleet API: which
// role may act on which record, scoped to which company, and which fields
// of a record a given role may change. The evaluator is a pure function
// over in-memory values and is safe for concurrent use.
//
// Callers resolve existence before evaluating: a target that does not
// exist is reported as not-found upstream, and a target that exists but
// fails the scope gates is denied here, so denials never reveal
// cross-tenant records that the actor could not have seen.
package authz

// CreateAttrs carries the request values the create gates depend on.
// Role is only meaningful for user creation.
type CreateAttrs struct {
	Role      Role
	CompanyID string
}

// Evaluator is the single decision point consulted by every resource
// service before a mutation. It holds no state; the zero value is usable.
type Evaluator struct{}

// NewEvaluator creates a new permission evaluator
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate decides whether the actor may perform the action on the loaded
// target. Gates run in order: role validity, the per-(resource, action)
// role gate, the tenant scope gate, then target-specific rules. The first
// failing gate short-circuits with its reason.
func (e *Evaluator) Evaluate(actor Actor, action Action, resource Resource, target *Target) Decision {
	if !actor.Role.IsValid() {
		return deny(reasonUnknownRole)
	}
	if target == nil {
		target = &Target{}
	}
	rule, ok := policies[policyKey{resource: resource, action: action}]
	if !ok {
		return deny(reasonUnknownAction)
	}
	return rule(actor, target)
}

// EvaluateCreate decides whether the actor may create a record with the
// given attributes. Tenant forcing is enforced here: a non-superadmin who
// names a foreign company is denied rather than silently corrected.
func (e *Evaluator) EvaluateCreate(actor Actor, resource Resource, attrs CreateAttrs) Decision {
	if !actor.Role.IsValid() {
		return deny(reasonUnknownRole)
	}

	switch resource {
	case ResourceUser:
		if !actor.Role.IsElevated() {
			return deny(reasonElevatedOnly)
		}
		if attrs.Role.IsElevated() && actor.Role != RoleSuperadmin {
			return deny(reasonRoleEscalation)
		}
	case ResourceCompany:
		if actor.Role != RoleSuperadmin {
			return deny(reasonSuperadminOnly)
		}
		return allow()
	}

	if attrs.CompanyID != "" && attrs.CompanyID != actor.CompanyID && actor.Role != RoleSuperadmin {
		return deny(reasonForeignAssignment)
	}
	return allow()
}

// EvaluateUpdate runs the full gate chain for a partial update and then
// the field-level write filter. On success the decision carries the
// permitted field names; callers must drop everything else.
func (e *Evaluator) EvaluateUpdate(actor Actor, resource Resource, target *Target, updates map[string]interface{}) Decision {
	dec := e.Evaluate(actor, ActionUpdate, resource, target)
	if !dec.Allowed() {
		return dec
	}
	return filterUpdate(actor, resource, target, updates)
}

// ListScope derives the query filter for list and lookup operations, so
// out-of-scope records never surface in results.
func (e *Evaluator) ListScope(actor Actor, resource Resource) Scope {
	if actor.Role == RoleSuperadmin {
		return Scope{All: true}
	}

	scope := Scope{CompanyID: actor.CompanyID}
	if actor.Role == RoleDriver {
		switch resource {
		case ResourceUser:
			// Drivers list only their driver peers.
			scope.RoleOnly = RoleDriver
		case ResourceTow:
			owner := actor.ID
			scope.OwnerID = &owner
		}
	}
	return scope
}
