package authz

// Denial reasons. They are surfaced verbatim through the error taxonomy,
// so they must not reveal whether an out-of-scope record exists.
const (
	reasonElevatedOnly       = "only admin or superadmin may perform this action"
	reasonSuperadminOnly     = "only superadmin may perform this action"
	reasonForeignCompany     = "you do not have access to records of another company"
	reasonEditElevatedUser   = "only superadmin may edit admin or superadmin accounts"
	reasonViewElevatedUser   = "only superadmin or admin may view admin or superadmin accounts"
	reasonSelfDelete         = "you cannot delete your own account"
	reasonOwnTowOnly         = "drivers may only access their own tow records"
	reasonExpenseUpdate      = "only admin or superadmin may update expense records"
	reasonPasswordChange     = "password changes require admin or superadmin privileges"
	reasonPasswordTargetRole = "admins may only change passwords of driver accounts"
	reasonCompanyChange      = "only superadmin may change the company of a record"
	reasonRoleEscalation     = "only superadmin may grant admin or superadmin roles"
	reasonOwnerImmutable     = "the owner of a record cannot be changed"
	reasonForeignAssignment  = "only superadmin may assign records to another company"
	reasonUnknownRole        = "unknown role"
	reasonUnknownAction      = "action not permitted on this resource"
)

type policyKey struct {
	resource Resource
	action   Action
}

type ruleFunc func(actor Actor, target *Target) Decision

// policies maps (resource, action) to the allow-predicate over the actor
// and the loaded target record. Create and list have no loaded target and
// are handled by EvaluateCreate and ListScope.
var policies = map[policyKey]ruleFunc{
	{ResourceUser, ActionRead}:      userRead,
	{ResourceUser, ActionUpdate}:    userUpdate,
	{ResourceUser, ActionDelete}:    userDelete,
	{ResourceCompany, ActionRead}:   companyRead,
	{ResourceCompany, ActionUpdate}: companyUpdate,
	{ResourceCompany, ActionDelete}: superadminOnly,
	{ResourceVehicle, ActionRead}:   companyScoped,
	{ResourceVehicle, ActionUpdate}: companyScoped,
	{ResourceVehicle, ActionDelete}: companyScoped,
	{ResourceDriver, ActionRead}:    companyScoped,
	{ResourceDriver, ActionUpdate}:  companyScoped,
	{ResourceDriver, ActionDelete}:  companyScoped,
	{ResourceTow, ActionRead}:       towAccess,
	{ResourceTow, ActionUpdate}:     towAccess,
	{ResourceTow, ActionDelete}:     superadminOnly,
	{ResourceExpense, ActionRead}:   expenseRead,
	{ResourceExpense, ActionUpdate}: expenseUpdate,
	{ResourceExpense, ActionDelete}: superadminOnly,
}

func userRead(actor Actor, target *Target) Decision {
	if target.IsSelf(actor) || actor.Role == RoleSuperadmin {
		return allow()
	}
	if actor.CompanyID != target.CompanyID {
		return deny(reasonForeignCompany)
	}
	// Drivers only see their driver peers within the company.
	if actor.Role == RoleDriver && target.Role != RoleDriver {
		return deny(reasonViewElevatedUser)
	}
	return allow()
}

func userUpdate(actor Actor, target *Target) Decision {
	if target.IsSelf(actor) || actor.Role == RoleSuperadmin {
		return allow()
	}
	if actor.Role != RoleAdmin {
		return deny(reasonElevatedOnly)
	}
	if actor.CompanyID != target.CompanyID {
		return deny(reasonForeignCompany)
	}
	if target.Role != RoleDriver {
		return deny(reasonEditElevatedUser)
	}
	return allow()
}

func userDelete(actor Actor, target *Target) Decision {
	if actor.Role != RoleSuperadmin {
		return deny(reasonSuperadminOnly)
	}
	if target.IsSelf(actor) {
		return deny(reasonSelfDelete)
	}
	return allow()
}

func companyRead(actor Actor, target *Target) Decision {
	if actor.Role == RoleSuperadmin || actor.CompanyID == target.CompanyID {
		return allow()
	}
	return deny(reasonForeignCompany)
}

func companyUpdate(actor Actor, target *Target) Decision {
	if actor.Role == RoleSuperadmin {
		return allow()
	}
	if actor.Role != RoleAdmin {
		return deny(reasonElevatedOnly)
	}
	if actor.CompanyID != target.CompanyID {
		return deny(reasonForeignCompany)
	}
	return allow()
}

func companyScoped(actor Actor, target *Target) Decision {
	if actor.Role == RoleSuperadmin || actor.CompanyID == target.CompanyID {
		return allow()
	}
	return deny(reasonForeignCompany)
}

func towAccess(actor Actor, target *Target) Decision {
	if actor.Role == RoleSuperadmin {
		return allow()
	}
	if actor.CompanyID != target.CompanyID {
		return deny(reasonForeignCompany)
	}
	if actor.Role == RoleDriver && target.OwnerID != actor.ID {
		return deny(reasonOwnTowOnly)
	}
	return allow()
}

func expenseRead(actor Actor, target *Target) Decision {
	if actor.Role == RoleSuperadmin || actor.CompanyID == target.CompanyID {
		return allow()
	}
	return deny(reasonForeignCompany)
}

func expenseUpdate(actor Actor, target *Target) Decision {
	if actor.Role == RoleDriver {
		return deny(reasonExpenseUpdate)
	}
	if actor.Role == RoleSuperadmin {
		return allow()
	}
	if actor.CompanyID != target.CompanyID {
		return deny(reasonForeignCompany)
	}
	return allow()
}

func superadminOnly(actor Actor, _ *Target) Decision {
	if actor.Role != RoleSuperadmin {
		return deny(reasonSuperadminOnly)
	}
	return allow()
}
