package authz

import "sort"

// Field names understood by the write filter. They match the JSON field
// names of the update request DTOs.
const (
	FieldName         = "name"
	FieldUsername     = "username"
	FieldPassword     = "password"
	FieldRole         = "role"
	FieldStatus       = "status"
	FieldCompanyID    = "company_id"
	FieldUserID       = "user_id"
	FieldPhone        = "phone"
	FieldAddress      = "address"
	FieldEmail        = "email"
	FieldLogo         = "logo"
	FieldLicense      = "license"
	FieldExperience   = "experience"
	FieldIsDriver     = "is_driver"
	FieldModel        = "model"
	FieldYear         = "year"
	FieldLicensePlate = "license_plate"
	FieldImage        = "image"
	FieldAvatar       = "avatar"
	FieldTowTruck     = "tow_truck"
	FieldDriverName   = "driver"
	FieldTowDate      = "tow_date"
	FieldDistance     = "distance"
	FieldCompanyName  = "company"
	FieldImages       = "images"
	FieldDescription  = "description"
	FieldDate         = "date"
	FieldAmount       = "amount"
)

// restrictedFields are never dropped silently: a request touching one of
// these without the required privilege signals an escalation attempt and
// is surfaced as a denial.
var restrictedFields = map[string]string{
	FieldPassword:  reasonPasswordChange,
	FieldRole:      reasonRoleEscalation,
	FieldCompanyID: reasonCompanyChange,
	FieldUserID:    reasonOwnerImmutable,
}

// AllowedFields computes the set of fields the actor may change on the
// target, as the union of the always-editable-by-self fields and the
// fields editable by the actor's role over this target. The result is
// sorted, so filtering is deterministic and idempotent.
func AllowedFields(actor Actor, resource Resource, target *Target) []string {
	set := map[string]struct{}{}
	add := func(fields ...string) {
		for _, f := range fields {
			set[f] = struct{}{}
		}
	}

	switch resource {
	case ResourceUser:
		if target.IsSelf(actor) {
			add(FieldName)
		}
		switch actor.Role {
		case RoleSuperadmin:
			add(FieldName, FieldUsername, FieldPassword, FieldRole, FieldStatus,
				FieldCompanyID, FieldPhone, FieldLicense, FieldExperience, FieldIsDriver)
		case RoleAdmin:
			// Admins manage driver accounts within their company. The
			// target gate has already rejected elevated targets.
			if actor.CompanyID == target.CompanyID && target.Role == RoleDriver {
				add(FieldName, FieldUsername, FieldPassword, FieldRole, FieldStatus,
					FieldPhone, FieldLicense, FieldExperience, FieldIsDriver)
			}
		}

	case ResourceCompany:
		switch actor.Role {
		case RoleSuperadmin:
			add(FieldName, FieldAddress, FieldPhone, FieldEmail, FieldLogo, FieldStatus)
		case RoleAdmin:
			if actor.CompanyID == target.CompanyID {
				add(FieldPhone, FieldAddress, FieldEmail)
			}
		}

	case ResourceVehicle:
		add(FieldName, FieldModel, FieldYear, FieldLicensePlate, FieldImage, FieldStatus)
		if actor.Role == RoleSuperadmin {
			add(FieldCompanyID)
		}

	case ResourceDriver:
		add(FieldName, FieldPhone, FieldLicense, FieldExperience, FieldAvatar, FieldStatus)
		if actor.Role == RoleSuperadmin {
			add(FieldCompanyID)
		}

	case ResourceTow:
		add(FieldTowTruck, FieldDriverName, FieldLicensePlate, FieldTowDate,
			FieldDistance, FieldCompanyName, FieldImages)
		if actor.Role == RoleSuperadmin {
			add(FieldCompanyID)
		}

	case ResourceExpense:
		add(FieldName, FieldDescription, FieldDate, FieldAmount)
		if actor.Role == RoleSuperadmin {
			add(FieldCompanyID)
		}
	}

	fields := make([]string, 0, len(set))
	for f := range set {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// filterUpdate applies the field-level write filter to a requested partial
// update. Fields outside the allowed set are dropped silently, except the
// restricted fields (password, role, company_id, user_id), which produce
// a denial when requested without privilege. Requests that would escalate
// a role are denied even when the role field itself is permitted.
func filterUpdate(actor Actor, resource Resource, target *Target, updates map[string]interface{}) Decision {
	allowed := map[string]struct{}{}
	for _, f := range AllowedFields(actor, resource, target) {
		allowed[f] = struct{}{}
	}

	permitted := make([]string, 0, len(updates))
	for field := range updates {
		if _, ok := allowed[field]; ok {
			permitted = append(permitted, field)
			continue
		}
		if reason, restricted := restrictedFields[field]; restricted {
			return deny(reason)
		}
		// Unknown or unpermitted plain field: drop silently.
	}

	// Role values are checked here because the escalation rule depends on
	// the requested value, not just the field name.
	if value, ok := updates[FieldRole]; ok && actor.Role != RoleSuperadmin {
		if role, isRole := roleValue(value); isRole && role.IsElevated() {
			return deny(reasonRoleEscalation)
		}
	}

	sort.Strings(permitted)
	return allowFiltered(permitted)
}

func roleValue(value interface{}) (Role, bool) {
	switch v := value.(type) {
	case Role:
		return v, true
	case string:
		return Role(v), true
	}
	return "", false
}
