package repository

import (
	"fleet-management-backend/internal/authz"

	"gorm.io/gorm"
)

// scopeByCompany narrows a query to the visibility scope's tenant. Global
// scope passes the query through untouched.
func scopeByCompany(q *gorm.DB, scope authz.Scope) *gorm.DB {
	if scope.All {
		return q
	}
	return q.Where("company_id = ?", scope.CompanyID)
}

// scopeByOwner additionally narrows a query to records created by the
// scope's owner, for roles that only see their own records.
func scopeByOwner(q *gorm.DB, scope authz.Scope) *gorm.DB {
	q = scopeByCompany(q, scope)
	if scope.OwnerID != nil {
		q = q.Where("user_id = ?", *scope.OwnerID)
	}
	return q
}
