package models

import (
	"time"

	"fleet-management-backend/internal/authz"
)

// DriverInfo holds driver-specific fields for users with the driver role
type DriverInfo struct {
	License    string `json:"license,omitempty" gorm:"column:driver_license;size:50"`
	Experience int    `json:"experience,omitempty" gorm:"column:driver_experience"`
	IsDriver   bool   `json:"is_driver" gorm:"column:is_driver;default:false"`
}

// UserAuth holds credential material. None of it is serialized to JSON.
type UserAuth struct {
	PasswordHash     string     `json:"-" gorm:"column:password_hash;not null;size:255"`
	VerificationCode string     `json:"-" gorm:"column:verification_code;size:64"`
	ResetToken       string     `json:"-" gorm:"column:reset_token;size:64"`
	ResetTokenExpiry *time.Time `json:"-" gorm:"column:reset_token_expiry"`
}

// User represents an account in the system. Username is the canonical
// identity field and is unique across all tenants.
type User struct {
	BaseModel
	Name       string      `json:"name" gorm:"not null;size:100" validate:"required,max=100"`
	Username   string      `json:"username" gorm:"uniqueIndex;not null;size:50" validate:"required,min=3,max=50"`
	Role       authz.Role  `json:"role" gorm:"type:varchar(20);not null;default:'driver'"`
	Status     UserStatus  `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	IsVerified bool        `json:"is_verified" gorm:"default:false"`
	Phone      string      `json:"phone,omitempty" gorm:"size:20"`
	CompanyID  string      `json:"company_id" gorm:"not null;default:'default';size:64;index"`
	DriverInfo DriverInfo  `json:"driver_info" gorm:"embedded"`
	Auth       UserAuth    `json:"-" gorm:"embedded"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}
