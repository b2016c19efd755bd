package models

// UserStatus defines the lifecycle states of a user account
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
	UserStatusOnLeave  UserStatus = "onleave"
)

// IsValid checks if the UserStatus is valid
func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusActive, UserStatusInactive, UserStatusOnLeave:
		return true
	}
	return false
}

// CompanyStatus defines the lifecycle states of a company
type CompanyStatus string

const (
	CompanyStatusActive   CompanyStatus = "active"
	CompanyStatusInactive CompanyStatus = "inactive"
)

// IsValid checks if the CompanyStatus is valid
func (s CompanyStatus) IsValid() bool {
	switch s {
	case CompanyStatusActive, CompanyStatusInactive:
		return true
	}
	return false
}

// VehicleStatus defines the operational states of a vehicle
type VehicleStatus string

const (
	VehicleStatusActive      VehicleStatus = "active"
	VehicleStatusInactive    VehicleStatus = "inactive"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
)

// IsValid checks if the VehicleStatus is valid
func (s VehicleStatus) IsValid() bool {
	switch s {
	case VehicleStatusActive, VehicleStatusInactive, VehicleStatusMaintenance:
		return true
	}
	return false
}

// DriverStatus defines the availability states of a driver
type DriverStatus string

const (
	DriverStatusActive   DriverStatus = "active"
	DriverStatusInactive DriverStatus = "inactive"
	DriverStatusOnLeave  DriverStatus = "onleave"
)

// IsValid checks if the DriverStatus is valid
func (s DriverStatus) IsValid() bool {
	switch s {
	case DriverStatusActive, DriverStatusInactive, DriverStatusOnLeave:
		return true
	}
	return false
}
