package service

import (
	"fleet-management-backend/internal/authz"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// AuthServiceInterface defines the interface for the authentication service
type AuthServiceInterface interface {
	Register(actor authz.Actor, req *RegisterRequest) (*UserResponse, error)
	Login(req *LoginRequest, ip, userAgent string) (*LoginResponse, error)
	Refresh(refreshToken, ip, userAgent string) (*LoginResponse, error)
	Logout(refreshToken string) error
	Profile(actor authz.Actor) (*UserResponse, error)
	ForgotPassword(username string) error
	ResetPassword(token, newPassword string) error
}

// UserServiceInterface defines the interface for the user service
type UserServiceInterface interface {
	Create(actor authz.Actor, req *CreateUserRequest) (*UserResponse, error)
	GetByID(actor authz.Actor, id uuid.UUID) (*UserResponse, error)
	List(actor authz.Actor, page, pageSize int) (*UserListResponse, error)
	ListDrivers(actor authz.Actor, page, pageSize int) (*UserListResponse, error)
	Update(actor authz.Actor, id uuid.UUID, req *UpdateUserRequest) (*UserResponse, error)
	Delete(actor authz.Actor, id uuid.UUID) error
}

// CompanyServiceInterface defines the interface for the company service
type CompanyServiceInterface interface {
	Create(actor authz.Actor, req *CreateCompanyRequest) (*CompanyResponse, error)
	GetByID(actor authz.Actor, id uuid.UUID) (*CompanyResponse, error)
	List(actor authz.Actor, page, pageSize int) (*CompanyListResponse, error)
	Update(actor authz.Actor, id uuid.UUID, req *UpdateCompanyRequest) (*CompanyResponse, error)
	Delete(actor authz.Actor, id uuid.UUID) error
}

// VehicleServiceInterface defines the interface for the vehicle service
type VehicleServiceInterface interface {
	Create(actor authz.Actor, req *CreateVehicleRequest) (*VehicleResponse, error)
	GetByID(actor authz.Actor, id uuid.UUID) (*VehicleResponse, error)
	List(actor authz.Actor, page, pageSize int) (*VehicleListResponse, error)
	Update(actor authz.Actor, id uuid.UUID, req *UpdateVehicleRequest) (*VehicleResponse, error)
	Delete(actor authz.Actor, id uuid.UUID) error
}

// DriverServiceInterface defines the interface for the driver roster service
type DriverServiceInterface interface {
	Create(actor authz.Actor, req *CreateDriverRequest) (*DriverResponse, error)
	GetByID(actor authz.Actor, id uuid.UUID) (*DriverResponse, error)
	List(actor authz.Actor, page, pageSize int) (*DriverListResponse, error)
	Update(actor authz.Actor, id uuid.UUID, req *UpdateDriverRequest) (*DriverResponse, error)
	Delete(actor authz.Actor, id uuid.UUID) error
}

// TowServiceInterface defines the interface for the tow record service
type TowServiceInterface interface {
	Create(actor authz.Actor, req *CreateTowRequest) (*TowResponse, error)
	GetByID(actor authz.Actor, id uuid.UUID) (*TowResponse, error)
	List(actor authz.Actor, page, pageSize int) (*TowListResponse, error)
	Update(actor authz.Actor, id uuid.UUID, req *UpdateTowRequest) (*TowResponse, error)
	Delete(actor authz.Actor, id uuid.UUID) error
}

// ExpenseServiceInterface defines the interface for the expense service
type ExpenseServiceInterface interface {
	Create(actor authz.Actor, req *CreateExpenseRequest) (*ExpenseResponse, error)
	GetByID(actor authz.Actor, id uuid.UUID) (*ExpenseResponse, error)
	List(actor authz.Actor, page, pageSize int) (*ExpenseListResponse, error)
	Update(actor authz.Actor, id uuid.UUID, req *UpdateExpenseRequest) (*ExpenseResponse, error)
	Delete(actor authz.Actor, id uuid.UUID) error
}

// MailerInterface defines the interface for outbound notifications
type MailerInterface interface {
	SendPasswordReset(username, resetToken string) error
}
