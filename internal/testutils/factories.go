package testutils

import (
	"time"

	"fleet-management-backend/internal/authz"
	"fleet-management-backend/internal/database/models"

	"github.com/google/uuid"
)

// CompanyFactory provides methods to create test Company data
type CompanyFactory struct{}

// NewCompanyFactory creates a new CompanyFactory
func NewCompanyFactory() *CompanyFactory {
	return &CompanyFactory{}
}

// Create creates a test Company with default values
func (f *CompanyFactory) Create() *models.Company {
	id := uuid.New()
	return &models.Company{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:    "Test Towing Co",
		Address: "1 Depot Road",
		Phone:   "+1-555-0100",
		Email:   "ops-" + id.String()[:8] + "@test.com",
		Status:  models.CompanyStatusActive,
	}
}

// WithName sets a custom name for the company
func (f *CompanyFactory) WithName(name string) *models.Company {
	company := f.Create()
	company.Name = name
	return company
}

// WithEmail sets a custom contact email for the company
func (f *CompanyFactory) WithEmail(email string) *models.Company {
	company := f.Create()
	company.Email = email
	return company
}

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User with default values. Usernames embed part of
// the UUID so repeated calls never collide on the unique index.
func (f *UserFactory) Create() *models.User {
	id := uuid.New()
	return &models.User{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:       "Test Driver",
		Username:   "driver-" + id.String()[:8],
		Role:       authz.RoleDriver,
		Status:     models.UserStatusActive,
		IsVerified: true,
		Phone:      "+1-555-0123",
		CompanyID:  models.DefaultCompanyID,
		Auth: models.UserAuth{
			PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		},
	}
}

// WithCompany sets the tenant for the user
func (f *UserFactory) WithCompany(companyID string) *models.User {
	user := f.Create()
	user.CompanyID = companyID
	return user
}

// WithRole sets a custom role for the user
func (f *UserFactory) WithRole(role authz.Role) *models.User {
	user := f.Create()
	user.Role = role
	return user
}

// WithUsername sets a custom username for the user
func (f *UserFactory) WithUsername(username string) *models.User {
	user := f.Create()
	user.Username = username
	return user
}

// Admin creates an admin user in the given tenant
func (f *UserFactory) Admin(companyID string) *models.User {
	user := f.WithCompany(companyID)
	user.Role = authz.RoleAdmin
	user.Name = "Test Admin"
	return user
}

// Superadmin creates a platform operator account
func (f *UserFactory) Superadmin() *models.User {
	user := f.Create()
	user.Role = authz.RoleSuperadmin
	user.Name = "Test Superadmin"
	return user
}

// VehicleFactory provides methods to create test Vehicle data
type VehicleFactory struct{}

// NewVehicleFactory creates a new VehicleFactory
func NewVehicleFactory() *VehicleFactory {
	return &VehicleFactory{}
}

// Create creates a test Vehicle with default values
func (f *VehicleFactory) Create() *models.Vehicle {
	id := uuid.New()
	return &models.Vehicle{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:         "Tow Truck",
		Model:        "Volvo FH16",
		Year:         2021,
		LicensePlate: "TT-" + id.String()[:8],
		Status:       models.VehicleStatusActive,
		CompanyID:    models.DefaultCompanyID,
	}
}

// WithCompany sets the tenant for the vehicle
func (f *VehicleFactory) WithCompany(companyID string) *models.Vehicle {
	vehicle := f.Create()
	vehicle.CompanyID = companyID
	return vehicle
}

// WithLicensePlate sets a custom license plate
func (f *VehicleFactory) WithLicensePlate(plate string) *models.Vehicle {
	vehicle := f.Create()
	vehicle.LicensePlate = plate
	return vehicle
}

// DriverFactory provides methods to create test Driver roster data
type DriverFactory struct{}

// NewDriverFactory creates a new DriverFactory
func NewDriverFactory() *DriverFactory {
	return &DriverFactory{}
}

// Create creates a test Driver with default values
func (f *DriverFactory) Create() *models.Driver {
	return &models.Driver{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:       "Roster Driver",
		Phone:      "+1-555-0199",
		License:    "C",
		Experience: 5,
		Status:     models.DriverStatusActive,
		Avatar:     models.DefaultDriverAvatar,
		CompanyID:  models.DefaultCompanyID,
	}
}

// WithCompany sets the tenant for the driver
func (f *DriverFactory) WithCompany(companyID string) *models.Driver {
	driver := f.Create()
	driver.CompanyID = companyID
	return driver
}

// TowFactory provides methods to create test Tow data
type TowFactory struct{}

// NewTowFactory creates a new TowFactory
func NewTowFactory() *TowFactory {
	return &TowFactory{}
}

// Create creates a test Tow with default values
func (f *TowFactory) Create() *models.Tow {
	return &models.Tow{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		TowTruck:     "Truck 1",
		Driver:       "Roster Driver",
		LicensePlate: "AB-123-CD",
		TowDate:      time.Now(),
		Distance:     42.5,
		Company:      "Test Towing Co",
		CompanyID:    models.DefaultCompanyID,
		UserID:       uuid.New(),
	}
}

// WithCompany sets the tenant for the tow record
func (f *TowFactory) WithCompany(companyID string) *models.Tow {
	tow := f.Create()
	tow.CompanyID = companyID
	return tow
}

// WithUser sets the recording user for the tow record
func (f *TowFactory) WithUser(userID uuid.UUID) *models.Tow {
	tow := f.Create()
	tow.UserID = userID
	return tow
}

// ExpenseFactory provides methods to create test Expense data
type ExpenseFactory struct{}

// NewExpenseFactory creates a new ExpenseFactory
func NewExpenseFactory() *ExpenseFactory {
	return &ExpenseFactory{}
}

// Create creates a test Expense with default values
func (f *ExpenseFactory) Create() *models.Expense {
	return &models.Expense{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:        "Fuel",
		Description: "Diesel refill",
		Date:        time.Now(),
		Amount:      120.50,
		CompanyID:   models.DefaultCompanyID,
		UserID:      uuid.New(),
	}
}

// WithCompany sets the tenant for the expense
func (f *ExpenseFactory) WithCompany(companyID string) *models.Expense {
	expense := f.Create()
	expense.CompanyID = companyID
	return expense
}

// FactorySet provides access to all factories
type FactorySet struct {
	Company *CompanyFactory
	User    *UserFactory
	Vehicle *VehicleFactory
	Driver  *DriverFactory
	Tow     *TowFactory
	Expense *ExpenseFactory
}

// NewFactorySet creates a new FactorySet with all factories initialized
func NewFactorySet() *FactorySet {
	return &FactorySet{
		Company: NewCompanyFactory(),
		User:    NewUserFactory(),
		Vehicle: NewVehicleFactory(),
		Driver:  NewDriverFactory(),
		Tow:     NewTowFactory(),
		Expense: NewExpenseFactory(),
	}
}

// CreateTenant creates a company together with an admin and a driver
// belonging to it, for tests that need a populated tenant.
func (fs *FactorySet) CreateTenant(companyID string) (*models.Company, *models.User, *models.User) {
	company := fs.Company.WithName("Tenant " + companyID)
	admin := fs.User.Admin(companyID)
	driver := fs.User.WithCompany(companyID)
	return company, admin, driver
}
