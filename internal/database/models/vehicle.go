package models

import "gorm.io/gorm"

// Vehicle represents a fleet vehicle owned by a company
type Vehicle struct {
	BaseModel
	Name         string        `json:"name" gorm:"not null;size:100" validate:"required,max=100"`
	Model        string        `json:"model" gorm:"not null;size:100" validate:"required,max=100"`
	Year         int           `json:"year" gorm:"not null" validate:"required,min=1950,max=2100"`
	LicensePlate string        `json:"license_plate" gorm:"uniqueIndex;not null;size:20" validate:"required,max=20"`
	PlateNumber  string        `json:"plate_number,omitempty" gorm:"size:20"`
	Image        string        `json:"image,omitempty" gorm:"size:512"`
	Status       VehicleStatus `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	CompanyID    string        `json:"company_id" gorm:"not null;size:64;index"`
}

// TableName returns the table name for Vehicle
func (Vehicle) TableName() string {
	return "vehicles"
}

// BeforeSave mirrors LicensePlate into PlateNumber, which older clients
// still read.
func (v *Vehicle) BeforeSave(tx *gorm.DB) error {
	if v.LicensePlate != "" {
		v.PlateNumber = v.LicensePlate
	}
	return nil
}
