package models

import (
	"time"

	"github.com/google/uuid"
)

// Tow represents a single tow-service record. UserID is the account that
// created the record and is the ownership key for driver-level scoping.
type Tow struct {
	BaseModel
	TowTruck     string      `json:"tow_truck" gorm:"not null;size:100" validate:"required,max=100"`
	Driver       string      `json:"driver" gorm:"not null;size:100" validate:"required,max=100"`
	LicensePlate string      `json:"license_plate" gorm:"not null;size:20" validate:"required,max=20"`
	TowDate      time.Time   `json:"tow_date" gorm:"not null"`
	Distance     float64     `json:"distance" gorm:"not null" validate:"min=0"`
	Company      string      `json:"company" gorm:"not null;size:100" validate:"required,max=100"`
	Images       StringArray `json:"images" gorm:"type:jsonb"`
	CompanyID    string      `json:"company_id" gorm:"not null;size:64;index"`
	UserID       uuid.UUID   `json:"user_id" gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for Tow
func (Tow) TableName() string {
	return "tows"
}
