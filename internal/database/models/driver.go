package models

// DefaultDriverAvatar is used when a driver record has no avatar set.
const DefaultDriverAvatar = "https://cdn-icons-png.freepik.com/512/8188/8188362.png"

// Driver represents a driver roster entry for a company. This is fleet
// data, distinct from user accounts that carry the driver role.
type Driver struct {
	BaseModel
	Name       string       `json:"name" gorm:"not null;size:100" validate:"required,max=100"`
	Phone      string       `json:"phone" gorm:"not null;size:20" validate:"required,max=20"`
	License    string       `json:"license" gorm:"not null;size:50" validate:"required,max=50"`
	Experience int          `json:"experience" gorm:"not null" validate:"min=0"`
	Avatar     string       `json:"avatar,omitempty" gorm:"size:512"`
	Status     DriverStatus `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	CompanyID  string       `json:"company_id" gorm:"not null;size:64;index"`
}

// TableName returns the table name for Driver
func (Driver) TableName() string {
	return "drivers"
}
