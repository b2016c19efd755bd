package models

// Company represents a tenant. Other records reference it through the
// string CompanyID tenant key rather than a foreign key to this table.
type Company struct {
	BaseModel
	Name    string        `json:"name" gorm:"not null;size:100" validate:"required,max=100"`
	Address string        `json:"address" gorm:"not null;size:255" validate:"required,max=255"`
	Phone   string        `json:"phone" gorm:"not null;size:20" validate:"required,max=20"`
	Email   string        `json:"email,omitempty" gorm:"uniqueIndex;size:255" validate:"omitempty,email,max=255"`
	Logo    string        `json:"logo,omitempty" gorm:"size:512"`
	Status  CompanyStatus `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for Company
func (Company) TableName() string {
	return "companies"
}
