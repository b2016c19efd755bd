package models

import (
	"time"

	"github.com/google/uuid"
)

// Expense represents an expense record created by a user within a company
type Expense struct {
	BaseModel
	Name        string    `json:"name" gorm:"not null;size:100" validate:"required,max=100"`
	Description string    `json:"description" gorm:"not null;size:500" validate:"required,max=500"`
	Date        time.Time `json:"date" gorm:"not null"`
	Amount      float64   `json:"amount" gorm:"not null" validate:"min=0"`
	CompanyID   string    `json:"company_id" gorm:"not null;size:64;index"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for Expense
func (Expense) TableName() string {
	return "expenses"
}
