package models

import "github.com/google/uuid"

// Token stores an issued refresh/access token pair together with client
// metadata. Rows are removed on logout, which invalidates the refresh
// token server-side.
type Token struct {
	BaseModel
	RefreshToken string    `json:"-" gorm:"not null;size:512;index"`
	AccessToken  string    `json:"-" gorm:"not null;size:512"`
	IP           string    `json:"ip" gorm:"size:64"`
	UserAgent    string    `json:"user_agent" gorm:"size:255"`
	UserID       uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for Token
func (Token) TableName() string {
	return "tokens"
}
