package models

import "time"

// Suggestion is a visitor-submitted correction for a profile, reviewed and
// cleared by an administrator.
type Suggestion struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	ProfileID   string    `json:"profile_id" gorm:"column:profile_id;size:8;not null"`
	ProfileName string    `json:"profile_name" gorm:"column:profile_name"`
	Message     string    `json:"message" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName explicitly sets the table name for GORM.
func (Suggestion) TableName() string {
	return "suggestions"
}
