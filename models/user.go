package models

import (
	"time"

	"gorm.io/gorm"
)

// CareerUser is a local snapshot of user data needed for coaching views.
// Owned and managed solely by this service.
// Populated via sync worker from the profile service's user table.
type CareerUser struct {
	ID             string  `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string  `gorm:"uniqueIndex;not null" json:"external_user_id"` // the profile service's UUID
	Username       string  `gorm:"index;not null" json:"username"`
	Email          string  `json:"email,omitempty"`
	FirstName      *string `json:"first_name,omitempty"`
	LastName       *string `json:"last_name,omitempty"`

	// Onboarding choices
	Career     string     `gorm:"index" json:"career"` // chosen career path slug, empty until onboarded
	Skills     StringList `gorm:"type:jsonb" json:"skills"`
	Experience string     `json:"experience,omitempty"` // beginner | intermediate | advanced

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	LastSeen *time.Time `json:"last_seen,omitempty"`

	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
