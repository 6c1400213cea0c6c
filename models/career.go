package models

import (
	"time"

	"gorm.io/gorm"
)

// CareerPath is a catalog entry describing one coachable career track.
// Seeded at startup and editable by admins only.
type CareerPath struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"` // e.g. "full-stack-developer"
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Overview    string `gorm:"type:text" json:"overview"`

	// Stored as JSON arrays; read-heavy, never queried by element.
	Skills        StringList `gorm:"type:jsonb" json:"skills"`
	Opportunities StringList `gorm:"type:jsonb" json:"opportunities"`
	Projects      StringList `gorm:"type:jsonb" json:"projects"`

	AverageSalary string `json:"average_salary"`
	GrowthRate    string `json:"growth_rate"`
	ArtworkURL    string `gorm:"type:text" json:"artwork_url,omitempty"`

	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
