package models

import (
	"time"

	"gorm.io/gorm"
)

type RoadmapCategory string

const (
	RoadmapCategoryFoundation     RoadmapCategory = "foundation"
	RoadmapCategoryCore           RoadmapCategory = "core"
	RoadmapCategoryAdvanced       RoadmapCategory = "advanced"
	RoadmapCategorySpecialization RoadmapCategory = "specialization"
	RoadmapCategoryMastery        RoadmapCategory = "mastery"
)

// Roadmap is the learning path for one career. Shared catalog data:
// user-specific completion lives in progression, not here.
type Roadmap struct {
	ID                 string        `gorm:"primaryKey;type:uuid" json:"id"`
	Career             string        `gorm:"uniqueIndex;not null" json:"career"` // career path slug
	Description        string        `gorm:"type:text" json:"description"`
	TotalEstimatedTime string        `json:"total_estimated_time"`
	Steps              []RoadmapStep `gorm:"foreignKey:RoadmapID;constraint:OnDelete:CASCADE" json:"steps"`

	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

type RoadmapStep struct {
	ID            string          `gorm:"primaryKey;type:uuid" json:"id"`
	RoadmapID     string          `gorm:"index;not null" json:"roadmap_id"`
	Position      int             `gorm:"not null" json:"position"`
	Title         string          `gorm:"not null" json:"title"`
	Description   string          `gorm:"type:text" json:"description"`
	Category      RoadmapCategory `gorm:"type:varchar(16);default:'foundation'" json:"category"`
	Skills        StringList      `gorm:"type:jsonb" json:"skills"`
	EstimatedTime string          `json:"estimated_time"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
