package models

import (
	"time"

	"gorm.io/gorm"
)

// ResourceKind categorizes curated learning resources
type ResourceKind string

const (
	ResourceKindCourse        ResourceKind = "course"
	ResourceKindBook          ResourceKind = "book"
	ResourceKindTutorial      ResourceKind = "tutorial"
	ResourceKindPractice      ResourceKind = "practice"
	ResourceKindCertification ResourceKind = "certification"
)

// Resource is a curated learning resource for a career path.
type Resource struct {
	ID     string       `gorm:"primaryKey;type:uuid" json:"id"`
	Career string       `gorm:"index;not null" json:"career"` // career path slug
	Title  string       `gorm:"not null" json:"title"`
	Link   string       `gorm:"type:text" json:"link"`
	Kind   ResourceKind `gorm:"type:varchar(16);default:'course'" json:"kind"`
	Free   bool         `gorm:"default:true" json:"free"`

	// Optional uploaded attachment (cheat sheet, syllabus PDF). Either an
	// R2/CDN URL or a local /uploads path when object storage is not configured.
	AttachmentURL string `gorm:"type:text" json:"attachment_url,omitempty"`

	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
