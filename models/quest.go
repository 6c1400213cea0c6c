package models

import (
	"time"

	"gorm.io/gorm"
)

// QuestCadence indicates how often a quest slate rotates
type QuestCadence string

const (
	QuestCadenceDaily  QuestCadence = "daily"
	QuestCadenceWeekly QuestCadence = "weekly"
)

// QuestStatus indicates whether a quest is still offered to users
type QuestStatus string

const (
	QuestStatusActive  QuestStatus = "active"
	QuestStatusRetired QuestStatus = "retired"
)

type QuestDifficulty string

const (
	QuestDifficultyBeginner     QuestDifficulty = "beginner"
	QuestDifficultyIntermediate QuestDifficulty = "intermediate"
	QuestDifficultyAdvanced     QuestDifficulty = "advanced"
)

// Quest is a catalog entity. Quests are immutable once issued: the
// progression core only ever reads them, and the scheduler retires them
// instead of mutating reward or cadence in place.
type Quest struct {
	ID          string          `gorm:"primaryKey;type:uuid" json:"id"`
	Slug        string          `gorm:"index;not null" json:"slug"`
	Career      string          `gorm:"index;not null" json:"career"` // career path slug, e.g. "web-developer"
	Level       int             `gorm:"default:0" json:"level"`       // minimum level the quest targets
	Title       string          `gorm:"not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	XPReward    int64           `gorm:"not null" json:"xp_reward"`
	Cadence     QuestCadence    `gorm:"type:varchar(16);not null;default:'daily'" json:"cadence"`
	Difficulty  QuestDifficulty `gorm:"type:varchar(16);default:'beginner'" json:"difficulty"`
	ExpiresAt   *time.Time      `json:"expires_at,omitempty"`
	Status      QuestStatus     `gorm:"type:varchar(16);not null;default:'active';index" json:"status"`

	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
