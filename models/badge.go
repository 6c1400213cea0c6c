package models

import (
	"time"
)

// BadgeType: static config (loaded from DB at startup)
type BadgeType struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	Code        string `gorm:"uniqueIndex;not null"` // e.g. "FIRST_QUEST", "LEVEL_5"
	Name        string `gorm:"not null"`
	Description string
	IconURL     string           `gorm:"type:text"`
	Rarity      string           `gorm:"type:varchar(16);default:'common'"` // common, rare, epic, legendary
	Threshold   map[string]int64 `gorm:"serializer:json"`                   // e.g. {"total_completions": 10}, {"level": 5}
	CreatedAt   time.Time        `gorm:"autoCreateTime"`
}

// UserBadge: awarded instance (many-to-many). The composite unique index
// makes the insert a create-if-absent, so each badge is awarded at most
// once per user no matter how many evaluations race.
type UserBadge struct {
	ID             string    `gorm:"primaryKey;type:uuid"`
	ExternalUserID string    `gorm:"uniqueIndex:idx_user_badge_once;not null"`
	BadgeTypeID    string    `gorm:"uniqueIndex:idx_user_badge_once;not null"`
	AwardedAt      time.Time `gorm:"autoCreateTime"`
}

// Predefined badge triggers
var BadgeTriggers = []BadgeType{
	{
		Code:        "WELCOME",
		Name:        "Welcome Aboard!",
		Description: "Started your career journey",
		Rarity:      "common",
		Threshold:   map[string]int64{"event": 1}, // awarded on first progress record
	},
	{
		Code:        "FIRST_QUEST",
		Name:        "First Steps",
		Description: "Completed your first quest",
		Rarity:      "common",
		Threshold:   map[string]int64{"total_completions": 1},
	},
	{
		Code:        "QUEST_STREAK_10",
		Name:        "Momentum",
		Description: "Completed 10 quests",
		Rarity:      "rare",
		Threshold:   map[string]int64{"total_completions": 10},
	},
	{
		Code:        "LEVEL_5",
		Name:        "Rising Star",
		Description: "Reached level 5",
		Rarity:      "rare",
		Threshold:   map[string]int64{"level": 5},
	},
	{
		Code:        "LEVEL_10",
		Name:        "Seasoned Learner",
		Description: "Reached level 10",
		Rarity:      "epic",
		Threshold:   map[string]int64{"level": 10},
	},
}
