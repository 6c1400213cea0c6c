package models

import (
	"time"

	"gorm.io/gorm"
)

// LevelXPThreshold is the XP cost of one level. Levels are always derived:
// level = xp / LevelXPThreshold. The value is fixed for the whole system;
// changing it would silently re-level every user.
const LevelXPThreshold int64 = 300

// UserProgress tracks gamified progression for each user (denormalized for performance)
type UserProgress struct {
	ID             string `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string `gorm:"uniqueIndex;not null" json:"external_user_id"` // links to profile service

	// Core progression. Level is stored for cheap reads but is always
	// recomputed from XP on every write, never updated independently.
	XP    int64 `json:"xp" gorm:"default:0"`
	Level int   `json:"level" gorm:"default:0"`

	// Activity counters
	TotalDailyQuests  int64 `json:"total_daily_quests" gorm:"default:0"`
	TotalWeeklyQuests int64 `json:"total_weekly_quests" gorm:"default:0"`

	// Milestones
	LastQuestID   string     `json:"last_quest_id,omitempty"`
	LastLevelUpAt *time.Time `json:"last_level_up_at,omitempty"`

	Timestamps
}

// LevelForXP derives the level tier for a total XP amount.
func LevelForXP(xp int64) int {
	if xp < 0 {
		return 0
	}
	return int(xp / LevelXPThreshold)
}

// XPToNextLevel returns how much XP is still missing to reach the next tier.
func XPToNextLevel(xp int64) int64 {
	return int64(LevelForXP(xp)+1)*LevelXPThreshold - xp
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
