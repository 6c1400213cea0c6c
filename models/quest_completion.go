package models

import (
	"fmt"
	"time"
)

// QuestCompletion is the idempotency ledger. One row exists per
// (user, quest) pair forever: the deterministic primary key makes the
// insert a create-if-absent reservation, and a duplicate-key conflict is
// authoritative proof the quest was already rewarded. Rows are never
// updated or deleted.
type QuestCompletion struct {
	ID             string    `gorm:"primaryKey" json:"id"` // "<external_user_id>_<quest_id>"
	ExternalUserID string    `gorm:"index;not null" json:"external_user_id"`
	QuestID        string    `gorm:"index;not null" json:"quest_id"`
	XPAwarded      int64     `gorm:"not null" json:"xp_awarded"`
	LevelBefore    int       `json:"level_before"`
	LevelAfter     int       `json:"level_after"`
	LevelUp        bool      `json:"level_up"`
	CompletedAt    time.Time `gorm:"autoCreateTime" json:"completed_at"`
}

// CompletionKey builds the deterministic ledger key for a (user, quest) pair.
func CompletionKey(externalUserID, questID string) string {
	return fmt.Sprintf("%s_%s", externalUserID, questID)
}
