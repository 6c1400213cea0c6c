package models

import (
	"time"
)

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// AdvisorMessage is one entry of a user's advisor chat transcript.
// Transcript writes are best-effort bookkeeping: losing one never fails
// the chat reply itself.
type AdvisorMessage struct {
	ID             string    `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalUserID string    `gorm:"index;not null" json:"external_user_id"`
	Role           ChatRole  `gorm:"type:varchar(16);not null" json:"role"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
