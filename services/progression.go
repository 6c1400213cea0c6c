package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"career-quest-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CompletionStatus is the tagged outcome of a quest completion attempt.
type CompletionStatus string

const (
	CompletionSuccess     CompletionStatus = "success"
	CompletionAlreadyDone CompletionStatus = "already_completed"
	CompletionFailed      CompletionStatus = "failed"
)

// FailureKind classifies failures so callers never have to interpret
// store-specific error strings.
type FailureKind string

const (
	FailureInvalidInput FailureKind = "invalid_input"
	FailureUserNotFound FailureKind = "user_not_found"
	FailurePersistence  FailureKind = "persistence_failed"
)

// CompletionStage names the step of the protocol a failure originated from.
type CompletionStage string

const (
	StageValidate CompletionStage = "validate"
	StageLoadUser CompletionStage = "load_user"
	StageReserve  CompletionStage = "reserve_completion"
	StagePersist  CompletionStage = "persist"
)

// CompletionResult is returned from CompleteQuest. Exactly one of the three
// statuses applies: Success carries the new progression values,
// AlreadyCompleted is a terminal no-op (not an error), Failed carries the
// originating stage and a human-readable reason.
type CompletionResult struct {
	Status    CompletionStatus `json:"status"`
	Kind      FailureKind      `json:"kind,omitempty"`
	Stage     CompletionStage  `json:"stage,omitempty"`
	Reason    string           `json:"reason,omitempty"`
	NewXP     int64            `json:"new_xp,omitempty"`
	NewLevel  int              `json:"new_level,omitempty"`
	LeveledUp bool             `json:"leveled_up,omitempty"`
	Message   string           `json:"message,omitempty"`
}

func completionFailure(kind FailureKind, stage CompletionStage, reason string) CompletionResult {
	return CompletionResult{Status: CompletionFailed, Kind: kind, Stage: stage, Reason: reason}
}

// errCompletionHandled aborts the transaction after a result has already
// been decided (rollback without treating it as a store failure).
var errCompletionHandled = errors.New("completion handled")

// applyReward is the pure progression calculator: no I/O, never mutates
// state, total for reward > 0 (the orchestrator rejects anything else
// before calling it).
func applyReward(currentXP int64, currentLevel int, reward int64) (newXP int64, newLevel int, leveledUp bool) {
	newXP = currentXP + reward
	newLevel = models.LevelForXP(newXP)
	return newXP, newLevel, newLevel > currentLevel
}

func progressMessage(reward, newXP int64, newLevel int, leveledUp bool) string {
	if leveledUp {
		return fmt.Sprintf("Level up! %d XP gained, you reached level %d", reward, newLevel)
	}
	return fmt.Sprintf("%d XP gained, %d XP to next level", reward, models.XPToNextLevel(newXP))
}

type ProgressionService struct {
	DB *gorm.DB
}

func NewProgressionService(db *gorm.DB) *ProgressionService {
	return &ProgressionService{DB: db}
}

// EnsureProgressRecord ensures a UserProgress row exists (idempotent).
// New identities start at xp=0, level=0.
func (s *ProgressionService) EnsureProgressRecord(externalUserID string) (*models.UserProgress, error) {
	var prog models.UserProgress
	err := s.DB.Where("external_user_id = ?", externalUserID).First(&prog).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		prog = models.UserProgress{
			ID:             uuid.NewString(),
			ExternalUserID: externalUserID,
			XP:             0,
			Level:          0,
		}
		if err := s.DB.Create(&prog).Error; err != nil {
			// Lost a race against a concurrent first request: the row exists now.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				if err := s.DB.Where("external_user_id = ?", externalUserID).First(&prog).Error; err != nil {
					return nil, err
				}
				return &prog, nil
			}
			return nil, err
		}
		badgeSvc := NewBadgeService(s.DB)
		if err := badgeSvc.AutoAwardBadges(externalUserID); err != nil {
			log.Printf("⚠️ badge evaluation failed for new user %s: %v", externalUserID, err)
		}
		return &prog, nil
	}
	if err != nil {
		return nil, err
	}
	return &prog, nil
}

// GetProgress fetches the progression record for an identity.
func (s *ProgressionService) GetProgress(externalUserID string) (*models.UserProgress, error) {
	var prog models.UserProgress
	if err := s.DB.Where("external_user_id = ?", externalUserID).First(&prog).Error; err != nil {
		return nil, err
	}
	return &prog, nil
}

// CompleteQuest runs the full completion protocol for one (user, quest)
// pair: validate, load the progression record, reserve the ledger entry,
// compute the new XP/level, persist. Both writes happen in one transaction
// and the ledger insert is the atomic create-if-absent arbiter of
// uniqueness, so concurrent duplicates resolve to exactly one success.
func (s *ProgressionService) CompleteQuest(externalUserID, questID string, xpReward int64) CompletionResult {
	externalUserID = strings.TrimSpace(externalUserID)
	questID = strings.TrimSpace(questID)

	if externalUserID == "" {
		return completionFailure(FailureInvalidInput, StageValidate, "user id is required")
	}
	if questID == "" {
		return completionFailure(FailureInvalidInput, StageValidate, "quest id is required")
	}
	if xpReward <= 0 {
		return completionFailure(FailureInvalidInput, StageValidate, fmt.Sprintf("xp reward must be positive, got %d", xpReward))
	}

	var result CompletionResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// Row lock: concurrent completions of different quests by the same
		// user serialize here, so neither read-modify-write loses a reward.
		var prog models.UserProgress
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("external_user_id = ?", externalUserID).First(&prog).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result = completionFailure(FailureUserNotFound, StageLoadUser,
					fmt.Sprintf("no progression record for user %s", externalUserID))
				return errCompletionHandled
			}
			result = completionFailure(FailurePersistence, StageLoadUser, err.Error())
			return errCompletionHandled
		}

		newXP, newLevel, leveledUp := applyReward(prog.XP, prog.Level, xpReward)

		// Atomic reservation: the deterministic key makes this insert a
		// create-if-absent. A duplicate-key conflict is the authoritative
		// signal the quest was already rewarded.
		completion := models.QuestCompletion{
			ID:             models.CompletionKey(externalUserID, questID),
			ExternalUserID: externalUserID,
			QuestID:        questID,
			XPAwarded:      xpReward,
			LevelBefore:    prog.Level,
			LevelAfter:     newLevel,
			LevelUp:        leveledUp,
		}
		if err := tx.Create(&completion).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				result = CompletionResult{Status: CompletionAlreadyDone, Message: "Quest already completed"}
				return errCompletionHandled
			}
			result = completionFailure(FailurePersistence, StageReserve, err.Error())
			return errCompletionHandled
		}

		prog.XP = newXP
		prog.Level = newLevel
		prog.LastQuestID = questID
		if leveledUp {
			now := time.Now()
			prog.LastLevelUpAt = &now
		}
		s.bumpCadenceCounter(tx, &prog, questID)

		if err := tx.Save(&prog).Error; err != nil {
			result = completionFailure(FailurePersistence, StagePersist, err.Error())
			return errCompletionHandled
		}

		result = CompletionResult{
			Status:    CompletionSuccess,
			NewXP:     newXP,
			NewLevel:  newLevel,
			LeveledUp: leveledUp,
			Message:   progressMessage(xpReward, newXP, newLevel, leveledUp),
		}
		return nil
	})
	if err != nil && !errors.Is(err, errCompletionHandled) {
		// The transaction itself failed (commit error, connection loss).
		return completionFailure(FailurePersistence, StagePersist, err.Error())
	}

	if result.Status == CompletionSuccess {
		log.Printf("🏁 Quest completed: user=%s quest=%s xp=%d level=%d levelUp=%t",
			externalUserID, questID, result.NewXP, result.NewLevel, result.LeveledUp)

		// Badge evaluation is best-effort bookkeeping; never alters the outcome.
		badgeSvc := NewBadgeService(s.DB)
		if err := badgeSvc.AutoAwardBadges(externalUserID); err != nil {
			log.Printf("⚠️ badge evaluation failed for %s: %v", externalUserID, err)
		}
	}
	return result
}

// bumpCadenceCounter increments the daily/weekly counter when the quest is
// known to the catalog. The orchestrator otherwise treats questID as
// opaque, so an unknown quest just skips the counter.
func (s *ProgressionService) bumpCadenceCounter(tx *gorm.DB, prog *models.UserProgress, questID string) {
	var quest models.Quest
	if err := tx.Where("id = ?", questID).First(&quest).Error; err != nil {
		return
	}
	switch quest.Cadence {
	case models.QuestCadenceWeekly:
		prog.TotalWeeklyQuests++
	default:
		prog.TotalDailyQuests++
	}
}

// AwardXP grants XP directly (admin use), keeping the level invariant.
// Returns the updated progress.
func (s *ProgressionService) AwardXP(externalUserID string, xp int64, reason string) (*models.UserProgress, error) {
	if xp <= 0 {
		return nil, fmt.Errorf("xp must be positive, got %d", xp)
	}
	var updated *models.UserProgress
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var prog models.UserProgress
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("external_user_id = ?", externalUserID).First(&prog).Error; err != nil {
			return fmt.Errorf("progress record not found for %s", externalUserID)
		}

		newXP, newLevel, leveledUp := applyReward(prog.XP, prog.Level, xp)
		prog.XP = newXP
		prog.Level = newLevel
		if leveledUp {
			now := time.Now()
			prog.LastLevelUpAt = &now
		}
		if err := tx.Save(&prog).Error; err != nil {
			return err
		}

		updated = &models.UserProgress{}
		*updated = prog

		log.Printf("🎮 XP awarded: %s → XP=%d, Lvl=%d (reason: %s)", externalUserID, prog.XP, prog.Level, reason)
		return nil
	})
	if err != nil {
		return nil, err
	}

	badgeSvc := NewBadgeService(s.DB)
	if err := badgeSvc.AutoAwardBadges(externalUserID); err != nil {
		log.Printf("⚠️ badge evaluation failed for %s: %v", externalUserID, err)
	}
	return updated, nil
}

// GetCompletions returns the paginated completion ledger for a user,
// newest first.
func (s *ProgressionService) GetCompletions(externalUserID string, page, size int) (map[string]interface{}, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	var total int64
	if err := s.DB.Model(&models.QuestCompletion{}).
		Where("external_user_id = ?", externalUserID).
		Count(&total).Error; err != nil {
		return nil, err
	}

	var completions []models.QuestCompletion
	if err := s.DB.Where("external_user_id = ?", externalUserID).
		Order("completed_at DESC").
		Limit(size).Offset(offset).
		Find(&completions).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	return map[string]interface{}{
		"completions": completions,
		"page":        page,
		"size":        size,
		"total_items": total,
		"total_pages": totalPages,
	}, nil
}

// GetRecentCompletions returns completions in the last N days.
func (s *ProgressionService) GetRecentCompletions(externalUserID string, days int) ([]models.QuestCompletion, error) {
	var completions []models.QuestCompletion
	since := time.Now().AddDate(0, 0, -days)
	err := s.DB.Where("external_user_id = ? AND completed_at >= ?", externalUserID, since).
		Order("completed_at DESC").
		Find(&completions).Error
	return completions, err
}
