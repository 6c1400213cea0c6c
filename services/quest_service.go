package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"career-quest-system/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type QuestService struct {
	DB *gorm.DB
}

func NewQuestService(db *gorm.DB) *QuestService {
	return &QuestService{DB: db}
}

// cadence lifetimes: daily quests expire after a day, weekly after a week
func expiryFor(cadence models.QuestCadence, issuedAt time.Time) time.Time {
	if cadence == models.QuestCadenceWeekly {
		return issuedAt.AddDate(0, 0, 7)
	}
	return issuedAt.AddDate(0, 0, 1)
}

// GetQuest fetches a single active quest by ID.
func (s *QuestService) GetQuest(questID string) (*models.Quest, error) {
	var quest models.Quest
	if err := s.DB.Where("id = ?", questID).First(&quest).Error; err != nil {
		return nil, err
	}
	return &quest, nil
}

// ListQuests returns the active, unexpired quests for a career, filtered to
// the user's level band (quests at or below the level are eligible).
// cadence may be empty to list both slates.
func (s *QuestService) ListQuests(career string, level int, cadence models.QuestCadence) ([]models.Quest, error) {
	now := time.Now()
	query := s.DB.Where("career = ? AND status = ?", career, models.QuestStatusActive).
		Where("level <= ?", level).
		Where("(expires_at IS NULL OR expires_at > ?)", now)
	if cadence != "" {
		query = query.Where("cadence = ?", cadence)
	}

	var quests []models.Quest
	err := query.Order("cadence ASC, level ASC, xp_reward ASC").Find(&quests).Error
	return quests, err
}

// GenerateQuestsForCareer issues a fresh slate of quests for a career from
// its templates. Idempotent per slate: templates whose slug already has an
// active, unexpired quest are skipped.
func (s *QuestService) GenerateQuestsForCareer(career string, level int) (int, error) {
	if career == "" {
		return 0, errors.New("career is required")
	}

	templates := templatesForCareer(career)
	now := time.Now()
	issued := 0

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		issue := func(tmpl QuestTemplate, cadence models.QuestCadence) error {
			if tmpl.Level > level {
				return nil
			}
			questSlug := slug.Make(fmt.Sprintf("%s-%s-%s", career, cadence, tmpl.Title))

			var existing models.Quest
			err := tx.Where("slug = ? AND status = ?", questSlug, models.QuestStatusActive).
				Where("(expires_at IS NULL OR expires_at > ?)", now).
				First(&existing).Error
			if err == nil {
				return nil // slate already has this quest
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			expires := expiryFor(cadence, now)
			quest := models.Quest{
				ID:          uuid.NewString(),
				Slug:        questSlug,
				Career:      career,
				Level:       tmpl.Level,
				Title:       tmpl.Title,
				Description: tmpl.Description,
				XPReward:    tmpl.XPReward,
				Cadence:     cadence,
				Difficulty:  tmpl.Difficulty,
				ExpiresAt:   &expires,
				Status:      models.QuestStatusActive,
			}
			if err := tx.Create(&quest).Error; err != nil {
				return err
			}
			issued++
			return nil
		}

		for _, tmpl := range templates.Daily {
			if err := issue(tmpl, models.QuestCadenceDaily); err != nil {
				return err
			}
		}
		for _, tmpl := range templates.Weekly {
			if err := issue(tmpl, models.QuestCadenceWeekly); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if issued > 0 {
		log.Printf("🗺️ Issued %d quests for career %s (level %d)", issued, career, level)
	}
	return issued, nil
}

// RetireExpiredQuests marks expired active quests as retired. Returns the
// number of quests retired.
func (s *QuestService) RetireExpiredQuests() (int64, error) {
	result := s.DB.Model(&models.Quest{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at <= ?", models.QuestStatusActive, time.Now()).
		Update("status", models.QuestStatusRetired)
	return result.RowsAffected, result.Error
}

// SeedDefaultQuests issues the beginner slate for every curated career.
// Safe to run at every startup.
func (s *QuestService) SeedDefaultQuests() error {
	for career := range questTemplatesByCareer {
		if _, err := s.GenerateQuestsForCareer(career, 0); err != nil {
			return fmt.Errorf("failed to seed quests for %s: %w", career, err)
		}
	}
	return nil
}
