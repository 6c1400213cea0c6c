package services

import (
	"errors"
	"log"

	"career-quest-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BadgeService struct {
	DB *gorm.DB
}

func NewBadgeService(db *gorm.DB) *BadgeService {
	return &BadgeService{DB: db}
}

// SeedBadgeTypes inserts the predefined badge triggers if missing
// (idempotent). models.BadgeTriggers is a read-only blueprint; the stored
// rows are the source of truth for evaluation.
func (s *BadgeService) SeedBadgeTypes() error {
	for _, trigger := range models.BadgeTriggers {
		var existing models.BadgeType
		err := s.DB.Where("code = ?", trigger.Code).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		trigger.ID = uuid.NewString()
		if err := s.DB.Create(&trigger).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			return err
		}
	}
	return nil
}

// AutoAwardBadges checks all badge triggers for a user after a progress
// update. Awards are create-if-absent on the (user, badge) unique index, so
// concurrent evaluations never double-award.
func (s *BadgeService) AutoAwardBadges(externalUserID string) error {
	var prog models.UserProgress
	if err := s.DB.Where("external_user_id = ?", externalUserID).First(&prog).Error; err != nil {
		return err
	}

	var totalCompletions int64
	s.DB.Model(&models.QuestCompletion{}).
		Where("external_user_id = ?", externalUserID).
		Count(&totalCompletions)

	var triggers []models.BadgeType
	if err := s.DB.Find(&triggers).Error; err != nil {
		return err
	}

	for _, trigger := range triggers {
		if !s.meetsThreshold(&prog, totalCompletions, trigger.Threshold) {
			continue
		}
		userBadge := models.UserBadge{
			ID:             uuid.NewString(),
			ExternalUserID: externalUserID,
			BadgeTypeID:    trigger.ID,
		}
		if err := s.DB.Create(&userBadge).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue // already earned
			}
			return err
		}
		log.Printf("🎖️ Badge awarded: %s → %s", trigger.Name, externalUserID)
	}
	return nil
}

// GetUserBadges returns the awarded badges for a user with their type info.
func (s *BadgeService) GetUserBadges(externalUserID string) ([]map[string]interface{}, error) {
	var userBadges []models.UserBadge
	if err := s.DB.Where("external_user_id = ?", externalUserID).
		Order("awarded_at DESC").
		Find(&userBadges).Error; err != nil {
		return nil, err
	}

	response := make([]map[string]interface{}, 0, len(userBadges))
	for _, ub := range userBadges {
		var bt models.BadgeType
		if err := s.DB.Where("id = ?", ub.BadgeTypeID).First(&bt).Error; err != nil {
			continue
		}
		response = append(response, map[string]interface{}{
			"id":          ub.ID,
			"code":        bt.Code,
			"name":        bt.Name,
			"description": bt.Description,
			"icon_url":    bt.IconURL,
			"rarity":      bt.Rarity,
			"awarded_at":  ub.AwardedAt,
		})
	}
	return response, nil
}

func (s *BadgeService) meetsThreshold(prog *models.UserProgress, totalCompletions int64, req map[string]int64) bool {
	for key, required := range req {
		switch key {
		case "total_completions":
			if totalCompletions < required {
				return false
			}
		case "level":
			if int64(prog.Level) < required {
				return false
			}
		case "xp":
			if prog.XP < required {
				return false
			}
		case "event": // special: always true (e.g., signup)
			return true
		}
	}
	return true
}
