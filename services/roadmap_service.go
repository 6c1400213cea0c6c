package services

import (
	"errors"
	"fmt"

	"career-quest-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoadmapService struct {
	DB *gorm.DB
}

func NewRoadmapService(db *gorm.DB) *RoadmapService {
	return &RoadmapService{DB: db}
}

// GetRoadmap fetches the learning roadmap for a career, steps in order.
func (s *RoadmapService) GetRoadmap(career string) (*models.Roadmap, error) {
	var roadmap models.Roadmap
	err := s.DB.Where("career = ?", career).
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&roadmap).Error
	if err != nil {
		return nil, err
	}
	return &roadmap, nil
}

// EnsureRoadmap creates a basic roadmap for a career if none exists yet.
// The four-step fallback keeps new careers usable before a curated roadmap
// is authored.
func (s *RoadmapService) EnsureRoadmap(career, careerName string) (*models.Roadmap, error) {
	if career == "" {
		return nil, errors.New("career is required")
	}

	existing, err := s.GetRoadmap(career)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	roadmap := models.Roadmap{
		ID:                 uuid.NewString(),
		Career:             career,
		Description:        fmt.Sprintf("Learning path for %s", careerName),
		TotalEstimatedTime: "6-12 months",
	}
	steps := []models.RoadmapStep{
		{
			Position:      1,
			Title:         "Get Started",
			Description:   fmt.Sprintf("Begin your journey in %s with fundamental concepts and tools.", careerName),
			Category:      models.RoadmapCategoryFoundation,
			EstimatedTime: "2-4 weeks",
		},
		{
			Position:      2,
			Title:         "Build Foundation",
			Description:   fmt.Sprintf("Develop core skills essential for %s success.", careerName),
			Category:      models.RoadmapCategoryFoundation,
			EstimatedTime: "1-2 months",
		},
		{
			Position:      3,
			Title:         "Practice Projects",
			Description:   "Apply your knowledge through hands-on projects and exercises.",
			Category:      models.RoadmapCategoryCore,
			EstimatedTime: "2-3 months",
		},
		{
			Position:      4,
			Title:         "Advanced Concepts",
			Description:   fmt.Sprintf("Explore advanced topics and specialized areas in %s.", careerName),
			Category:      models.RoadmapCategoryAdvanced,
			EstimatedTime: "3-6 months",
		},
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&roadmap).Error; err != nil {
			return err
		}
		for i := range steps {
			steps[i].ID = uuid.NewString()
			steps[i].RoadmapID = roadmap.ID
			if err := tx.Create(&steps[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	roadmap.Steps = steps
	return &roadmap, nil
}

// SeedDefaultRoadmaps ensures every seeded career has at least the basic
// roadmap.
func (s *RoadmapService) SeedDefaultRoadmaps() error {
	var careers []models.CareerPath
	if err := s.DB.Find(&careers).Error; err != nil {
		return err
	}
	for _, c := range careers {
		if _, err := s.EnsureRoadmap(c.Slug, c.Name); err != nil {
			return fmt.Errorf("failed to seed roadmap for %s: %w", c.Slug, err)
		}
	}
	return nil
}
