package services

import (
	"testing"

	"career-quest-system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureRoadmapCreatesFallback(t *testing.T) {
	s := NewRoadmapService(openTestDB(t))

	roadmap, err := s.EnsureRoadmap("cloud-engineer", "Cloud Engineer")
	require.NoError(t, err)
	require.Len(t, roadmap.Steps, 4)
	assert.Equal(t, "Get Started", roadmap.Steps[0].Title)
	assert.Equal(t, models.RoadmapCategoryFoundation, roadmap.Steps[0].Category)
	assert.Equal(t, models.RoadmapCategoryAdvanced, roadmap.Steps[3].Category)
}

func TestEnsureRoadmapIdempotent(t *testing.T) {
	s := NewRoadmapService(openTestDB(t))

	first, err := s.EnsureRoadmap("cloud-engineer", "Cloud Engineer")
	require.NoError(t, err)
	second, err := s.EnsureRoadmap("cloud-engineer", "Cloud Engineer")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	s.DB.Model(&models.Roadmap{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestEnsureRoadmapRequiresCareer(t *testing.T) {
	s := NewRoadmapService(openTestDB(t))
	_, err := s.EnsureRoadmap("", "Nameless")
	assert.Error(t, err)
}

func TestGetRoadmapOrdersSteps(t *testing.T) {
	db := openTestDB(t)
	s := NewRoadmapService(db)

	_, err := s.EnsureRoadmap("cloud-engineer", "Cloud Engineer")
	require.NoError(t, err)

	roadmap, err := s.GetRoadmap("cloud-engineer")
	require.NoError(t, err)
	require.Len(t, roadmap.Steps, 4)
	for i, step := range roadmap.Steps {
		assert.Equal(t, i+1, step.Position)
	}
}

func TestSeedDefaultRoadmaps(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, NewCareerService(db).SeedDefaultCareers())

	s := NewRoadmapService(db)
	require.NoError(t, s.SeedDefaultRoadmaps())

	for _, c := range defaultCareers {
		roadmap, err := s.GetRoadmap(c.Slug)
		require.NoError(t, err)
		assert.NotEmpty(t, roadmap.Steps)
	}
}
