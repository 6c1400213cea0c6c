package services

import (
	"fmt"
	"sync"
	"testing"

	"career-quest-system/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyReward(t *testing.T) {
	tests := []struct {
		name      string
		xp        int64
		level     int
		reward    int64
		wantXP    int64
		wantLevel int
		wantUp    bool
	}{
		{"crosses threshold", 280, 0, 50, 330, 1, true},
		{"stays below threshold", 50, 0, 30, 80, 0, false},
		{"lands exactly on threshold", 250, 0, 50, 300, 1, true},
		{"skips multiple levels", 0, 0, 700, 700, 2, true},
		{"high level no change", 950, 3, 40, 990, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newXP, newLevel, leveledUp := applyReward(tt.xp, tt.level, tt.reward)
			assert.Equal(t, tt.wantXP, newXP)
			assert.Equal(t, tt.wantLevel, newLevel)
			assert.Equal(t, tt.wantUp, leveledUp)
		})
	}
}

func TestApplyRewardDerivesLevelFromXP(t *testing.T) {
	for xp := int64(0); xp <= 900; xp += 37 {
		for reward := int64(1); reward <= 601; reward += 75 {
			newXP, newLevel, leveledUp := applyReward(xp, models.LevelForXP(xp), reward)
			assert.Equal(t, xp+reward, newXP)
			assert.Equal(t, int(newXP/models.LevelXPThreshold), newLevel)
			assert.Equal(t, newLevel > models.LevelForXP(xp), leveledUp)
		}
	}
}

func seedProgress(t *testing.T, s *ProgressionService, userID string, xp int64) {
	t.Helper()
	prog := models.UserProgress{
		ID:             uuid.NewString(),
		ExternalUserID: userID,
		XP:             xp,
		Level:          models.LevelForXP(xp),
	}
	require.NoError(t, s.DB.Create(&prog).Error)
}

func TestCompleteQuestLevelUp(t *testing.T) {
	s := NewProgressionService(openTestDB(t))
	seedProgress(t, s, "user-1", 280)

	result := s.CompleteQuest("user-1", "quest-1", 50)

	require.Equal(t, CompletionSuccess, result.Status)
	assert.Equal(t, int64(330), result.NewXP)
	assert.Equal(t, 1, result.NewLevel)
	assert.True(t, result.LeveledUp)
	assert.Equal(t, "Level up! 50 XP gained, you reached level 1", result.Message)

	prog, err := s.GetProgress("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(330), prog.XP)
	assert.Equal(t, 1, prog.Level)
	assert.Equal(t, "quest-1", prog.LastQuestID)
	assert.NotNil(t, prog.LastLevelUpAt)

	var completion models.QuestCompletion
	require.NoError(t, s.DB.First(&completion, "id = ?", models.CompletionKey("user-1", "quest-1")).Error)
	assert.Equal(t, int64(50), completion.XPAwarded)
	assert.Equal(t, 0, completion.LevelBefore)
	assert.Equal(t, 1, completion.LevelAfter)
	assert.True(t, completion.LevelUp)
}

func TestCompleteQuestNoLevelUp(t *testing.T) {
	s := NewProgressionService(openTestDB(t))
	seedProgress(t, s, "user-1", 50)

	result := s.CompleteQuest("user-1", "quest-1", 30)

	require.Equal(t, CompletionSuccess, result.Status)
	assert.Equal(t, int64(80), result.NewXP)
	assert.Equal(t, 0, result.NewLevel)
	assert.False(t, result.LeveledUp)
	assert.Equal(t, "30 XP gained, 220 XP to next level", result.Message)
}

func TestCompleteQuestIdempotent(t *testing.T) {
	s := NewProgressionService(openTestDB(t))
	seedProgress(t, s, "user-1", 0)

	first := s.CompleteQuest("user-1", "quest-1", 40)
	require.Equal(t, CompletionSuccess, first.Status)

	second := s.CompleteQuest("user-1", "quest-1", 40)
	assert.Equal(t, CompletionAlreadyDone, second.Status)

	prog, err := s.GetProgress("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(40), prog.XP, "repeat completion must not double-credit")

	var count int64
	s.DB.Model(&models.QuestCompletion{}).Where("external_user_id = ?", "user-1").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCompleteQuestDistinctQuestsBothCount(t *testing.T) {
	s := NewProgressionService(openTestDB(t))
	seedProgress(t, s, "user-1", 0)

	require.Equal(t, CompletionSuccess, s.CompleteQuest("user-1", "quest-1", 40).Status)
	require.Equal(t, CompletionSuccess, s.CompleteQuest("user-1", "quest-2", 60).Status)

	prog, err := s.GetProgress("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), prog.XP)
}

func TestCompleteQuestInvalidInput(t *testing.T) {
	s := NewProgressionService(openTestDB(t))
	seedProgress(t, s, "user-1", 100)

	tests := []struct {
		name    string
		userID  string
		questID string
		reward  int64
	}{
		{"empty user", "", "quest-1", 10},
		{"empty quest", "user-1", "", 10},
		{"zero reward", "user-1", "quest-1", 0},
		{"negative reward", "user-1", "quest-1", -5},
		{"whitespace user", "   ", "quest-1", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := s.CompleteQuest(tt.userID, tt.questID, tt.reward)
			assert.Equal(t, CompletionFailed, result.Status)
			assert.Equal(t, FailureInvalidInput, result.Kind)
			assert.Equal(t, StageValidate, result.Stage)
		})
	}

	// no state change from any rejected attempt
	prog, err := s.GetProgress("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), prog.XP)

	var count int64
	s.DB.Model(&models.QuestCompletion{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCompleteQuestUserNotFound(t *testing.T) {
	s := NewProgressionService(openTestDB(t))

	result := s.CompleteQuest("ghost", "quest-1", 10)

	assert.Equal(t, CompletionFailed, result.Status)
	assert.Equal(t, FailureUserNotFound, result.Kind)
	assert.Equal(t, StageLoadUser, result.Stage)
}

func TestCompleteQuestConcurrentDuplicates(t *testing.T) {
	s := NewProgressionService(openTestDB(t))
	seedProgress(t, s, "user-1", 0)

	const attempts = 12
	results := make([]CompletionResult, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.CompleteQuest("user-1", "quest-1", 50)
		}(i)
	}
	wg.Wait()

	var successes, already int
	for _, r := range results {
		switch r.Status {
		case CompletionSuccess:
			successes++
		case CompletionAlreadyDone:
			already++
		default:
			t.Fatalf("unexpected outcome: %+v", r)
		}
	}
	assert.Equal(t, 1, successes, "exactly one attempt may win")
	assert.Equal(t, attempts-1, already)

	prog, err := s.GetProgress("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(50), prog.XP, "reward applied exactly once")
}

func TestCompleteQuestConcurrentDistinctQuests(t *testing.T) {
	s := NewProgressionService(openTestDB(t))
	seedProgress(t, s, "user-1", 0)

	const quests = 8
	rewards := make([]int64, quests)
	var wantXP int64
	for i := range rewards {
		rewards[i] = int64(10 * (i + 1))
		wantXP += rewards[i]
	}

	var wg sync.WaitGroup
	for i := 0; i < quests; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result := s.CompleteQuest("user-1", fmt.Sprintf("quest-%d", i), rewards[i])
			assert.Equal(t, CompletionSuccess, result.Status)
		}(i)
	}
	wg.Wait()

	// No reward may be lost to a racing read-modify-write: the stored XP
	// must equal the sum of the ledger awards.
	prog, err := s.GetProgress("user-1")
	require.NoError(t, err)
	assert.Equal(t, wantXP, prog.XP)
	assert.Equal(t, models.LevelForXP(wantXP), prog.Level)

	var ledgerSum int64
	require.NoError(t, s.DB.Model(&models.QuestCompletion{}).
		Where("external_user_id = ?", "user-1").
		Select("COALESCE(SUM(xp_awarded), 0)").Scan(&ledgerSum).Error)
	assert.Equal(t, wantXP, ledgerSum)
}

func TestCompleteQuestBumpsCadenceCounters(t *testing.T) {
	db := openTestDB(t)
	s := NewProgressionService(db)
	seedProgress(t, s, "user-1", 0)

	daily := models.Quest{ID: uuid.NewString(), Slug: "d", Career: "web-developer", Title: "Daily", XPReward: 10, Cadence: models.QuestCadenceDaily, Status: models.QuestStatusActive}
	weekly := models.Quest{ID: uuid.NewString(), Slug: "w", Career: "web-developer", Title: "Weekly", XPReward: 20, Cadence: models.QuestCadenceWeekly, Status: models.QuestStatusActive}
	require.NoError(t, db.Create(&daily).Error)
	require.NoError(t, db.Create(&weekly).Error)

	require.Equal(t, CompletionSuccess, s.CompleteQuest("user-1", daily.ID, daily.XPReward).Status)
	require.Equal(t, CompletionSuccess, s.CompleteQuest("user-1", weekly.ID, weekly.XPReward).Status)

	prog, err := s.GetProgress("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), prog.TotalDailyQuests)
	assert.Equal(t, int64(1), prog.TotalWeeklyQuests)
}

func TestEnsureProgressRecord(t *testing.T) {
	s := NewProgressionService(openTestDB(t))

	prog, err := s.EnsureProgressRecord("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), prog.XP)
	assert.Equal(t, 0, prog.Level)

	again, err := s.EnsureProgressRecord("user-1")
	require.NoError(t, err)
	assert.Equal(t, prog.ID, again.ID)
}

func TestAwardXPKeepsLevelInvariant(t *testing.T) {
	s := NewProgressionService(openTestDB(t))
	seedProgress(t, s, "user-1", 250)

	prog, err := s.AwardXP("user-1", 400, "admin-grant")
	require.NoError(t, err)
	assert.Equal(t, int64(650), prog.XP)
	assert.Equal(t, 2, prog.Level)
	assert.Equal(t, models.LevelForXP(prog.XP), prog.Level)

	_, err = s.AwardXP("user-1", 0, "rejected")
	assert.Error(t, err)
}

func TestGetCompletionsPagination(t *testing.T) {
	s := NewProgressionService(openTestDB(t))
	seedProgress(t, s, "user-1", 0)

	for i := 0; i < 5; i++ {
		require.Equal(t, CompletionSuccess, s.CompleteQuest("user-1", fmt.Sprintf("quest-%d", i), 10).Status)
	}

	page, err := s.GetCompletions("user-1", 1, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), page["total_items"])
	assert.Equal(t, 2, page["total_pages"])
	assert.Len(t, page["completions"], 3)
}
