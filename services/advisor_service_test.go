package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"career-quest-system/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLLM serves a canned generateContent reply and records the prompts it saw.
func fakeLLM(t *testing.T, reply string, prompts *[]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateContentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if prompts != nil && len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
			*prompts = append(*prompts, req.Contents[0].Parts[0].Text)
		}
		body, _ := json.Marshal(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": reply}}}},
			},
		})
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}))
}

func TestAskStoresTranscript(t *testing.T) {
	var prompts []string
	srv := fakeLLM(t, "Learn Go. Ship projects.", &prompts)
	defer srv.Close()

	db := openTestDB(t)
	s := NewAdvisorService(db, NewAdvisorClient(srv.URL, "test-model", "test-key"))

	advice, err := s.Ask("user-1", "How do I become a backend developer?")
	require.NoError(t, err)
	assert.Equal(t, "Learn Go. Ship projects.", advice)

	history, err := s.GetHistory("user-1", 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.ChatRoleUser, history[0].Role)
	assert.Equal(t, "How do I become a backend developer?", history[0].Content)
	assert.Equal(t, models.ChatRoleAssistant, history[1].Role)

	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "How do I become a backend developer?")
}

func TestAskIncludesUserContextInPrompt(t *testing.T) {
	var prompts []string
	srv := fakeLLM(t, "ok", &prompts)
	defer srv.Close()

	db := openTestDB(t)
	user := models.CareerUser{
		ID:             uuid.NewString(),
		ExternalUserID: "user-1",
		Career:         "full-stack-developer",
		Skills:         models.StringList{"JavaScript", "SQL"},
		Experience:     "junior",
	}
	require.NoError(t, db.Create(&user).Error)

	s := NewAdvisorService(db, NewAdvisorClient(srv.URL, "test-model", "test-key"))
	_, err := s.Ask("user-1", "What next?")
	require.NoError(t, err)

	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "full-stack-developer")
	assert.Contains(t, prompts[0], "JavaScript, SQL")
	assert.Contains(t, prompts[0], "junior")
}

func TestAskValidatesInput(t *testing.T) {
	s := NewAdvisorService(openTestDB(t), NewAdvisorClient("http://unused", "m", "k"))

	_, err := s.Ask("", "question")
	assert.Error(t, err)
	_, err = s.Ask("user-1", "   ")
	assert.Error(t, err)
}

func TestAskSurfacesUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	db := openTestDB(t)
	s := NewAdvisorService(db, NewAdvisorClient(srv.URL, "test-model", "test-key"))

	_, err := s.Ask("user-1", "hello?")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "429"))

	// Nothing is written to the transcript when generation fails.
	history, err := s.GetHistory("user-1", 10)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestSuggestWeeklyGoals(t *testing.T) {
	var prompts []string
	srv := fakeLLM(t, "1. Build a REST API\n2. Review two pull requests\n- Read one systems design article\n\n", &prompts)
	defer srv.Close()

	db := openTestDB(t)
	user := models.CareerUser{
		ID:             uuid.NewString(),
		ExternalUserID: "user-1",
		Career:         "full-stack-developer",
		Skills:         models.StringList{"JavaScript"},
	}
	require.NoError(t, db.Create(&user).Error)
	progRecord := models.UserProgress{ID: uuid.NewString(), ExternalUserID: "user-1", XP: 650, Level: 2}
	require.NoError(t, db.Create(&progRecord).Error)

	s := NewAdvisorService(db, NewAdvisorClient(srv.URL, "test-model", "test-key"))
	goals, err := s.SuggestWeeklyGoals("user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Build a REST API",
		"Review two pull requests",
		"Read one systems design article",
	}, goals)

	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "Career Path: full-stack-developer")
	assert.Contains(t, prompts[0], "XP Level: 2")
}

func TestSuggestWeeklyGoalsEmptyReply(t *testing.T) {
	srv := fakeLLM(t, "\n\n", nil)
	defer srv.Close()

	s := NewAdvisorService(openTestDB(t), NewAdvisorClient(srv.URL, "test-model", "test-key"))
	_, err := s.SuggestWeeklyGoals("user-1")
	assert.Error(t, err)
}

func TestParseGoalList(t *testing.T) {
	goals := parseGoalList("• Ship a side project\n10. Not a numbered goal prefix? yes it is\nplain goal")
	assert.Equal(t, []string{"Ship a side project", "Not a numbered goal prefix? yes it is", "plain goal"}, goals)
}

func TestGetHistoryChronologicalWindow(t *testing.T) {
	db := openTestDB(t)
	s := NewAdvisorService(db, nil)

	for _, content := range []string{"first", "second", "third"} {
		msg := models.AdvisorMessage{ID: uuid.NewString(), ExternalUserID: "user-1", Role: models.ChatRoleUser, Content: content}
		require.NoError(t, db.Create(&msg).Error)
	}

	history, err := s.GetHistory("user-1", 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "second", history[0].Content)
	assert.Equal(t, "third", history[1].Content)
}
