package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"career-quest-system/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeLLMServer(reply string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := json.Marshal(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": reply}}}},
			},
		})
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}))
}

func newAdvisorApp(t *testing.T, llmURL string) *fiber.App {
	t.Helper()
	db := openTestDB(t)
	app := fiber.New()
	SetupAdvisorRoutes(app, services.NewAdvisorService(db, services.NewAdvisorClient(llmURL, "test-model", "test-key")))
	return app
}

func TestAdvisorChatEndpoint(t *testing.T) {
	srv := fakeLLMServer("Focus on fundamentals first.")
	defer srv.Close()
	app := newAdvisorApp(t, srv.URL)

	resp, body := doJSON(t, app, "POST", "/user/advisor/chat", "user-1",
		map[string]any{"question": "Where do I start?"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Focus on fundamentals first.", body["advice"])

	resp, _ = doJSON(t, app, "POST", "/user/advisor/chat", "user-1",
		map[string]any{"question": ""}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWeeklyGoalsEndpoint(t *testing.T) {
	srv := fakeLLMServer("1. Finish a portfolio piece\n2. Practice interviews")
	defer srv.Close()
	app := newAdvisorApp(t, srv.URL)

	resp, body := doJSON(t, app, "GET", "/user/advisor/goals", "user-1", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	goals, ok := body["weekly_goals"].([]any)
	require.True(t, ok)
	assert.Equal(t, []any{"Finish a portfolio piece", "Practice interviews"}, goals)
}

func TestWeeklyGoalsEndpointRequiresUser(t *testing.T) {
	srv := fakeLLMServer("unused")
	defer srv.Close()
	app := newAdvisorApp(t, srv.URL)

	resp, _ := doJSON(t, app, "GET", "/user/advisor/goals", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestWeeklyGoalsEndpointUpstreamDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	app := newAdvisorApp(t, srv.URL)

	resp, body := doJSON(t, app, "GET", "/user/advisor/goals", "user-1", nil, nil)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "advisor is unavailable", body["error"])
}
