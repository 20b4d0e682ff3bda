package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dsatracker/backend/config"
	"dsatracker/backend/engine"
	"dsatracker/backend/models"
	"dsatracker/backend/services"
	"dsatracker/backend/testutil"
	"dsatracker/backend/utils"
)

type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	Message   string          `json:"message"`
	Retryable bool            `json:"retryable"`
}

type testServer struct {
	app   *fiber.App
	cfg   *config.Config
	users map[string]*models.User
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db := testutil.DB(t)
	users := map[string]*models.User{
		"sumit":  testutil.SeedUser(t, db, "sumit", "sumit-pw", "Maths", "Stack & Queues"),
		"bhavya": testutil.SeedUser(t, db, "bhavya", "bhavya-pw", "Maths", "Stack & Queues"),
	}
	testutil.SetTopic(t, db, users["bhavya"].ID, "Maths", 50, 0, 0, 0, 50)

	cfg := &config.Config{JWTSecret: "testsecret", CORSOrigins: "*", TZOffset: "+05:30"}
	registry := prometheus.NewRegistry()
	svc := services.NewTrackerService(db, services.Options{
		Calendar:     engine.MustCalendar(cfg.TZOffset),
		Metrics:      services.NewMetrics(registry),
		StoreTimeout: 5 * time.Second,
		Logger:       utils.NopLogger(),
	})

	return &testServer{
		app:   NewApp(svc, cfg, utils.NopLogger(), registry),
		cfg:   cfg,
		users: users,
	}
}

func (s *testServer) token(t *testing.T, username string) string {
	t.Helper()
	user := s.users[username]
	token, err := utils.GenerateJWTToken(user.ID, user.Username, s.cfg)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp, env
}

func TestLoginAndLogout(t *testing.T) {
	s := newTestServer(t)

	resp, env := s.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{"username": "sumit", "password": "sumit-pw"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var data struct {
		Token string `json:"token"`
		User  struct {
			ID       uint   `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.Token)
	assert.Equal(t, "sumit", data.User.Username)

	var session *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == utils.TokenCookie {
			session = c
		}
	}
	require.NotNil(t, session, "login sets the session cookie")
	assert.True(t, session.HttpOnly)

	// The cookie alone authenticates.
	req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	req.AddCookie(&http.Cookie{Name: utils.TokenCookie, Value: session.Value})
	profile, err := s.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, profile.StatusCode)

	resp, _ = s.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{"username": "sumit", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{"username": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPost, "/api/auth/logout", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/user/profile", "/api/leaderboard", "/api/progress/heatmap"} {
		resp, env := s.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		assert.False(t, env.Success)
	}

	resp, _ := s.do(t, http.MethodGet, "/api/leaderboard", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUpdateTopicFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "sumit")

	resp, env := s.do(t, http.MethodPut, "/api/topics/Stack%20&%20Queues", token, fiber.Map{"field": "leetcodeMedium", "value": 20})
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)
	var topic models.Topic
	require.NoError(t, json.Unmarshal(env.Data, &topic))
	assert.Equal(t, "Stack & Queues", topic.Name)
	assert.Equal(t, 20, topic.LeetcodeMedium)
	assert.Equal(t, 20, topic.Progress)

	resp, env = s.do(t, http.MethodGet, "/api/user/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var snapshot models.UserSnapshot
	require.NoError(t, json.Unmarshal(env.Data, &snapshot))
	assert.Equal(t, 1, snapshot.User.Streak)
	assert.Equal(t, 10, snapshot.User.Points)
	require.NotNil(t, snapshot.OverallProgress)
	assert.Equal(t, 10, *snapshot.OverallProgress)

	resp, env = s.do(t, http.MethodGet, "/api/progress/heatmap", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var days []models.DayCount
	require.NoError(t, json.Unmarshal(env.Data, &days))
	require.Len(t, days, 1)
	assert.Equal(t, 1, days[0].Count)
}

func TestUpdateTopicErrors(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "sumit")

	tests := []struct {
		name   string
		path   string
		body   interface{}
		status int
	}{
		{"value above cap", "/api/topics/Maths", fiber.Map{"field": "leetcodeEasy", "value": 16}, http.StatusBadRequest},
		{"negative value", "/api/topics/Maths", fiber.Map{"field": "learning", "value": -5}, http.StatusBadRequest},
		{"unknown field", "/api/topics/Maths", fiber.Map{"field": "vibes", "value": 1}, http.StatusBadRequest},
		{"missing value", "/api/topics/Maths", fiber.Map{"field": "learning"}, http.StatusBadRequest},
		{"unknown topic", "/api/topics/Quantum", fiber.Map{"field": "learning", "value": 1}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, env := s.do(t, http.MethodPut, tt.path, token, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.False(t, env.Success)
			assert.False(t, env.Retryable)
		})
	}
}

func TestLeaderboardRoute(t *testing.T) {
	s := newTestServer(t)

	resp, env := s.do(t, http.MethodGet, "/api/leaderboard", s.token(t, "sumit"), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entries []models.LeaderboardEntry
	require.NoError(t, json.Unmarshal(env.Data, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "bhavya", entries[0].Name)
	assert.Equal(t, 25, *entries[0].Progress)
	assert.Equal(t, "sumit", entries[1].Name)
}

func TestProfileLinksRoute(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "bhavya")

	resp, env := s.do(t, http.MethodPut, "/api/user/profile", token, fiber.Map{"githubUrl": "https://github.com/bhavya"})
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)
	var user models.User
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "https://github.com/bhavya", user.GithubURL)

	resp, _ = s.do(t, http.MethodPut, "/api/user/profile", token, fiber.Map{"githubUrl": "ftp://example.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHeatmapRejectsBadRange(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "sumit")

	resp, _ := s.do(t, http.MethodGet, "/api/progress/heatmap?from=2024-03-10&to=2024-03-01", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/api/progress/heatmap?from=yesterday", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "sumit")

	resp, _ := s.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPut, "/api/topics/Maths", token, fiber.Map{"field": "learning", "value": 10})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `dsa_tracker_topic_updates_total{field="learning"} 1`)
}
