package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dsatracker/backend/config"
	"dsatracker/backend/middleware"
	"dsatracker/backend/models"
	"dsatracker/backend/services"
	"dsatracker/backend/testutil"
	"dsatracker/backend/utils"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		err       error
		status    int
		retryable bool
	}{
		{fmt.Errorf("load topic: %w", services.ErrNotFound), http.StatusNotFound, false},
		{fmt.Errorf("%w: learning must be between 0 and 50", services.ErrInvalidInput), http.StatusBadRequest, false},
		{services.ErrInvalidCredentials, http.StatusUnauthorized, false},
		{fmt.Errorf("user 3: %w", services.ErrInconsistentState), http.StatusConflict, false},
		{fmt.Errorf("save streak: %w: %w", services.ErrStoreUnavailable, errors.New("timeout")), http.StatusServiceUnavailable, true},
		{errors.New("boom"), http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return respondError(c, tt.err) })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body utils.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.retryable, body.Retryable)
			if tt.status == http.StatusNotFound || tt.status == http.StatusConflict {
				assert.Equal(t, tt.err.Error(), body.Message)
			}
		})
	}
}

func TestUpdateTopicAcrossDays(t *testing.T) {
	db := testutil.DB(t)
	user := testutil.SeedUser(t, db, "ayush", "pw", "Graphs")
	cfg := &config.Config{JWTSecret: "testsecret"}
	svc := services.NewTrackerService(db, services.Options{})

	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	pc := NewProgressController(svc, cfg)
	pc.Now = func() time.Time { return now }

	app := fiber.New()
	app.Put("/api/topics/:name", pc.UpdateTopic)
	app.Get("/api/progress/heatmap", pc.GetHeatmap)

	token, err := utils.GenerateJWTToken(user.ID, user.Username, cfg)
	require.NoError(t, err)

	send := func(method, path, body string) *http.Response {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	for day := 0; day < 3; day++ {
		resp := send(http.MethodPut, "/api/topics/Graphs", fmt.Sprintf(`{"field":"leetcodeHard","value":%d}`, day+1))
		require.Equal(t, http.StatusOK, resp.StatusCode)
		now = now.Add(24 * time.Hour)
	}

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, 3, stored.Streak)
	assert.Equal(t, 30, stored.Points)

	resp := send(http.MethodGet, "/api/progress/heatmap?from=2024-03-01&to=2024-03-31", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body struct {
		Data []models.DayCount `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, []models.DayCount{
		{Date: "2024-03-10", Count: 1},
		{Date: "2024-03-11", Count: 1},
		{Date: "2024-03-12", Count: 1},
	}, body.Data)
}

func TestUpdateTopicWithoutToken(t *testing.T) {
	db := testutil.DB(t)
	pc := NewProgressController(services.NewTrackerService(db, services.Options{}), &config.Config{JWTSecret: "testsecret"})

	app := fiber.New()
	app.Put("/api/topics/:name", pc.UpdateTopic)

	req := httptest.NewRequest(http.MethodPut, "/api/topics/Graphs", strings.NewReader(`{"field":"learning","value":1}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandlersUseAuthenticatedLocals(t *testing.T) {
	db := testutil.DB(t)
	sumit := testutil.SeedUser(t, db, "sumit", "pw", "Maths")
	bhavya := testutil.SeedUser(t, db, "bhavya", "pw", "Maths")
	cfg := &config.Config{JWTSecret: "testsecret"}
	uc := NewUserController(services.NewTrackerService(db, services.Options{}), cfg)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.UserIDKey, bhavya.ID)
		return c.Next()
	})
	app.Get("/api/user/profile", uc.GetProfile)

	// A token for another user is ignored once the locals carry a verified id.
	token, err := utils.GenerateJWTToken(sumit.ID, sumit.Username, cfg)
	require.NoError(t, err)
	for _, auth := range []string{"", "Bearer " + token} {
		req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Data models.UserSnapshot `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "bhavya", body.Data.User.Username)
	}
}
