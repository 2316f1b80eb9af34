package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/noora/internal/config"
	"github.com/example/noora/internal/middleware"
	"github.com/example/noora/internal/utils"
)

func refreshApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	handler := NewAuthHandler(nil, cfg)
	app.Post("/auth/refresh", middleware.AuthMiddleware(cfg), handler.Refresh)
	return app
}

func TestRefresh_IssuesTokenForSameUser(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", TokenExpires: time.Hour}
	app := refreshApp(cfg)

	userID := uuid.New()
	token, err := utils.GenerateToken(cfg.JWTSecret, userID, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	require.NotEmpty(t, body.Token)

	parsed, err := utils.ParseToken(cfg.JWTSecret, body.Token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed, "the refreshed token carries the caller's identity")
}

func TestRefresh_RejectsMissingAndBadTokens(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", TokenExpires: time.Hour}
	app := refreshApp(cfg)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	foreign, err := utils.GenerateToken("other-secret", uuid.New(), time.Hour)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.Header.Set("Authorization", "Bearer "+foreign)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
