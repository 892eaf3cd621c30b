package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ventas/backend/internal/infrastructure/auth"
	"github.com/ventas/backend/internal/infrastructure/config"
	"github.com/ventas/backend/internal/interfaces/http/dto"
)

func newTestJWTService(t *testing.T) *auth.JWTService {
	t.Helper()
	return auth.NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key-at-least-32-chars-long",
		TokenExpiration: 15 * time.Minute,
		Issuer:          "test-issuer",
	})
}

func newAuthTestRouter(t *testing.T, jwtService *auth.JWTService, authCfg config.AuthConfig) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewAuthHandler(jwtService, authCfg)

	router := gin.New()
	router.POST("/api/v1/auth/login", h.Login)
	return router
}

func doLogin(t *testing.T, router *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Login(t *testing.T) {
	cfg := config.AuthConfig{AdminUsername: "admin", AdminPassword: "s3cret"}

	t.Run("returns token for valid credentials", func(t *testing.T) {
		router := newAuthTestRouter(t, newTestJWTService(t), cfg)

		w := doLogin(t, router, LoginRequest{Username: "admin", Password: "s3cret"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)

		data, ok := resp.Data.(map[string]any)
		require.True(t, ok)
		assert.NotEmpty(t, data["accessToken"])
		assert.Equal(t, "Bearer", data["tokenType"])
		assert.Equal(t, "admin", data["username"])
	})

	t.Run("issued token is valid", func(t *testing.T) {
		jwtService := newTestJWTService(t)
		router := newAuthTestRouter(t, jwtService, cfg)

		w := doLogin(t, router, LoginRequest{Username: "admin", Password: "s3cret"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp.Data.(map[string]any)

		claims, err := jwtService.ValidateToken(data["accessToken"].(string))
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Username)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		router := newAuthTestRouter(t, newTestJWTService(t), cfg)

		w := doLogin(t, router, LoginRequest{Username: "admin", Password: "wrong"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeUnauthorized, resp.Error.Code)
	})

	t.Run("rejects wrong username", func(t *testing.T) {
		router := newAuthTestRouter(t, newTestJWTService(t), cfg)

		w := doLogin(t, router, LoginRequest{Username: "root", Password: "s3cret"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects login when no password is configured", func(t *testing.T) {
		router := newAuthTestRouter(t, newTestJWTService(t), config.AuthConfig{AdminUsername: "admin"})

		w := doLogin(t, router, LoginRequest{Username: "admin", Password: "anything"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		router := newAuthTestRouter(t, newTestJWTService(t), cfg)

		w := doLogin(t, router, map[string]string{"username": "admin"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
