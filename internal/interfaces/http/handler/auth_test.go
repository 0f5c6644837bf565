package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gkt/backend/internal/domain/shared"
	"github.com/gkt/backend/internal/infrastructure/auth"
	"github.com/gkt/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthTestService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars!!",
		RefreshSecret:          "test-refresh-secret-at-least-32-ch!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "gkt-backend-test",
		MaxRefreshCount:        10,
	})
}

func newAuthTestHandler(t *testing.T) (*AuthHandler, *auth.JWTService) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("finance-pass-1"), bcrypt.MinCost)
	require.NoError(t, err)

	jwtService := newAuthTestService()
	handler := NewAuthHandler(jwtService, auth.NewInMemoryTokenBlacklist(), config.AuthConfig{
		Users: []config.AuthUser{
			{
				ID:           uuid.New().String(),
				Username:     "finance.user",
				PasswordHash: string(hash),
				Role:         shared.RoleFinance.String(),
			},
		},
	})
	return handler, jwtService
}

func newAuthTestRouter(handler *AuthHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/login", handler.Login)
	router.POST("/auth/refresh", handler.RefreshToken)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	handler, jwtService := newAuthTestHandler(t)
	router := newAuthTestRouter(handler)

	rec := postJSON(t, router, "/auth/login", LoginRequest{
		Username: "finance.user",
		Password: "finance-pass-1",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool          `json:"success"`
		Data    LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "finance.user", resp.Data.User.Username)
	assert.Equal(t, "FINANCE", resp.Data.User.Role)
	assert.NotEmpty(t, resp.Data.Token.AccessToken)
	assert.NotEmpty(t, resp.Data.Token.RefreshToken)

	claims, err := jwtService.ValidateAccessToken(resp.Data.Token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "FINANCE", claims.Role)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	handler, _ := newAuthTestHandler(t)
	router := newAuthTestRouter(handler)

	rec := postJSON(t, router, "/auth/login", LoginRequest{
		Username: "finance.user",
		Password: "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_Login_UnknownUser(t *testing.T) {
	handler, _ := newAuthTestHandler(t)
	router := newAuthTestRouter(handler)

	rec := postJSON(t, router, "/auth/login", LoginRequest{
		Username: "nobody.here",
		Password: "whatever-pass",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_Login_InvalidBody(t *testing.T) {
	handler, _ := newAuthTestHandler(t)
	router := newAuthTestRouter(handler)

	rec := postJSON(t, router, "/auth/login", gin.H{"username": "x"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	handler, jwtService := newAuthTestHandler(t)
	router := newAuthTestRouter(handler)

	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "finance.user",
		Role:     shared.RoleFinance,
	})
	require.NoError(t, err)

	rec := postJSON(t, router, "/auth/refresh", RefreshTokenRequest{
		RefreshToken: pair.RefreshToken,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data TokenResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.AccessToken)
	assert.NotEqual(t, pair.RefreshToken, resp.Data.RefreshToken)
}

func TestAuthHandler_RefreshToken_Invalid(t *testing.T) {
	handler, _ := newAuthTestHandler(t)
	router := newAuthTestRouter(handler)

	rec := postJSON(t, router, "/auth/refresh", RefreshTokenRequest{
		RefreshToken: "not-a-token",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
