package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gkt/backend/internal/domain/shared"
	"github.com/gkt/backend/internal/infrastructure/auth"
	"github.com/gkt/backend/internal/infrastructure/config"
	"github.com/gkt/backend/internal/interfaces/http/dto"
	"github.com/gkt/backend/internal/interfaces/http/middleware"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler authenticates statically configured service users and issues
// JWT token pairs carrying the actor's role.
type AuthHandler struct {
	BaseHandler
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	users      []config.AuthUser
}

// NewAuthHandler creates a new auth handler. The blacklist is optional;
// without it Logout only acknowledges the request.
func NewAuthHandler(jwtService *auth.JWTService, blacklist auth.TokenBlacklist, authCfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{
		jwtService: jwtService,
		blacklist:  blacklist,
		users:      authCfg.Users,
	}
}

func (h *AuthHandler) findUser(username string) (config.AuthUser, bool) {
	for _, u := range h.users {
		if u.Username == username {
			return u, true
		}
	}
	return config.AuthUser{}, false
}

// Login godoc
// @ID           login
// @Summary      User login
// @Description  Authenticate a configured user and issue an access/refresh token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} APIResponse[LoginResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	user, found := h.findUser(req.Username)
	if !found {
		// Burn a comparison so missing and wrong-password logins take similar time.
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5B0C4zVxE1c1bFq3y0j9yQxg1u0uu"), []byte(req.Password))
		h.Unauthorized(c, "Invalid username or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		h.Unauthorized(c, "Invalid username or password")
		return
	}

	userID, err := uuid.Parse(user.ID)
	if err != nil {
		h.InternalError(c, "Invalid user configuration")
		return
	}

	pair, err := h.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   userID,
		Username: user.Username,
		Role:     shared.Role(user.Role),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, LoginResponse{
		Token: toTokenResponse(pair),
		User: AuthUserResponse{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
		},
	})
}

// RefreshToken godoc
// @ID           refreshToken
// @Summary      Refresh token pair
// @Description  Exchange a valid refresh token for a new access/refresh token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RefreshTokenRequest true "Refresh token"
// @Success      200 {object} APIResponse[TokenResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	pair, err := h.jwtService.RefreshTokenPair(req.RefreshToken)
	if err != nil {
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeUnauthorized), dto.ErrCodeUnauthorized, "Invalid or expired refresh token")
		return
	}

	h.Success(c, toTokenResponse(pair))
}

// Logout godoc
// @ID           logout
// @Summary      Log out
// @Description  Blacklist the current access token until it expires
// @Tags         auth
// @Produce      json
// @Success      200 {object} APIResponse[MessageResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, exists := middleware.GetJWTClaims(c)
	if !exists {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if h.blacklist != nil && claims.ExpiresAt != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if ttl > 0 {
			if err := h.blacklist.AddToBlacklist(c.Request.Context(), claims.ID, ttl); err != nil {
				h.InternalError(c, "Failed to revoke token")
				return
			}
		}
	}

	h.Success(c, MessageResponse{Message: "Logged out"})
}

// Me godoc
// @ID           me
// @Summary      Current user
// @Description  Return the authenticated user's identity and role
// @Tags         auth
// @Produce      json
// @Success      200 {object} APIResponse[AuthUserResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims, exists := middleware.GetJWTClaims(c)
	if !exists {
		h.Unauthorized(c, "Authentication required")
		return
	}

	h.Success(c, AuthUserResponse{
		ID:       claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	})
}

// MessageResponse is a simple acknowledgement payload
type MessageResponse struct {
	Message string `json:"message"`
}

func toTokenResponse(pair *auth.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}
}
