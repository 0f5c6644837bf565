package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gkt/backend/internal/domain/shared"
	"github.com/gkt/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTokenForRole(jwtService *auth.JWTService, role shared.Role) *auth.TokenPair {
	pair, _ := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "roleuser",
		Role:     role,
	})
	return pair
}

func newRoleTestRouter(jwtService *auth.JWTService, gate gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(JWTAuthMiddleware(jwtService))
	router.POST("/deals", gate, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func doRoleRequest(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/deals", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequireRole_AllowedRole(t *testing.T) {
	jwtService := newTestJWTService()
	pair := newTokenForRole(jwtService, shared.RoleSales)

	router := newRoleTestRouter(jwtService, RequireRole(shared.RoleSales))

	rec := doRoleRequest(router, pair.AccessToken)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_DeniedRole(t *testing.T) {
	jwtService := newTestJWTService()
	pair := newTokenForRole(jwtService, shared.RoleDelivery)

	router := newRoleTestRouter(jwtService, RequireRole(shared.RoleSales))

	rec := doRoleRequest(router, pair.AccessToken)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRole_AdminBypassesGate(t *testing.T) {
	jwtService := newTestJWTService()
	pair := newTokenForRole(jwtService, shared.RoleAdmin)

	router := newRoleTestRouter(jwtService, RequireRole(shared.RoleFinance))

	rec := doRoleRequest(router, pair.AccessToken)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_MultipleAllowedRoles(t *testing.T) {
	jwtService := newTestJWTService()

	router := newRoleTestRouter(jwtService, RequireRole(shared.RoleSales, shared.RoleFinance))

	for _, tc := range []struct {
		role shared.Role
		want int
	}{
		{shared.RoleSales, http.StatusOK},
		{shared.RoleFinance, http.StatusOK},
		{shared.RoleDelivery, http.StatusForbidden},
		{shared.RoleDirector, http.StatusForbidden},
	} {
		t.Run(string(tc.role), func(t *testing.T) {
			pair := newTokenForRole(jwtService, tc.role)
			rec := doRoleRequest(router, pair.AccessToken)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestRequireRole_Unauthenticated(t *testing.T) {
	router := gin.New()
	router.POST("/deals", RequireRole(shared.RoleSales), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodPost, "/deals", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleWithConfig_OnDenied(t *testing.T) {
	jwtService := newTestJWTService()
	pair := newTokenForRole(jwtService, shared.RoleDelivery)

	deniedCalled := false
	gate := RequireRoleWithConfig(RoleConfig{
		OnDenied: func(c *gin.Context, allowed []shared.Role) {
			deniedCalled = true
			c.AbortWithStatusJSON(http.StatusTeapot, gin.H{"custom": "denied"})
		},
	}, shared.RoleDirector)

	router := newRoleTestRouter(jwtService, gate)

	rec := doRoleRequest(router, pair.AccessToken)

	assert.True(t, deniedCalled)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestHasRole(t *testing.T) {
	jwtService := newTestJWTService()
	pair := newTokenForRole(jwtService, shared.RoleDirector)

	var canApprove, canSell bool

	router := gin.New()
	router.Use(JWTAuthMiddleware(jwtService))
	router.GET("/test", func(c *gin.Context) {
		canApprove = HasRole(c, shared.RoleDirector)
		canSell = HasRole(c, shared.RoleSales)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, canApprove)
	assert.False(t, canSell)
}

func TestHasRole_Unauthenticated(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.False(t, HasRole(c, shared.RoleAdmin))
}

func TestMustHaveRole_Aborts(t *testing.T) {
	jwtService := newTestJWTService()
	pair := newTokenForRole(jwtService, shared.RoleSales)

	router := gin.New()
	router.Use(JWTAuthMiddleware(jwtService))
	router.GET("/test", func(c *gin.Context) {
		if !MustHaveRole(c, shared.RoleFinance) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireCustomCheck(t *testing.T) {
	jwtService := newTestJWTService()
	pair := newTokenForRole(jwtService, shared.RoleFinance)

	gate := RequireCustomCheck(func(claims *auth.Claims, c *gin.Context) bool {
		return claims.Username == "roleuser"
	})

	router := newRoleTestRouter(jwtService, gate)

	rec := doRoleRequest(router, pair.AccessToken)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireCustomCheck_Denied(t *testing.T) {
	jwtService := newTestJWTService()
	pair := newTokenForRole(jwtService, shared.RoleFinance)

	gate := RequireCustomCheck(func(claims *auth.Claims, c *gin.Context) bool {
		return false
	})

	router := newRoleTestRouter(jwtService, gate)

	rec := doRoleRequest(router, pair.AccessToken)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
