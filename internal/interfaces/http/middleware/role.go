package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gkt/backend/internal/domain/shared"
	"github.com/gkt/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// RoleConfig holds configuration for role gate middleware
type RoleConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
	// OnDenied is called when access is denied (optional)
	OnDenied func(c *gin.Context, allowed []shared.Role)
}

// RequireRole creates middleware that allows only the listed roles.
// Admin always passes regardless of the list.
func RequireRole(roles ...shared.Role) gin.HandlerFunc {
	return RequireRoleWithConfig(RoleConfig{}, roles...)
}

// RequireRoleWithConfig creates role gate middleware with custom config
func RequireRoleWithConfig(cfg RoleConfig, roles ...shared.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			handleRoleDenied(c, cfg, roles, "No authentication claims found")
			return
		}

		if !actor.Can(roles...) {
			handleRoleDenied(c, cfg, roles, "Actor role not permitted for this operation")
			return
		}

		if cfg.Logger != nil {
			cfg.Logger.Debug("Role check passed",
				zap.String("user_id", actor.ID.String()),
				zap.String("role", string(actor.Role)),
			)
		}

		c.Next()
	}
}

// handleRoleDenied handles role gate denials
func handleRoleDenied(c *gin.Context, cfg RoleConfig, allowed []shared.Role, reason string) {
	if cfg.OnDenied != nil {
		cfg.OnDenied(c, allowed)
		return
	}

	if cfg.Logger != nil {
		role := GetJWTRole(c)
		allowedNames := make([]string, len(allowed))
		for i, r := range allowed {
			allowedNames[i] = string(r)
		}

		cfg.Logger.Warn("Role check denied",
			zap.String("reason", reason),
			zap.String("user_id", GetJWTUserID(c)),
			zap.String("role", string(role)),
			zap.Strings("allowed_roles", allowedNames),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
	}

	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "ERR_FORBIDDEN",
			"message": "Access denied: role not permitted",
		},
	})
}

// HasRole is a helper function to check the actor's role in handlers.
// Admin matches any role check.
func HasRole(c *gin.Context, roles ...shared.Role) bool {
	actor, ok := GetActor(c)
	if !ok {
		return false
	}
	return actor.Can(roles...)
}

// MustHaveRole aborts the request if the actor's role is not allowed.
// Returns true if the actor may proceed, false if aborted.
func MustHaveRole(c *gin.Context, roles ...shared.Role) bool {
	if !HasRole(c, roles...) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ERR_FORBIDDEN",
				"message": "Access denied: role not permitted",
			},
		})
		return false
	}
	return true
}

// CheckActorFunc is a function type for custom access checks
type CheckActorFunc func(claims *auth.Claims, c *gin.Context) bool

// RequireCustomCheck creates middleware with a custom access check function.
// This allows for logic that can't be expressed as a plain role list.
func RequireCustomCheck(checkFunc CheckActorFunc) gin.HandlerFunc {
	return RequireCustomCheckWithConfig(checkFunc, RoleConfig{})
}

// RequireCustomCheckWithConfig creates custom access check middleware with config
func RequireCustomCheckWithConfig(checkFunc CheckActorFunc, cfg RoleConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handleRoleDenied(c, cfg, nil, "No authentication claims found")
			return
		}

		if !checkFunc(claims, c) {
			handleRoleDenied(c, cfg, nil, "Custom access check failed")
			return
		}

		c.Next()
	}
}
