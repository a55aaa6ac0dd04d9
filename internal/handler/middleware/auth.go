package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"table-booking/internal/domain/actor"
	"table-booking/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxActorKey  = "actor"
	ctxClaimsKey = "jwt_claims"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Access token required"},
			})
			c.Abort()
			return
		}

		a, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Invalid or expired token"},
			})
			c.Abort()
			return
		}

		SetActor(c, a)
		c.Next()
	}
}

// RequirePermissionOrRole aborts with 403 unless the actor holds one of roles or perm.
func (m *AuthMiddleware) RequirePermissionOrRole(perm actor.Permission, roles ...actor.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, ok := GetActor(c)
		if !ok {
			// should be used after RequireAuth()
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": gin.H{"message": "Internal server error"},
			})
			c.Abort()
			return
		}

		if perm != "" && a.HasPermission(perm) {
			c.Next()
			return
		}
		for _, r := range roles {
			if a.HasRole(r) {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{
			"error": gin.H{"message": "Insufficient permissions"},
		})
		c.Abort()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[len("Bearer "):])
}

// SetActor stores the caller for handlers and the request logger.
func SetActor(c *gin.Context, a actor.Actor) {
	roles := make([]string, 0, len(a.Roles()))
	for _, r := range a.Roles() {
		roles = append(roles, r.String())
	}
	c.Set(ctxActorKey, a)
	c.Set(ctxClaimsKey, map[string]any{
		"user_id": a.ID().String(),
		"role":    strings.Join(roles, ","),
	})
}

func GetActor(c *gin.Context) (actor.Actor, bool) {
	v, exists := c.Get(ctxActorKey)
	if !exists {
		return actor.Actor{}, false
	}
	a, ok := v.(actor.Actor)
	return a, ok
}
