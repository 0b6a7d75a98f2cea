package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Robson2726/Facilitta-sub000/internal/domain/models"
	"github.com/Robson2726/Facilitta-sub000/internal/domain/services"
	"github.com/Robson2726/Facilitta-sub000/internal/error/response"
)

// Context keys set by the auth middleware
const (
	ContextUserID = "userID"
	ContextRole   = "role"
	ContextClaims = "claims"
)

// extractToken strips the "Bearer " prefix from the Authorization header
func extractToken(authHeader string) string {
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return strings.TrimSpace(authHeader)
}

// Authenticate validates the bearer token and stores its claims in the context
func Authenticate(tokens services.InterfaceJWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Cabeçalho Authorization ausente")
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(extractToken(authHeader))
		if err != nil {
			response.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated role is one of roles
func RequireRole(roles ...models.AccessLevel) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ContextRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		response.Forbidden(c)
		c.Abort()
	}
}

// AuthenticateAdmin combines Authenticate with an admin role check
func AuthenticateAdmin(tokens services.InterfaceJWTService) []gin.HandlerFunc {
	return []gin.HandlerFunc{Authenticate(tokens), RequireRole(models.AccessLevelAdmin)}
}

// CurrentUserID returns the id of the authenticated account, zero when unauthenticated
func CurrentUserID(c *gin.Context) uint {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
