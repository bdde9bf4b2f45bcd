package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clinicboard/allotment-api/internal/service/auth"
	apperrors "github.com/clinicboard/allotment-api/pkg/errors"
	"github.com/clinicboard/allotment-api/pkg/httputil"
)

const (
	ContextUserID   = "user_id"
	ContextUserName = "user_name"
	ContextUserRole = "user_role"
)

type AuthMiddleware struct {
	auth *auth.Service
}

func NewAuthMiddleware(authService *auth.Service) *AuthMiddleware {
	return &AuthMiddleware{auth: authService}
}

// Authenticate verifies the bearer token and sets the user in context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httputil.RespondWithError(c, apperrors.Unauthorized(nil))
			c.Abort()
			return
		}

		claims, err := m.auth.Validate(parts[1])
		if err != nil {
			httputil.RespondWithError(c, apperrors.Unauthorized(err))
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextUserName, claims.Name)
		c.Set(ContextUserRole, claims.Role)
		c.Next()
	}
}

// RequireRole gates a route group to the listed roles.
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	allowed := map[string]bool{}
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		if !allowed[c.GetString(ContextUserRole)] {
			httputil.RespondWithError(c, apperrors.Forbidden("insufficient role"))
			c.Abort()
			return
		}
		c.Next()
	}
}
