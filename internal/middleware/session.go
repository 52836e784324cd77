package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/seido-dojo/portal-api/internal/service"
	appErrors "github.com/seido-dojo/portal-api/pkg/errors"
	"github.com/seido-dojo/portal-api/pkg/response"
)

// ContextMemberKey is the gin context key storing the session claims.
const ContextMemberKey = "currentMember"

// Session protects member routes by requiring a valid session token.
func Session(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextMemberKey, claims)
		c.Next()
	}
}
