package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/seido-dojo/portal-api/internal/middleware"
	"github.com/seido-dojo/portal-api/internal/models"
)

// currentMember extracts the session claims placed by the session middleware.
func currentMember(c *gin.Context) (*models.SessionClaims, bool) {
	v, ok := c.Get(middleware.ContextMemberKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*models.SessionClaims)
	return claims, ok
}
