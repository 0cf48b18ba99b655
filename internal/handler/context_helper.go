package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-reportcard-api/internal/middleware"
	"github.com/noah-isme/sma-reportcard-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// requestContext turns the authenticated claims into the caller identity
// passed to services. Anonymous callers get an empty context.
func requestContext(c *gin.Context) models.RequestContext {
	claims := claimsFromContext(c)
	if claims == nil {
		return models.RequestContext{}
	}
	return models.RequestContext{
		ActorID:  claims.UserID,
		Role:     claims.Role,
		CampusID: claims.CampusID,
	}
}
