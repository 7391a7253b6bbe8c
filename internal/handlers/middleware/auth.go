package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weatherops/weather-automation-api/internal/models"
)

const (
	headerUserID    = "X-User-ID"
	headerUserEmail = "X-User-Email"

	identityKey = "identity"
)

// Identity resolves the caller identity placed on the request by the external
// identity provider. Requests without one are rejected before any handler
// work happens.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerUserID)
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		c.Set(identityKey, models.UserIdentity{
			ID:    id,
			Email: c.GetHeader(headerUserEmail),
		})
		c.Next()
	}
}

// IdentityFrom returns the identity stored by Identity; zero when absent.
func IdentityFrom(c *gin.Context) models.UserIdentity {
	value, ok := c.Get(identityKey)
	if !ok {
		return models.UserIdentity{}
	}

	identity, ok := value.(models.UserIdentity)
	if !ok {
		return models.UserIdentity{}
	}
	return identity
}
