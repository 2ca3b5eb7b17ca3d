package mw

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"workshop-backend/internal/auth"
	"workshop-backend/internal/workorder"
)

const actorKey = "actor"

// Authenticate resolves the bearer token into an actor and rejects the
// request with 401 when that fails.
func Authenticate(provider auth.IdentityProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, token, found := strings.Cut(c.GetHeader("Authorization"), " ")
		token = strings.TrimSpace(token)
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		actor, err := provider.Resolve(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrUnauthorized) {
				log.Printf("[%s] rejected credentials: %v", GetRequestID(c), err)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
				return
			}
			log.Printf("[%s] identity lookup failed: %v", GetRequestID(c), err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// ActorFrom returns the actor set by Authenticate.
func ActorFrom(c *gin.Context) (workorder.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return workorder.Actor{}, false
	}
	actor, ok := v.(workorder.Actor)
	return actor, ok
}
