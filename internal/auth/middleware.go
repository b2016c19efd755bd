package auth

import (
	"net/http"
	"strings"

	"fleet-management-backend/internal/authz"

	"github.com/gin-gonic/gin"
)

const (
	// ContextKeyActor is the gin context key holding the authenticated actor.
	ContextKeyActor = "actor"
	// ContextKeyUsername is the gin context key holding the acting username.
	ContextKeyUsername = "username"
	// ContextKeyClaims is the gin context key holding the raw token claims.
	ContextKeyClaims = "claims"
)

// RequireAuth returns middleware that validates the Bearer token and puts
// the actor into the request context. Requests without a valid token are
// rejected with 401 before reaching the handler.
func RequireAuth(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		claims, err := svc.ValidateAccessToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextKeyActor, claims.Actor())
		c.Set(ContextKeyUsername, claims.Username)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// ActorFromContext returns the authenticated actor placed by RequireAuth.
func ActorFromContext(c *gin.Context) (authz.Actor, bool) {
	v, ok := c.Get(ContextKeyActor)
	if !ok {
		return authz.Actor{}, false
	}
	actor, ok := v.(authz.Actor)
	return actor, ok
}
