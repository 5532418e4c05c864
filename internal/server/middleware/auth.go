// Package middleware holds the gin middlewares of the API layer.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"wagebook-backend/internal/service/auth"
)

// Context keys set by Auth.
const (
	CtxOwnerID    = "ownerID"
	CtxOwnerEmail = "ownerEmail"
)

// TokenVerifier validates a raw bearer token and returns its claims.
type TokenVerifier interface {
	VerifyToken(raw string) (*auth.Claims, error)
}

// Auth gates a route group behind a bearer token. A missing token is 403, an
// invalid or expired one is 401; on success the owner id and email are placed
// into the request context.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Token required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Token missing"})
			return
		}

		claims, err := verifier.VerifyToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		ownerID, err := primitive.ObjectIDFromHex(claims.ID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		c.Set(CtxOwnerID, ownerID)
		c.Set(CtxOwnerEmail, claims.Email)
		c.Next()
	}
}

// OwnerID pulls the authenticated owner id out of the request context.
func OwnerID(c *gin.Context) primitive.ObjectID {
	if v, ok := c.Get(CtxOwnerID); ok {
		if id, ok := v.(primitive.ObjectID); ok {
			return id
		}
	}
	return primitive.NilObjectID
}
