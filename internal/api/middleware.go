package api

import (
	"alcyxob/gympumped/internal/session"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Constants for context keys
const (
	ContextUserIDKey = "userID"
	ContextTokenKey  = "sessionToken"
)

// AuthMiddleware creates a Gin middleware that resolves the bearer token to
// a signed-in identity.
func AuthMiddleware(provider session.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}
		tokenString := parts[1]

		identity, err := provider.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			var authErr *session.AuthError
			if errors.As(err, &authErr) {
				abortWithError(c, http.StatusUnauthorized, authErr.Message)
				return
			}
			log.Printf("ERROR: Failed to check session: %v", err)
			abortWithError(c, http.StatusServiceUnavailable, "Could not verify session, try again later")
			return
		}

		// Downstream handlers read the identity from the request context
		c.Request = c.Request.WithContext(session.WithIdentity(c.Request.Context(), *identity))
		c.Set(ContextUserIDKey, identity.UID)
		c.Set(ContextTokenKey, tokenString)

		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// Helper function to get User ID from context (used by handlers)
func getUserIDFromContext(c *gin.Context) (string, error) {
	identity, ok := session.CurrentIdentity(c.Request.Context())
	if !ok {
		return "", errors.New("user ID not found in context")
	}
	return identity.UID, nil
}

func getTokenFromContext(c *gin.Context) (string, error) {
	raw, exists := c.Get(ContextTokenKey)
	if !exists {
		return "", errors.New("session token not found in context")
	}
	token, ok := raw.(string)
	if !ok {
		return "", errors.New("invalid session token type in context")
	}
	return token, nil
}
