package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Elviskarani/carsawa-frontend-elvis/internal/session"
)

const (
	// ContextKeySessionID holds the key for the browser session ID in Gin context.
	ContextKeySessionID = "sessionID"
	// ContextKeyToken holds the key for the upstream bearer token in Gin context.
	ContextKeyToken = "authToken"

	// SessionCookieName is the browser session cookie.
	SessionCookieName = "sid"

	// Cookie lifetime. The token TTL in the session store governs how long
	// a login actually lasts; the cookie just identifies the browser.
	sessionCookieMaxAge = 365 * 24 * 60 * 60
)

// SessionMiddleware ensures every request carries a session ID, minting a
// cookie for first-time visitors, and stashes the ID in the Gin context.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookieName)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetCookie(SessionCookieName, sid, sessionCookieMaxAge, "/", "", false, true)
		}
		c.Set(ContextKeySessionID, sid)
		c.Next()
	}
}

// SessionID returns the session ID set by SessionMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString(ContextKeySessionID)
}

// AuthMiddleware resolves the upstream bearer token for the request: an
// explicit Authorization header wins, otherwise the token stored for the
// session is used. Requests without a usable token get a 401; a stored token
// that is already expired is cleared on the way out.
func AuthMiddleware(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)

		if token == "" {
			stored, err := store.Token(c.Request.Context(), SessionID(c))
			if err != nil && !errors.Is(err, session.ErrNoToken) {
				log.Printf("Failed to read session token: %v", err)
			}
			token = stored
		}

		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		if !session.TokenValid(token) {
			if err := store.Clear(c.Request.Context(), SessionID(c)); err != nil {
				log.Printf("Failed to clear expired session token: %v", err)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired, please log in again"})
			return
		}

		c.Set(ContextKeyToken, token)
		c.Next()
	}
}

// Token returns the bearer token set by AuthMiddleware.
func Token(c *gin.Context) string {
	return c.GetString(ContextKeyToken)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}
