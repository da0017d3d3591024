package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mixtape/internal/session"
)

const sessionKey = "sessionID"

// SessionMiddleware validates the bearer session token and stores the
// session id on the request context.
func SessionMiddleware(issuer *session.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Missing session token",
			})
			return
		}

		sessionID, err := issuer.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid session token",
			})
			return
		}

		c.Set(sessionKey, sessionID)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
