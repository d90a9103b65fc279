package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const bearerPrefix = "Bearer "

const contextKeySubject = "auth_subject"

const adminKeyHeader = "X-Admin-Key"

// SubjectFromContext returns the subject set by RequireToken. Empty if not set.
func SubjectFromContext(c *gin.Context) string {
	v, ok := c.Get(contextKeySubject)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

// RequireToken returns a middleware that checks for a valid bearer token
// and sets the authenticated subject in context. If missing or invalid,
// responds with 401. Missing and invalid tokens are indistinguishable to
// the caller.
func RequireToken(tm *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		subject, err := tm.Verify(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		c.Set(contextKeySubject, subject)
		c.Next()
	}
}

// RequireAdminKey returns a middleware gating administrative routes behind a
// shared key presented in the X-Admin-Key header. An empty configured key
// disables the route entirely.
func RequireAdminKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access disabled"})
			return
		}
		got := c.GetHeader(adminKeyHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access denied"})
			return
		}
		c.Next()
	}
}
