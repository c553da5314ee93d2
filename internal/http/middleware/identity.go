package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
)

// HeaderUserID carries the caller's identity. Authentication is out of
// scope; the value is trusted as given.
const HeaderUserID = "X-User-ID"

const userIDKey = "userID"

var userIDPattern = regexp.MustCompile(`^[A-Za-z0-9._@:\-]{1,64}$`)

// Identity reads X-User-ID and, when well-formed, stores it on the context.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if v := strings.TrimSpace(c.GetHeader(HeaderUserID)); userIDPattern.MatchString(v) {
			c.Set(userIDKey, v)
		}
		c.Next()
	}
}

// RequireUser rejects requests without a valid X-User-ID.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"request_id": RequestIDFrom(c),
				"code":       "bad_request",
				"message":    "X-User-ID header required (1-64 chars of [A-Za-z0-9._@:-])",
				"field":      HeaderUserID,
			})
			return
		}
		c.Next()
	}
}

// UserID returns the identity set by Identity, or "".
func UserID(c *gin.Context) string {
	if v, ok := c.Get(userIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
