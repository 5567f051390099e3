package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cantouch/socialflow-backend/internal/common"
	"github.com/cantouch/socialflow-backend/internal/service"
)

// SessionHeader carries the session ID on every stateful request
const SessionHeader = "X-Session-ID"

const sessionContextKey = "session"

// Session resolves the X-Session-ID header to a live session and aborts
// with 401 when it is missing or unknown. The client then opens a new
// session and retries.
func Session(manager *service.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			common.ErrorResponseCode(c, http.StatusUnauthorized, "SESSION_REQUIRED", "session ID required")
			c.Abort()
			return
		}

		session, ok := manager.Get(id)
		if !ok {
			common.ErrorResponseCode(c, http.StatusUnauthorized, "SESSION_UNKNOWN", "unknown or expired session")
			c.Abort()
			return
		}

		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// GetSession returns the session resolved by the Session middleware
func GetSession(c *gin.Context) *service.Session {
	if v, ok := c.Get(sessionContextKey); ok {
		if s, ok := v.(*service.Session); ok {
			return s
		}
	}
	return nil
}
