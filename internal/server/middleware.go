// internal/server/middleware.go
package server

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"chatnil/internal/common/auth"
	stderrors "chatnil/internal/common/errors"
	"chatnil/internal/common/logger"
	"chatnil/internal/common/metrics"
)

const (
	sessionContextKey = "session"
	sessionCookieName = "chatnil_session"
)

// ==========================
// Request Logging
// ==========================

func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := map[string]interface{}{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).Milliseconds(),
		}
		if c.Writer.Status() >= 500 {
			log.Error("request completed", fields)
			return
		}
		log.Info("request completed", fields)
	}
}

// ==========================
// Metrics
// ==========================

func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// ==========================
// Authentication
// ==========================

// requireSession validates the session token and attaches the session
// to the request context. The token comes from the Authorization
// header, or from the session cookie when no header is sent.
func requireSession(sessions *auth.SessionStore, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			if cookie, err := c.Cookie(sessionCookieName); err == nil {
				header = "Bearer " + cookie
			}
		}

		session, err := sessions.Validate(c.Request.Context(), header)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// requireOfficer rejects requests whose session lacks an override role.
func requireOfficer(officerRoles []string, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessionFrom(c)
		if session == nil || !session.IsOfficer(officerRoles) {
			respondError(c, log, stderrors.NewOverrideNotPermittedError(
				"only compliance officers may review scores"))
			return
		}
		c.Next()
	}
}

func sessionFrom(c *gin.Context) *auth.Session {
	value, exists := c.Get(sessionContextKey)
	if !exists {
		return nil
	}
	session, ok := value.(*auth.Session)
	if !ok {
		return nil
	}
	return session
}
