package httpapi

import (
	"net/http"
	"time"

	"github.com/dkovalev2/authgate/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestLogger tags every request with a generated id and logs method,
// path, status, and duration once the handler chain finishes.
func RequestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Header("X-Request-Id", requestID)

		c.Next()

		logger.Info(c.Request.Context(), "request handled",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// RequireHeader rejects requests missing the named header before the
// handler runs, mirroring the upstream header-presence guard.
func RequireHeader(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(name) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}
