package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pfrederiksen/courtgrid/internal/logger"
)

// RequestIDHeader carries the per-request ID on responses
const RequestIDHeader = "X-Request-ID"

// requestLogger tags each request with an ID and logs it once it completes
func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)

		start := time.Now()
		c.Next()

		fields := logger.Fields{
			"request_id":  id,
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if c.Writer.Status() >= 500 {
			log.Warn("HTTP request failed", fields)
			return
		}
		log.Debug("HTTP request", fields)
	}
}
