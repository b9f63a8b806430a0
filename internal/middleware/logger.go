package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/signstats/internal/logger"
	"github.com/rs/zerolog"
)

// RequestLogger writes one access line per request through the request-scoped
// logger, so the line carries request_id when RequestID ran first.
//
// Level follows the status: error for 5xx, warn for 4xx, info otherwise.
// Route is the matched template (e.g. /api/v1/summaries/:id/download) so
// report ids do not explode log cardinality; path is the raw URL path.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RequestLogger())
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		accessEvent(logger.FromContext(c.Request.Context()), status).
			Str("method", c.Request.Method).
			Str("route", c.FullPath()).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Int64("latency_ms", time.Since(start).Milliseconds()).
			Int64("bytes_in", c.Request.ContentLength).
			Int("bytes_out", c.Writer.Size()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

func accessEvent(l *zerolog.Logger, status int) *zerolog.Event {
	switch {
	case status >= 500:
		return l.Error()
	case status >= 400:
		return l.Warn()
	default:
		return l.Info()
	}
}
