package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/guttosm/signstats/internal/logger"
)

const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
)

// RequestID is a Gin middleware that injects a unique identifier
// for each incoming HTTP request.
//
// Behavior:
//   - Reuses a well-formed UUID sent in X-Request-ID, otherwise generates a new one.
//   - Stores it in the Gin context under the key "request_id".
//   - Attaches a request-scoped logger carrying request_id to the request context,
//     so logger.FromContext(ctx) in lower layers correlates with the access log.
//   - Adds it to the response headers as "X-Request-ID".
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set(RequestIDKey, id)
		c.Request = c.Request.WithContext(logger.WithFields(c.Request.Context(), RequestIDKey, id))
		c.Writer.Header().Set(RequestIDHeader, id)

		c.Next()
	}
}
