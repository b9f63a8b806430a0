package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/signstats/internal/domain/dto"
	"github.com/guttosm/signstats/internal/logger"
)

// RecoveryMiddleware turns a panic in a handler (a malformed workbook tripping
// a parser, for instance) into a 500 with the standard error body. The stack
// goes to the log, never to the client.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			logger.FromContext(c.Request.Context()).Error().
				Str("panic", fmt.Sprint(r)).
				Str("route", c.FullPath()).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", nil))
		}()

		c.Next()
	}
}
