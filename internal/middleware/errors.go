package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/signstats/internal/domain/dto"
	"github.com/guttosm/signstats/internal/logger"
)

// ErrorHandler converts errors attached with c.Error into a 500 JSON body
// when the handler did not write a response itself.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	err := c.Errors.Last().Err
	logger.FromContext(c.Request.Context()).Error().Err(err).Msg("unhandled request error")
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", err))
}

// AbortWithError logs err and aborts the request with status and a standard error body.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	ev := logger.FromContext(c.Request.Context()).Warn()
	if status >= http.StatusInternalServerError {
		ev = logger.FromContext(c.Request.Context()).Error()
	}
	ev.Int("status", status).Err(err).Msg(message)
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
