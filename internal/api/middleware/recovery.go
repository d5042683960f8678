package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"
	"syscall"

	"greengrass/internal/logger"

	"github.com/gin-gonic/gin"
)

// Recovery turns a handler panic into a JSON 500. Panics caused by the
// client going away are dropped without a response.
func Recovery(logger *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		if clientGone(recovered) {
			logger.Debug("Client closed connection on %s %s", c.Request.Method, c.Request.URL.Path)
			c.Abort()
			return
		}

		log := logger.With(
			"method", c.Request.Method,
			"route", c.FullPath(),
			"client_ip", c.ClientIP(),
		)
		log.Error("Recovered from panic: %v", recovered)
		log.Debug("Panic stack:\n%s", debug.Stack())

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	})
}

func clientGone(recovered interface{}) bool {
	err, ok := recovered.(error)
	if !ok {
		return false
	}
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, http.ErrAbortHandler)
}
