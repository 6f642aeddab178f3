package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"go-agency-backend/internal/delivery/http/response"
	"go-agency-backend/pkg/apperror"
	"go-agency-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler converts errors pushed via c.Error into JSON responses.
// Expected failures travel as *apperror.AppError with their own code and
// user-facing message; anything else is logged server-side and surfaced only
// as a generic 500 so internal detail never reaches the caller.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Err != nil {
				logger.Log.Error("request failed",
					"status", appErr.Code,
					"message", appErr.Message,
					"error", appErr.Err,
					"path", c.FullPath())
			}
			if appErr.RetryAfter > 0 {
				c.Header("Retry-After", strconv.Itoa(appErr.RetryAfter))
				response.RateLimited(c, appErr.Code, appErr.Message, appErr.RetryAfter)
				return
			}
			response.Error(c, appErr.Code, appErr.Message)
			return
		}

		logger.Log.Error("unhandled error", "error", err, "path", c.FullPath())
		response.Error(c, http.StatusInternalServerError, "Internal server error")
	}
}

// Recovery turns panics into the same generic 500 body the error handler
// uses, after logging the panic value.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Log.Error("panic recovered", "panic", recovered, "path", c.FullPath())
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		c.Abort()
	})
}
