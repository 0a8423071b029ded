package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "cashflow/internal/errors"
	"cashflow/internal/logger"
)

// ErrorHandler returns a Gin middleware that converts errors set on the Gin
// context into consistent JSON error responses. AppErrors are returned with
// their code and message, and the code is recorded for RequestLogging.
// Unexpected errors are logged and return a generic internal error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		log := logger.Get().With("request_id", RequestID(c), "path", c.Request.URL.Path)

		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			log.Errorw("unexpected error", "error", err.Error(), "method", c.Request.Method)
			appErr = apperrors.ErrInternalServer
		}

		switch {
		case appErr.Internal != nil:
			log.Errorw("app error",
				"code", appErr.Code,
				"message", appErr.Message,
				"internal", appErr.Internal.Error(),
			)
		case appErr.StatusCode == http.StatusConflict:
			// Stale edits and locked type categories; the client must reload.
			log.Warnw("conflicting change rejected", "code", appErr.Code, "message", appErr.Message)
		}

		c.Set(errorCodeKey, appErr.Code)
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
	}
}
