package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"cashflow/internal/logger"
	"cashflow/internal/uuid"
)

const (
	// RequestIDHeader carries the request ID. A valid ID sent by the client is
	// kept so a change can be traced from the client through the broker.
	RequestIDHeader = "X-Request-ID"

	requestIDKey = "requestID"
	errorCodeKey = "errorCode"
)

// RequestID returns the ID assigned to the request by RequestLogging.
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// RequestLogging returns a Gin middleware that logs each request with its
// request ID, the authenticated user and the AppError code of a failed request.
// Rejected requests log at warn level and server failures at error level.
func RequestLogging() gin.HandlerFunc {
	log := logger.Named("http")
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if !uuid.IsValid(requestID) {
			requestID = uuid.New()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		fields := []interface{}{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if userID := c.GetString(UserIDKey); userID != "" {
			fields = append(fields, "user_id", userID)
		}
		if code := c.GetString(errorCodeKey); code != "" {
			fields = append(fields, "error_code", code)
		}

		switch {
		case status >= 500:
			log.Errorw("request failed", fields...)
		case status >= 400:
			log.Warnw("request rejected", fields...)
		default:
			log.Infow("request", fields...)
		}
	}
}
