package middleware

import (
	"net/url"
	"time"

	"github.com/Sandeep010-hub/promptcraft-fusion/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Logger returns a gin.HandlerFunc (middleware) that logs requests using zap
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		requestID := c.Request.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header("X-Request-ID", requestID)
		c.Set("RequestID", requestID)

		c.Next()

		latency := time.Since(start)
		log := logger.Named("http")

		for _, e := range c.Errors.Errors() {
			log.Error(e, zap.String("request_id", requestID))
		}

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", redactQuery(query)),
			zap.String("ip", c.ClientIP()),
			zap.String("user-agent", c.Request.UserAgent()),
			zap.Duration("latency", latency),
		}
		if user, ok := CurrentUser(c); ok {
			fields = append(fields, zap.Uint("user_id", user.ID))
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Error("Server Error", fields...)
		case status >= 400:
			log.Warn("Client Error", fields...)
		default:
			log.Info("Request", fields...)
		}
	}
}

// redactQuery hides credentials passed as query parameters.
func redactQuery(raw string) string {
	if raw == "" {
		return raw
	}
	q, err := url.ParseQuery(raw)
	if err != nil {
		return raw
	}
	for _, k := range []string{"key", "token", "apikey"} {
		if q.Has(k) {
			q.Set(k, "REDACTED")
		}
	}
	return q.Encode()
}
