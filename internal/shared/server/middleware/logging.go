package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cvmaker-backend/internal/shared/telemetry"
)

// Context keys handlers may set to enrich the request log line.
const (
	CVIDKey          = "cvId"
	JobIDKey         = "jobId"
	ApplicationIDKey = "applicationId"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
			"user_id":     UserIDFromContext(c),
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		for key, field := range map[string]string{
			CVIDKey:          "cv_id",
			JobIDKey:         "job_id",
			ApplicationIDKey: "application_id",
		} {
			if v := stringFromContext(c, key); v != "" {
				fields[field] = v
			}
		}
		telemetry.Info("request.complete", fields)
	}
}
