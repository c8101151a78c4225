package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"cvmaker-backend/internal/shared/metrics"
	"cvmaker-backend/internal/shared/server/respond"
	"cvmaker-backend/internal/shared/telemetry"
)

// Recovery turns a handler panic into a 500 envelope. Headers already
// written by the handler cannot be replaced, so only the log is emitted then.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			metrics.IncHTTPPanics()
			telemetry.Error("http.panic", map[string]any{
				"request_id": RequestIDFromContext(c),
				"route":      c.FullPath(),
				"method":     c.Request.Method,
				"user_id":    UserIDFromContext(c),
				"panic":      fmt.Sprint(rec),
				"stack":      string(debug.Stack()),
			})
			if c.Writer.Written() {
				c.Abort()
				return
			}
			respond.Internal(c)
		}()
		c.Next()
	}
}
