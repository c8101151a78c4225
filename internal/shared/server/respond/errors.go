package respond

import (
	"github.com/gin-gonic/gin"

	"cvmaker-backend/internal/shared/telemetry"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error logs the failure and aborts with the standardized error envelope.
// Server-side failures log at error level, client mistakes at warn.
func Error(c *gin.Context, status int, code, message string, details any) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	if status >= 500 {
		telemetry.Error("http.error", fields)
	} else {
		telemetry.Warn("http.error", fields)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// BadRequest is shorthand for a 400 validation failure.
func BadRequest(c *gin.Context, message string, details any) {
	Error(c, 400, "bad_request", message, details)
}

// NotFound is shorthand for a 404.
func NotFound(c *gin.Context, message string) {
	Error(c, 404, "not_found", message, nil)
}

// Internal is shorthand for an opaque 500.
func Internal(c *gin.Context) {
	Error(c, 500, "internal", "Unexpected server error", nil)
}
