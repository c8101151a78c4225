package server

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cvmaker-backend/internal/shared/storage/db"
	"cvmaker-backend/internal/shared/telemetry"
)

const healthPingTimeout = 2 * time.Second

// Health reports liveness and, when a database is configured, its reachability.
type Health struct {
	DB *sql.DB
}

// Status returns the health payload and whether every dependency is up.
func (h Health) Status(ctx context.Context) (map[string]any, bool) {
	if h.DB == nil {
		return map[string]any{"ok": true, "database": "memory"}, true
	}
	if err := db.Ping(ctx, h.DB, healthPingTimeout); err != nil {
		telemetry.Warn("health.database_down", map[string]any{"err": err})
		return map[string]any{"ok": false, "database": "down"}, false
	}
	return map[string]any{"ok": true, "database": "up"}, true
}

func (h Health) handle(c *gin.Context) {
	status, ok := h.Status(c.Request.Context())
	code := http.StatusOK
	if !ok {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
