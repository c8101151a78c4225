package server

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"cvmaker-backend/internal/shared/config"
	"cvmaker-backend/internal/shared/metrics"
	"cvmaker-backend/internal/shared/server/middleware"
	"cvmaker-backend/internal/shared/server/validation"
)

// RouteRegistrar is implemented by every feature handler.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps carries everything NewRouter mounts.
type RouterDeps struct {
	Config   config.Config
	DB       *sql.DB
	Verifier middleware.TokenVerifier
	Limiter  *middleware.RateLimiter
	Handlers []RouteRegistrar
}

var rateLimitRoutes = map[string]string{
	"POST /api/v1/auth/register":                 "AUTH",
	"POST /api/v1/auth/login":                    "AUTH",
	"POST /api/v1/auth/request-reset":            "AUTH",
	"POST /api/v1/auth/reset-password/:token":    "AUTH",
	"POST /api/v1/cv/upload-cv":                  "UPLOAD",
	"POST /api/v1/cv/score":                      "SCORE",
	"POST /api/v1/applied-jobs/apply":            "APPLY",
	"GET /api/v1/applied-jobs/job/:jobId/export": "EXPORT",
}

var rateLimitRules = map[string]middleware.RateLimitRule{
	"AUTH":   {Rate: 10.0 / 60.0, Burst: 10},
	"UPLOAD": {Rate: 1.0 / 6.0, Burst: 5},
	"SCORE":  {Rate: 1, Burst: 20},
	"APPLY":  {Rate: 0.5, Burst: 10},
	"EXPORT": {Rate: 0.2, Burst: 5},
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if !config.IsDevLike(deps.Config.Env) {
		gin.SetMode(gin.ReleaseMode)
	}
	validation.Setup()

	r := gin.New()
	r.MaxMultipartMemory = 10 << 20
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Verifier),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules:    rateLimitRules,
			GroupFor: middleware.RouteGroups(rateLimitRoutes),
			Limiter:  deps.Limiter,
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", Health{DB: deps.DB}.handle)
	for _, h := range deps.Handlers {
		if h != nil {
			h.RegisterRoutes(api)
		}
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
