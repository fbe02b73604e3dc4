package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"lifecycle-backend/internal/lifecycle"
	"lifecycle-backend/internal/shared/config"
	"lifecycle-backend/internal/shared/metrics"
	"lifecycle-backend/internal/shared/server/middleware"
	"lifecycle-backend/internal/shared/server/respond"
)

// RouterDeps carries the wired handlers the router needs.
type RouterDeps struct {
	Config    config.Config
	Lifecycle *lifecycle.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT":  {Rate: 10, Burst: 30},
				"EVALUATE": {Rate: 2, Burst: 5},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/accounts/:id/lifecycle/evaluate" {
					return "EVALUATE"
				}
				return "DEFAULT"
			},
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	deps.Lifecycle.RegisterRoutes(api)
	if deps.Config.Env == "dev" || deps.Config.Env == "local" {
		dev := api.Group("/dev")
		deps.Lifecycle.RegisterDevRoutes(dev)
	}

	return r
}

// Addr returns a normalized listen address for the given port.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return fmt.Sprintf(":%s", port)
}
