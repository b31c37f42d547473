// Package router assembles the gin engine from the registered modules.
package router

import (
	"net/http"

	apphttp "promopro_backend/internal/http"
	"promopro_backend/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// publicRateLimit allows bursts of catalog browsing while keeping a lid on
// scripted submission abuse; the submit endpoint is additionally guarded by
// the session state machine's at-most-once rule.
const (
	publicRateLimit = rate.Limit(20)
	publicRateBurst = 60
)

// New builds the HTTP engine and mounts every module's routes.
func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(corsMiddleware(app))

	engine.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/api/ready", func(c *gin.Context) {
		if err := app.Health.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	limiter := httpkit.NewIPRateLimiter(publicRateLimit, publicRateBurst, app.Logger)
	public := engine.Group("/api/v1")
	public.Use(limiter.Middleware())

	ctx := &apphttp.RouterContext{
		Engine: engine,
		Public: public,
	}

	for _, m := range app.Modules {
		m.RegisterRoutes(ctx)
		app.Logger.Info("module routes registered", "module", m.Name())
	}

	return engine
}

func corsMiddleware(app *apphttp.App) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	if app.Config.GetCORSAllowAll() {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = app.Config.GetCORSOrigins()
		corsConfig.AllowCredentials = app.Config.GetCORSAllowCreds()
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "X-Request-Id")
	return cors.New(corsConfig)
}
