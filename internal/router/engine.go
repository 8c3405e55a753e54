package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hyb-mobile-app/hyb-api/internal/container"
	handlers "github.com/hyb-mobile-app/hyb-api/internal/interface/http"
	"github.com/hyb-mobile-app/hyb-api/internal/interface/middleware"
	"github.com/hyb-mobile-app/hyb-api/pkg/validation"
)

// NewEngine builds the gin engine with global middleware, every module under /api
// and the JSON 404 fallback.
func NewEngine(c *container.Container) *gin.Engine {
	validation.Init()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	if c.Config.HTTPLogEnabled {
		r.Use(middleware.AccessLog(c.Logger))
	}
	if c.Config.DebugMetricsEnabled {
		r.Use(middleware.Metrics())
	}

	origins := c.Config.CORSOrigins()
	corsCfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "x-api-key", middleware.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	// bearer tokens travel in headers, so credentials are never needed with "*"
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
	}
	r.Use(cors.New(corsCfg))

	reg := NewRegistry(r)
	InitModules(reg, c)
	reg.RegisterAll()

	r.NoRoute(handlers.NotFound)
	return r
}
