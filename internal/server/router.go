package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/juanito/internal/app/middleware"
	"github.com/FACorreiaa/juanito/internal/routes"
)

// SetupRouter configures and returns the Gin router with all middleware and routes
func SetupRouter(h *routes.AppHandlers, serviceName string, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	r.Use(middleware.BodyCapture())
	r.Use(middleware.AccessLogger(logger.Named("access")))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.OTELGinMiddleware(serviceName))
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.SecurityMiddleware())

	routes.Setup(r, h)
	return r
}
