package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ignatzorin/marketplace-backend/internal/http/handlers"
)

// SetupRouter собирает служебный HTTP-интерфейс: /health и /metrics.
func SetupRouter(env string, healthHandler *handlers.HealthHandler) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
