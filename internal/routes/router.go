package routes

import (
	"net/http"

	"air-quality-dashboard/internal/config"
	"air-quality-dashboard/internal/dashboard"
	"air-quality-dashboard/internal/delivery/http/handler"
	"air-quality-dashboard/internal/logger"
	"air-quality-dashboard/internal/middleware"
	"air-quality-dashboard/internal/registry"
	"air-quality-dashboard/internal/telemetry"
	"air-quality-dashboard/internal/ws"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(cfg *config.Config, reg *registry.Registry, gen *telemetry.Generator, controller *dashboard.Controller, hub *ws.Hub) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware in order: recovery, request ID, logging, security headers,
	// CORS, request size limit, general rate limit.
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(1 << 20))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	router.GET("/ws", ws.ServeWS(hub))

	deviceHandler := handler.NewDeviceHandler(reg, gen)
	dashboardHandler := handler.NewDashboardHandler(controller, reg, gen, cfg.Dashboard.HistoryDays)

	v1 := router.Group("/api/v1")
	{
		deviceHandler.RegisterRoutes(v1)
		dashboardHandler.RegisterRoutes(v1)
	}

	logger.Info("All routes initialized")
	return router
}
