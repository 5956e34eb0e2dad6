package routes

import (
	"net/http"

	"cargo-inspection-dashboard/internal/backend"
	"cargo-inspection-dashboard/internal/config"
	"cargo-inspection-dashboard/internal/delivery/http/handler"
	"cargo-inspection-dashboard/internal/live"
	"cargo-inspection-dashboard/internal/logger"
	"cargo-inspection-dashboard/internal/middleware"
	"cargo-inspection-dashboard/internal/usecase/dashboard"
	"cargo-inspection-dashboard/internal/usecase/incident"
	"cargo-inspection-dashboard/internal/usecase/upload"
	"cargo-inspection-dashboard/internal/usecase/user"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(cfg *config.Config, client *backend.Client, hub *live.Hub) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware in order: recovery, request ID, logging, security
	// headers, CORS, request size limit, general rate limit
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := client.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Detection backend is unreachable",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	incidentService := incident.NewService(client)
	incidentHandler := handler.NewIncidentHandler(incidentService)

	uploadService := upload.NewService(client)
	uploadHandler := handler.NewUploadHandler(uploadService)

	dashboardService := dashboard.NewService(client)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	sessionService := user.NewService(cfg)
	sessionHandler := handler.NewSessionHandler(sessionService)

	liveHandler := handler.NewLiveHandler(hub)

	v1 := router.Group("/api/v1")
	{
		sessionHandler.RegisterRoutes(v1)
		incidentHandler.RegisterRoutes(v1)
		uploadHandler.RegisterRoutes(v1)
		dashboardHandler.RegisterRoutes(v1)
		liveHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.SessionMiddleware(cfg))
		{
			sessionHandler.RegisterProfileRoutes(protected)
		}
	}

	logger.Info("All routes initialized")
	return router
}
