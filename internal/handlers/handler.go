package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/varunpaulreddy/JEDT/internal/logger"
	"github.com/varunpaulreddy/JEDT/internal/service"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health and metrics endpoints
	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// WebSocket telemetry stream (HTTP upgrade) on the same port
	router.GET("/ws", h.wsTelemetry)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.operatorIdMiddleware)
	{
		h.registerEngineRoutes(api)
		h.registerMaintenanceRoutes(api)
	}
}

func (h *Handler) registerEngineRoutes(api *gin.RouterGroup) {
	engines := api.Group("/engines")
	{
		engines.GET("", h.listEngines)
		engines.GET("/:id", h.getEngine)
		engines.GET("/:id/telemetry", h.getTelemetry)
		engines.GET("/:id/assessment", h.getAssessment)
		engines.GET("/:id/performance", h.getPerformance)
		engines.GET("/:id/history", h.getHistory)
		engines.GET("/:id/components", h.getComponents)
	}
}

func (h *Handler) registerMaintenanceRoutes(api *gin.RouterGroup) {
	maintenance := api.Group("/maintenance")
	{
		maintenance.GET("", h.listMaintenance)
		maintenance.POST("", h.recordMaintenance)
	}
}
