package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "docbridge/docs"
	"docbridge/internal/config"
	"docbridge/internal/handler"
	"docbridge/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	nodeH *handler.NodeHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Node execution routes - bearer auth when a secret is configured
	v1 := r.Group("/api/v1")
	v1.Use(middleware.BearerAuth(cfg.Auth.Secret))

	nodes := v1.Group("/nodes")
	nodes.GET("", nodeH.List)
	nodes.POST("/ocr", nodeH.ExecuteOCR)
	nodes.POST("/converse", nodeH.ExecuteConverse)

	return r
}
