package routes

import (
	"log"

	"mongodeck/config"
	"mongodeck/internal/di"
	"mongodeck/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAdminRoutes(router *gin.Engine) {
	connectionHandler, err := di.GetConnectionHandler()
	if err != nil {
		log.Fatalf("Failed to get connection handler: %v", err)
	}

	collectionHandler, err := di.GetCollectionHandler()
	if err != nil {
		log.Fatalf("Failed to get collection handler: %v", err)
	}

	rateLimiter := middleware.NewRateLimiter(config.Env.RateLimitRPS, config.Env.RateLimitBurst)

	api := router.Group("/api")
	api.Use(rateLimiter.Middleware())
	{
		// Connection lifecycle
		api.POST("/connect", connectionHandler.Connect)
		api.POST("/disconnect", connectionHandler.Disconnect)
		api.GET("/connection-status", connectionHandler.Status)
		api.GET("/stats", connectionHandler.Stats)

		// Collection browsing
		api.GET("/collections", collectionHandler.List)
		api.GET("/collections/:name", collectionHandler.Browse)
		api.GET("/collections/:name/docs/:id", collectionHandler.GetOne)

		// Mutations
		api.PUT("/collections/:name/docs/:id", collectionHandler.Update)
		api.DELETE("/collections/:name/docs/:id", collectionHandler.Delete)
		api.POST("/collections/:name/bulk-delete", collectionHandler.BulkDelete)
		api.POST("/collections/:name/prune", collectionHandler.Prune)
	}
}
