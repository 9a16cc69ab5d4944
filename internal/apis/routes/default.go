package routes

import (
	"net/http"

	"mongodeck/config"
	"mongodeck/internal/apis/dtos"
	"mongodeck/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupDefaultRoutes(router *gin.Engine) {
	// Add recovery middleware
	router.Use(middleware.CustomRecoveryMiddleware())

	// Health check route; never touches the database
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dtos.Response{
			Success: true,
			Data:    "Server is healthy!",
		})
	})

	// Serve the console UI when a static directory is configured
	if config.Env.StaticDir != "" {
		router.Static("/console", config.Env.StaticDir)
	}

	// Setup all route groups
	SetupAdminRoutes(router)
}
