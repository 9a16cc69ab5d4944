package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mongodeck/config"
	"mongodeck/internal/apis/routes"
	"mongodeck/internal/di"
	"mongodeck/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load environment variables
	err := config.LoadEnv()
	if err != nil {
		log.Fatalf("Failed to load environment variables: %v", err)
	}

	// Initialize dependencies
	di.Initialize()

	// Setup Gin
	ginApp := gin.New()

	// Add custom recovery middleware
	ginApp.Use(middleware.CustomRecoveryMiddleware())

	// Add request id and logging middleware
	ginApp.Use(middleware.RequestIDMiddleware())
	ginApp.Use(gin.Logger())

	// Add security headers
	ginApp.Use(middleware.SecurityHeaders())

	// Add CORS middleware
	ginApp.Use(cors.New(cors.Config{
		AllowOrigins: []string{config.Env.CorsAllowedOrigin},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"User-Agent",
			"X-Request-ID",
		},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupDefaultRoutes(ginApp)

	// When a URI is configured, keep retrying the connection until the
	// deployment becomes reachable. Shares the manager's single slot with
	// the /api/connect endpoint.
	autoConnectCtx, cancelAutoConnect := context.WithCancel(context.Background())
	manager, err := di.GetManager()
	if err != nil {
		log.Fatalf("Failed to get connection manager: %v", err)
	}
	if config.Env.MongoURI != "" {
		go manager.AutoConnect(autoConnectCtx, config.Env.MongoURI, config.Env.MongoDatabaseName)
	}

	// Create server
	srv := &http.Server{
		Addr:    ":" + config.Env.Port,
		Handler: ginApp,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", config.Env.Port)
		log.Printf("Mongodeck running in %s mode", config.Env.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Mongodeck failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Mongodeck is shutting down...")
	cancelAutoConnect()

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Mongodeck forced to shutdown: %v", err)
	}

	// Release the database connection last
	if err := manager.Disconnect(ctx); err != nil {
		log.Printf("Error disconnecting from MongoDB during shutdown: %v", err)
	}

	log.Println("Mongodeck has been shut down successfully")
}
