package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tripwing/tripwing/api"
	"github.com/tripwing/tripwing/config"
	"github.com/tripwing/tripwing/flights"
	"github.com/tripwing/tripwing/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Init(logger.Config{Level: "info", Format: "text"})
		logger.Fatal(err, "Failed to load configuration")
	}

	logger.Init(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	// Initialize the upstream session. This performs one request against
	// www.google.com to pick up cookies.
	session, err := flights.New(flights.Options{
		Proxy:    cfg.Fetch.Proxy,
		Timeout:  cfg.Fetch.Timeout,
		RetryMax: cfg.Fetch.RetryMax,
	})
	if err != nil {
		logger.Fatal(err, "Failed to initialize flights session")
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize API router
	router := gin.New()
	api.RegisterRoutes(router, session, cfg)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPBindAddr + ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(err, "Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal(err, "Server forced to shutdown")
	}

	logger.Info("Server exited properly")
}
