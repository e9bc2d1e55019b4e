package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tripwing/tripwing/config"
	"github.com/tripwing/tripwing/pkg/buildinfo"
	"github.com/tripwing/tripwing/pkg/middleware"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, searcher Searcher, cfg *config.Config) {
	// Setup middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "build": buildinfo.Info()})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(middleware.APIAuth(cfg.Auth))
	{
		// Flight search routes
		v1.POST("/search", CreateSearch(searcher, cfg))
		v1.POST("/search/url", GetSearchURL(cfg))
	}
}
