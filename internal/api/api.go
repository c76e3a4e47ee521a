package api

import (
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	health_module "github.com/ethanbaker/textcraft/internal/api/modules/health"
	status_module "github.com/ethanbaker/textcraft/internal/api/modules/status"
	"github.com/ethanbaker/textcraft/pkg/session"
	"github.com/ethanbaker/textcraft/pkg/utils"
)

// Start runs the HTTP surface: a liveness probe for the hosting platform
// and a status endpoint reporting live session counts. Blocks until the
// server exits
func Start(cfg *utils.Config, store *session.Store) {
	// Initialized configuration settings
	port := cfg.GetWithDefault("PORT", "8080")

	// Add app level settings/routes
	engine := gin.Default()
	engine.SetTrustedProxies(nil)

	// Add CORS using gin-contrib/cors (https://github.com/gin-contrib/cors for documentation)
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.GetWithDefault("CORS_ALLOWED_ORIGINS", "*"), ","),
		AllowMethods:     []string{"OPTIONS", "GET"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Base group '/api' for all API routes
	baseGroup := engine.Group("/api")

	// Adding custom modules
	health_module.RegisterRoutes(baseGroup)

	status_module.RegisterRoutes(baseGroup)
	status_module.Init(store)

	// Then after performing initial setup, start the server
	if err := engine.Run(":" + port); err != nil {
		log.Fatal("[API-MAIN]: Failed to start server: ", err)
	}
}
