package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"commission-backend/internal/shared/middleware"
	"commission-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", healthCheckHandler(c))

		setupPublicRoutes(v1, c)
		setupAuthenticatedRoutes(v1, c)
		setupClientRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

// ========================================
// PUBLIC ROUTES (no auth)
// ========================================
func setupPublicRoutes(v1 *gin.RouterGroup, c *container.Container) {
	c.UserHandler.RegisterPublicRoutes(v1)
	c.GalleryHandler.RegisterPublicRoutes(v1)
	c.FaqHandler.RegisterPublicRoutes(v1)
	c.ContactHandler.RegisterPublicRoutes(v1)
}

// ========================================
// AUTHENTICATED ROUTES (any logged-in actor)
// ========================================
func setupAuthenticatedRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authed := v1.Group("")
	authed.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		c.UserHandler.RegisterAccountRoutes(authed)
		c.NotificationHandler.RegisterRoutes(authed)
	}
}

// ========================================
// CLIENT ROUTES (own orders)
// ========================================
func setupClientRoutes(v1 *gin.RouterGroup, c *container.Container) {
	client := v1.Group("")
	client.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		c.CommissionHandler.RegisterClientRoutes(client)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		c.CommissionHandler.RegisterAdminRoutes(admin)
		c.SettingsHandler.RegisterRoutes(admin, v1)
		c.UserHandler.RegisterAdminRoutes(admin)
		c.GalleryHandler.RegisterAdminRoutes(admin)
		c.FaqHandler.RegisterAdminRoutes(admin)
		c.ContactHandler.RegisterAdminRoutes(admin)
		c.ReportHandler.RegisterRoutes(admin)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "UP"
		if err := c.DB.HealthCheck(checkCtx); err != nil {
			dbStatus = "DOWN"
		}

		redisStatus := "UP"
		if err := c.Redis.HealthCheck(checkCtx); err != nil {
			redisStatus = "DOWN"
		}

		status := http.StatusOK
		if dbStatus == "DOWN" {
			status = http.StatusServiceUnavailable
		}

		ctx.JSON(status, gin.H{
			"status":      "UP",
			"service":     c.Config.App.Name,
			"version":     c.Config.App.Version,
			"environment": c.Config.App.Environment,
			"database":    dbStatus,
			"redis":       redisStatus,
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}
