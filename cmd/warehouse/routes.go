package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"warehouse-system/config"
	"warehouse-system/internal/gateway/clients"
	"warehouse-system/internal/gateway/handlers"
	"warehouse-system/internal/gateway/middleware"
	"warehouse-system/internal/metrics"
	"warehouse-system/internal/services/user"
)

type routerDeps struct {
	cfg       config.Config
	logger    *zap.Logger
	auth      *user.AuthService
	inventory *handlers.InventoryHTTPHandler
	users     *handlers.AuthHTTPHandler
	// optional
	grpcClient *clients.InventoryClient
	redis      *redis.Client
}

func newRouter(d routerDeps) (*gin.Engine, error) {
	limit, err := middleware.RateLimit(d.cfg.RateLimit)
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(middleware.Recovery(d.logger))
	r.Use(middleware.Logger(d.logger))
	r.Use(middleware.CORS(d.cfg.HTTP.CORSAllowedOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.Metrics())

	r.GET("/health", healthCheckHandler)
	r.GET("/health/detailed", detailedHealthCheckHandler(d.grpcClient, d.redis))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api/v1", limit)

	// --- Public API Group ---
	api.POST("/auth/login", d.users.Login)

	// --- Protected API Group ---
	protected := api.Group("", middleware.JWTAuth(d.auth))
	{
		auth := protected.Group("/auth")
		auth.POST("/logout", d.users.Logout)
		auth.GET("/me", d.users.Me)
		auth.POST("/refresh", d.users.Refresh)

		d.inventory.Register(protected.Group("/products"))
		d.inventory.Register(protected.Group("/inventory/products"))
	}

	return r, nil
}

func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

func detailedHealthCheckHandler(grpcClient *clients.InventoryClient, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		services := map[string]string{
			"grpc":  checkStatus(grpcClient != nil, func() bool { return grpcClient.IsHealthy(ctx) }),
			"redis": checkStatus(rdb != nil, func() bool { return rdb.Ping(ctx).Err() == nil }),
		}

		overallStatus := "healthy"
		for _, s := range services {
			if s == "unhealthy" {
				overallStatus = "degraded"
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"overall_status": overallStatus,
			"services":       services,
			"timestamp":      time.Now().UTC(),
		})
	}
}

func checkStatus(enabled bool, healthy func() bool) string {
	switch {
	case !enabled:
		return "disabled"
	case healthy():
		return "healthy"
	default:
		return "unhealthy"
	}
}
