package main

import (
	"context"
	"time"

	"codeberg.org/wcorrea/apierror/api/rest/health"
	"codeberg.org/wcorrea/apierror/api/rest/middleware"
	"codeberg.org/wcorrea/apierror/api/rest/orders"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(
		CORSMiddleware(server.config.CORSOrigins),
		middleware.RequestID(),
		middleware.Metrics(server.registry),
		server.responder.Recovery(),
		server.responder.Middleware(),
	)

	router.NoRoute(server.responder.NoRoute)

	router.GET("/health", health.Handler)
	router.GET("/ready", health.ReadyHandler(server.readinessChecks()))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(server.registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	v1.Use(server.responder.RateLimit(server.limiter))

	{
		v1.GET("/ping", health.PingHandler)

		orders.RegisterRoutes(v1, server.orders)
	}
}

// allows every origin when none are configured
func CORSMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept-Language", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}

	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}

	return cors.New(cfg)
}

func (s *Server) readinessChecks() map[string]health.Check {
	checks := map[string]health.Check{}

	if s.db != nil {
		checks["database"] = s.db.Ping
	}

	if s.redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return s.redis.Ping(ctx).Err()
		}
	}

	return checks
}
