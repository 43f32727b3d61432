package main

import (
	"codeberg.org/wcorrea/apierror/api/rest/middleware"
	"codeberg.org/wcorrea/apierror/internal/config"
	"codeberg.org/wcorrea/apierror/library/orders"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
)

// holds all dependencies and state for the API server
type Server struct {
	db        *pgxpool.Pool // nil when running on the in-memory repository
	redis     *redis.Client // nil when REDIS_URL is not set
	config    *config.Config
	orders    *orders.Service
	responder *middleware.Responder
	limiter   *limiter.Limiter
	registry  *prometheus.Registry
	router    *gin.Engine
}
