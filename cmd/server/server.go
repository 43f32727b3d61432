package main

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/wcorrea/apierror/api/rest/middleware"
	"codeberg.org/wcorrea/apierror/internal/apierror"
	"codeberg.org/wcorrea/apierror/internal/config"
	"codeberg.org/wcorrea/apierror/internal/i18n"
	"codeberg.org/wcorrea/apierror/internal/logger"
	"codeberg.org/wcorrea/apierror/library/orders"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
	"golang.org/x/text/language"
)

const (
	// bounds every dependency check done while starting up
	startupTimeout = 10 * time.Second

	limiterPrefix = "apierror:limiter"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	server := &Server{
		config:   cfg,
		registry: prometheus.NewRegistry(),
	}

	server.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if err := server.connect(ctx); err != nil {
		server.Close()
		return nil, err
	}

	bundle, err := server.loadMessages(ctx)
	if err != nil {
		server.Close()
		return nil, err
	}

	classifier := apierror.New(bundle,
		apierror.WithLogger(logger.Default()),
		apierror.WithMetrics(server.registry),
	)
	server.responder = middleware.NewResponder(classifier, i18n.NewMatcher(bundle.Tags()...))

	if server.limiter, err = server.newLimiter(); err != nil {
		server.Close()
		return nil, err
	}

	if server.orders, err = server.newOrders(ctx); err != nil {
		server.Close()
		return nil, err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// validation messages name fields the way clients send them
	middleware.UseJSONFieldNames()

	server.router = gin.New()
	RegisterRoutes(server.router, server)

	return server, nil
}

// opens the optional PostgreSQL pool and Redis client
func (s *Server) connect(ctx context.Context) error {
	if s.config.DatabaseURL != "" {
		poolConfig, err := pgxpool.ParseConfig(s.config.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to parse database config: %w", err)
		}

		poolConfig.MaxConns = 10
		poolConfig.MinConns = 1
		poolConfig.MaxConnLifetime = 30 * time.Minute
		poolConfig.MaxConnIdleTime = 5 * time.Minute
		poolConfig.HealthCheckPeriod = 1 * time.Minute

		db, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return fmt.Errorf("failed to create database pool: %w", err)
		}

		s.db = db

		if err := db.Ping(ctx); err != nil {
			return fmt.Errorf("failed to ping database: %w", err)
		}

		logger.Info("connected to postgres")
	}

	if s.config.RedisURL != "" {
		opts, err := redis.ParseURL(s.config.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to parse redis url: %w", err)
		}

		s.redis = redis.NewClient(opts)

		if err := s.redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}

		logger.Info("connected to redis")
	}

	return nil
}

// builds the message bundle: embedded catalog, MESSAGES_DIR files, then Redis overrides
func (s *Server) loadMessages(ctx context.Context) (*i18n.Bundle, error) {
	fallback := language.MustParse(s.config.DefaultLocale)

	bundle, err := i18n.Load(fallback, s.config.MessagesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}

	if s.redis != nil {
		overrides, err := i18n.LoadRedisOverrides(ctx, s.redis, i18n.DefaultRedisPrefix, bundle.Tags())
		if err != nil {
			// the embedded catalog is complete on its own
			logger.ErrorErr(err, "failed to load message overrides, continuing with catalog files")
		} else {
			bundle = bundle.With(overrides)
		}
	}

	logger.Info("messages loaded",
		"default_locale", bundle.Fallback().String(),
		"locales", len(bundle.Tags()),
	)

	return bundle, nil
}

// shares limits across instances through Redis when available
func (s *Server) newLimiter() (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(s.config.RateLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit: %w", err)
	}

	if s.redis == nil {
		logger.Debug("rate limiter using memory store", "rate", s.config.RateLimit)
		return limiter.New(memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: limiterPrefix}), rate), nil
	}

	logger.Debug("rate limiter using redis store", "rate", s.config.RateLimit)

	store, err := sredis.NewStoreWithOptions(s.redis, limiter.StoreOptions{Prefix: limiterPrefix})
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit store: %w", err)
	}

	return limiter.New(store, rate), nil
}

func (s *Server) newOrders(ctx context.Context) (*orders.Service, error) {
	if s.db == nil {
		logger.Warn("DATABASE_URL not set, orders are kept in memory")
		return orders.NewService(orders.NewMemoryRepository()), nil
	}

	repo := orders.NewPostgresRepository(s.db)
	if err := repo.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize orders schema: %w", err)
	}

	return orders.NewService(repo), nil
}

// releases the database pool and Redis connection
func (s *Server) Close() {
	if s.redis != nil {
		s.redis.Close() //nolint:errcheck,gosec // best-effort cleanup on shutdown
	}

	if s.db != nil {
		s.db.Close()
	}
}
