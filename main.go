// Package main is the entry point for the shortener service
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pabst/shortener/app/handlers"
	"github.com/pabst/shortener/app/router"
	"github.com/pabst/shortener/app/services"
	businessflow "github.com/pabst/shortener/business_flow"
	"github.com/pabst/shortener/config"
	"github.com/pabst/shortener/models"
	"github.com/pabst/shortener/repository"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Application holds the wired service
type Application struct {
	router    router.Router
	stopFuncs []func()
}

func main() {
	log.Println("Starting shortener service...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg.Logging)

	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app.router.SetupRoutes()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := app.router.Start(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	if cfg.Metrics.Enabled {
		go serveMetrics(cfg.Metrics)
	}

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutting down gracefully...")

	// Stop background workers
	for _, fn := range app.stopFuncs {
		fn()
	}

	if err := app.router.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// setupLogging routes the standard logger to rotating files when configured
func setupLogging(cfg config.LoggingConfig) {
	if cfg.Output == "stdout" {
		return
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	if cfg.Output == "both" {
		log.SetOutput(io.MultiWriter(os.Stdout, rotator))
		return
	}
	log.SetOutput(rotator)
}

// initializeApplication wires repositories, flows, handlers, and the router
func initializeApplication(cfg *config.Config) (*Application, error) {
	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	cache, err := initializeCache(cfg.Cache)
	if err != nil {
		return nil, err
	}

	var stopFuncs []func()
	if cache != nil {
		stopFuncs = append(stopFuncs, startCacheHealthMonitor(context.Background(), cache, 30*time.Second))
	}

	linkRepo := repository.NewLinkRepository(db)
	clickRepo := repository.NewClickRepository(db)

	prober := services.NewHTTPProber(cfg.Prober.Timeout, cfg.Prober.MaxBodyBytes)

	shortenFlow := businessflow.NewShortenFlow(linkRepo, prober, cfg.Shortener.MinVanityLength, cfg.Shortener.URLsPerHour)
	visitFlow := businessflow.NewVisitFlow(linkRepo, clickRepo, cache, cfg.Cache.DefaultTTL)
	lookupFlow := businessflow.NewLookupFlow(linkRepo, cfg.Shortener.RootURL)
	statsFlow := businessflow.NewStatsFlow(linkRepo, cfg.Shortener.RootURL)

	linkHandler := handlers.NewLinkHandler(shortenFlow, visitFlow, lookupFlow, cfg.Shortener.RootURL)
	statsHandler := handlers.NewStatsHandler(statsFlow, cfg.Shortener.RootURL)

	return &Application{
		router:    router.NewFiberRouter(linkHandler, statsHandler, cfg.Server.ProxyHeader),
		stopFuncs: stopFuncs,
	}, nil
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := db.AutoMigrate(&models.Link{}, &models.Click{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	log.Printf("Database connection established with %d max open connections, %d max idle connections",
		cfg.MaxOpenConns, cfg.MaxIdleConns)

	return db, nil
}

// initializeCache initializes the Redis client and verifies connectivity.
// Caching is optional; a nil client disables it.
func initializeCache(cfg config.CacheConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Redis connection established to %s", cfg.RedisURL)
	return rc, nil
}

// startCacheHealthMonitor starts a background goroutine that periodically pings Redis
// to detect connectivity issues. The returned cancel function stops the monitor.
func startCacheHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration) func() {
	monitorCtx, cancel := context.WithCancel(parent)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(context.Background(), 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					log.Printf("Redis healthcheck failed: %v", err)
				}
				c()
			}
		}
	}()
	return cancel
}

// serveMetrics exposes Prometheus metrics on a dedicated port
func serveMetrics(cfg config.MetricsConfig) {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.Handler())

	address := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Metrics server starting on %s%s", address, cfg.Path)
	if err := http.ListenAndServe(address, mux); err != nil {
		log.Printf("Metrics server stopped: %v", err)
	}
}
