// Package router provides HTTP routing, middleware configuration, and server setup for the web application
package router

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
	"github.com/pabst/shortener/app/dto"
	"github.com/pabst/shortener/app/handlers"
	"github.com/pabst/shortener/app/middleware"
	"github.com/pabst/shortener/utils"
)

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	Shutdown() error
	GetApp() *fiber.App
}

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app          *fiber.App
	linkHandler  handlers.LinkHandlerInterface
	statsHandler handlers.StatsHandlerInterface
}

// NewFiberRouter creates a new Fiber router. proxyHeader may be empty
// when the service is not behind a reverse proxy.
func NewFiberRouter(
	linkHandler handlers.LinkHandlerInterface,
	statsHandler handlers.StatsHandlerInterface,
	proxyHeader string,
) Router {
	app := fiber.New(fiber.Config{
		AppName:      "Shortener API",
		ServerHeader: "Shortener",
		BodyLimit:    64 * 1024,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		ProxyHeader:  proxyHeader,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	return &FiberRouter{
		app:          app,
		linkHandler:  linkHandler,
		statsHandler: statsHandler,
	}
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	log.Println("Setting up routes...")

	r.setupMiddleware()

	r.app.Get("/health", r.healthCheck)

	r.app.Get("/shorten", r.linkHandler.ShortenPage)
	r.app.Post("/add", r.linkHandler.Add)
	r.app.Get("/whatis/:segment", r.linkHandler.WhatIs)

	r.app.Get("/stats", r.statsHandler.Page)
	r.app.Get("/stats/json", r.statsHandler.JSON)
	r.app.Get("/stats/export", r.statsHandler.Export)

	// Catch-all segment resolution, must stay last
	r.app.Get("/:segment", r.linkHandler.Visit)

	log.Println("Routes configured successfully")
}

// setupMiddleware configures global middleware
func (r *FiberRouter) setupMiddleware() {
	// Request ID middleware - must be first
	r.app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return uuid.NewString()
		},
	}))

	// Security headers middleware
	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	r.app.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{
			"X-Request-ID",
		},
	}))

	r.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	r.app.Use(middleware.Metrics())

	r.app.Use(logger.New(logger.Config{
		Format:     `{"time":"${time}","pid":"${pid}","request_id":"${locals:requestid}","level":"info","method":"${method}","path":"${path}","ip":"${ip}","user_agent":"${ua}","status":${status},"latency":"${latency}","referer":"${referer}"}` + "\n",
		TimeFormat: time.RFC3339,
		TimeZone:   "UTC",
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))

	// Recovery middleware with custom error handling
	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			log.Printf(`{"time":"%s","level":"error","request_id":"%s","event":"panic","error":"%v","path":"%s","method":"%s","ip":"%s"}`,
				utils.UTCNow().Format(time.RFC3339),
				c.Locals("requestid"),
				e,
				c.Path(),
				c.Method(),
				c.IP(),
			)
		},
	}))

	// Transport-level throttle in front of the per-IP business quota
	r.app.Use(limiter.New(limiter.Config{
		Max:        2000,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse(
				"Too many requests. Please try again later.", "RATE_LIMIT_EXCEEDED", nil))
		},
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
}

// Start starts the HTTP server
func (r *FiberRouter) Start(address string) error {
	log.Printf("Starting server on %s", address)
	return r.app.Listen(address)
}

// Shutdown gracefully stops the HTTP server
func (r *FiberRouter) Shutdown() error {
	return r.app.Shutdown()
}

// GetApp returns the Fiber app instance
func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

// Health check endpoint
func (r *FiberRouter) healthCheck(c fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse("Service is healthy", fiber.Map{
		"status":    "ok",
		"timestamp": utils.UTCNow().Unix(),
		"service":   "shortener",
	}))
}
