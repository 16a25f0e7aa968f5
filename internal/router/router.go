package router

import (
	"github.com/eskmag/greenpulse/internal/handlers"
	"github.com/eskmag/greenpulse/internal/logging"
	"github.com/eskmag/greenpulse/internal/metrics"
	"github.com/eskmag/greenpulse/internal/middleware"
	"github.com/eskmag/greenpulse/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Setup configures all routes and middlewares. recorder may be nil, in
// which case /metrics is not served.
func Setup(app *fiber.App, logger *logging.Logger, analysisService *services.AnalysisService, recorder *metrics.Recorder) *handlers.Handler {
	h := handlers.New(logger, analysisService)

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,X-Request-ID",
	}))
	app.Use(logging.FiberMiddleware(logger))

	app.Get("/health", h.Health)
	if recorder != nil {
		app.Get("/metrics", adaptor.HTTPHandler(recorder.Handler()))
	}

	v1 := app.Group("/v1")

	// Dataset routes
	v1.Get("/datasets", h.ListDatasets)
	v1.Get("/datasets/:dataset/analysis", h.GetAnalysis)
	v1.Get("/datasets/:dataset/forecast", h.GetForecast)
	v1.Get("/datasets/:dataset/summary", h.GetSummary)

	// Inline series
	v1.Post("/analysis", h.PostAnalysis)

	// 404 handler
	app.Use(h.NotFound)

	return h
}

// New creates a new Fiber app with configuration
func New(logger *logging.Logger, analysisService *services.AnalysisService, recorder *metrics.Recorder) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "GreenPulse",
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	Setup(app, logger, analysisService, recorder)

	return app
}
