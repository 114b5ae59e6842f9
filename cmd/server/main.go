package main

import (
	"legal_editor_app_go/config"
	"legal_editor_app_go/handlers"
	"legal_editor_app_go/middleware"
	"legal_editor_app_go/services"
	"legal_editor_app_go/services/i18n"
	"legal_editor_app_go/services/jobs"
	"legal_editor_app_go/services/pagination"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Fail fast on an impossible page geometry
	if _, err := pagination.LayoutForPageSize(cfg.PageSize); err != nil {
		log.Fatalf("Invalid page layout: %v", err)
	}

	// Load translations
	if err := i18n.Load(); err != nil {
		log.Fatalf("Failed to load translations: %v", err)
	}

	// Initialize export storage (R2 or local)
	services.InitializeStorage(cfg)

	// Initialize content measurer
	measurer, closeMeasurer, err := services.NewMeasurer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize measurer: %v", err)
	}
	defer closeMeasurer()

	services.Documents = services.NewDocumentService(measurer, cfg.MeasureDelay, cfg.PageSize)
	services.Documents.MeasureTimeout = cfg.MeasureTimeout
	services.Documents.Debug = cfg.PaginationDebug

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(echomiddleware.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})
	e.Use(middleware.Locale(cfg))
	e.Use(middleware.CSPNonce())

	// Static files
	e.Static("/static", "static")

	e.GET("/healthz", handlers.HealthHandler)
	e.GET("/", handlers.NewDocumentHandler)
	e.GET("/exports/*", handlers.ServeExportHandler)

	contentLimiter := middleware.ContentChangeRateLimiter(cfg.UpdateRateLimit)
	measurementLimiter := middleware.MeasurementRateLimiter(cfg.MeasurementRateLimit)

	documents := e.Group("/documents/:id")
	{
		documents.GET("", handlers.EditorHandler)
		documents.PUT("/content", handlers.UpdateContentHandler, contentLimiter.Middleware())
		documents.POST("/measurements", handlers.ReportMeasurementHandler, measurementLimiter.Middleware())
		documents.PUT("/title", handlers.UpdateTitleHandler)
		documents.GET("/pages", handlers.GetPagesHandler)
		documents.GET("/pages/view", handlers.PagesViewHandler)
		documents.GET("/print", handlers.PrintHandler)
		documents.GET("/export", handlers.ExportHandler)
	}

	// Start background cleanup job (runs every hour)
	stopCleanup := jobs.StartSessionCleanup(services.Documents, services.Storage, 1*time.Hour, jobs.DefaultSessionIdleTimeout)
	defer stopCleanup()

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
