package main

import (
	"context"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"freightcalc/collections"
	"freightcalc/commands"
	"freightcalc/config"
	"freightcalc/handlers"
	"freightcalc/logging"
	"freightcalc/services"
)

func main() {
	cfg := config.Load()
	logger := logging.MustInstall(logging.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Development: cfg.Development(),
		Fields:      map[string]string{"app": "freightcalc", "env": cfg.AppEnv},
	})
	defer logger.Sync()

	app := pocketbase.New()
	app.RootCmd.AddCommand(commands.NewRatesCommand(app))

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(se.App)
		if cfg.SeedDemoRates {
			if n, err := collections.SeedDemoRates(se.App); err != nil {
				logger.Warn("seed: demo rates failed", zap.Error(err))
			} else if n > 0 {
				logger.Info("seed: demo rates inserted", zap.Int("routes", n))
			}
		}
		if _, err := collections.MigrateUsersWithoutRole(se.App); err != nil {
			logger.Warn("migrate: user roles failed", zap.Error(err))
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		rates := newRateCache(cfg, se.App, logger)

		warmCtx, cancel := context.WithTimeout(context.Background(), cfg.RateFetchTimeout)
		if _, err := rates.Refresh(warmCtx); err != nil {
			logger.Warn("rates: initial load failed, quotes will retry on demand", zap.Error(err))
		}
		cancel()

		// ── Freight quoting ──────────────────────────────────────
		freight := se.Router.Group("/freight")
		freight.BindFunc(handlers.ViewerMiddleware(logger))

		freight.GET("/options", handlers.HandleOptions(rates, logger))
		freight.POST("/quotes", handlers.HandleQuote(rates, logger))
		freight.POST("/quotes/preview", handlers.HandleQuotePreview(rates, logger))
		freight.POST("/quotes/text", handlers.HandleQuoteText(rates, logger))
		freight.POST("/quotes/export/excel", handlers.HandleQuoteExportExcel(rates, logger))
		freight.POST("/quotes/export/pdf", handlers.HandleQuoteExportPDF(rates, logger))

		// ── Rate administration ──────────────────────────────────
		freight.POST("/rates/refresh", handlers.HandleRatesRefresh(rates, logger)).
			BindFunc(handlers.AdminOnly())

		se.Router.GET("/metrics", handlers.HandleMetrics())

		return se.Next()
	})

	if err := app.Start(); err != nil {
		logger.Fatal("app stopped", zap.Error(err))
	}
}

// newRateCache wires the configured workbook source to the stored snapshot.
// Without a source the cache serves whatever snapshot is stored.
func newRateCache(cfg config.Config, app core.App, logger *zap.Logger) *services.RateCache {
	var source services.RateSource
	switch {
	case cfg.RateSheetURL != "":
		source = &services.HTTPWorkbookSource{
			URL:    cfg.RateSheetURL,
			Client: &http.Client{Timeout: cfg.RateFetchTimeout},
			Log:    logger,
		}
	case cfg.RateSheetPath != "":
		source = &services.FileWorkbookSource{Path: cfg.RateSheetPath, Log: logger}
	default:
		logger.Info("rates: no workbook configured, serving the stored snapshot")
	}

	return services.NewRateCache(services.RateCacheOptions{
		Source:      source,
		Snapshot:    &services.RecordStore{App: app},
		TTL:         cfg.RateRefreshInterval,
		LoadTimeout: cfg.RateFetchTimeout,
		Logger:      logger,
	})
}
