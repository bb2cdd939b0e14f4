package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"freightcalc/services"
)

// RateRefresher is implemented by rate providers that can reload on demand.
type RateRefresher interface {
	Refresh(ctx context.Context) (*services.RateTable, error)
}

// RefreshResponse is returned by POST /freight/rates/refresh.
type RefreshResponse struct {
	Source           string    `json:"source"`
	LoadedAt         time.Time `json:"loaded_at"`
	AirRoutes        int       `json:"air_routes"`
	SeaRoutes        int       `json:"sea_routes"`
	DestinationAware bool      `json:"destination_aware"`
}

// HandleOptions returns a handler listing the countries, origins and
// destinations the current rate table serves, plus the static form choices.
func HandleOptions(rates services.RateProvider, log *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		table, err := rates.Current(e.Request.Context())
		if err != nil {
			return respondError(e, log, err)
		}
		return e.JSON(http.StatusOK, services.BuildRateOptions(table))
	}
}

// HandleRatesRefresh returns a handler that forces a rate table reload.
func HandleRatesRefresh(rates RateRefresher, log *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		table, err := rates.Refresh(e.Request.Context())
		if err != nil {
			log.Warn("rates: manual refresh failed", zap.Error(err))
			SetToast(e, log, "error", "Rate refresh failed; the previous rates remain in use.")
			return writeError(e, http.StatusBadGateway, "refresh_failed", "Could not reload freight rates.", err.Error())
		}

		viewer, _ := GetViewer(e.Request)
		log.Info("rates: manual refresh",
			zap.String("by", viewer.Email),
			zap.String("source", table.Source),
		)

		resp := RefreshResponse{
			Source:           table.Source,
			LoadedAt:         table.LoadedAt,
			AirRoutes:        table.RouteCount(services.ModeAir),
			SeaRoutes:        table.RouteCount(services.ModeSea),
			DestinationAware: table.DestinationAware(),
		}
		SetToast(e, log, "success", fmt.Sprintf("Loaded %d air and %d sea routes.", resp.AirRoutes, resp.SeaRoutes))
		return e.JSON(http.StatusOK, resp)
	}
}

// HandleMetrics exposes Prometheus metrics.
func HandleMetrics() func(*core.RequestEvent) error {
	h := promhttp.Handler()
	return func(e *core.RequestEvent) error {
		h.ServeHTTP(e.Response, e.Request)
		return nil
	}
}
