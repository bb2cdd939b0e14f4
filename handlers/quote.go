package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"freightcalc/metrics"
	"freightcalc/services"
)

// QuoteRequest is the body accepted by every quote endpoint.
type QuoteRequest struct {
	Items []services.LineItemInput `json:"items"`
}

// QuoteResponse is returned by POST /freight/quotes.
type QuoteResponse struct {
	BatchID       string                 `json:"batch_id"`
	Role          services.Role          `json:"role"`
	GeneratedAt   time.Time              `json:"generated_at"`
	RateSource    string                 `json:"rate_source,omitempty"`
	RatesLoadedAt time.Time              `json:"rates_loaded_at"`
	Results       []services.QuoteResult `json:"results"`
}

// evaluateRequest binds the body, evaluates it against the current rates and
// builds the viewer's summary.
func evaluateRequest(e *core.RequestEvent, rates services.RateProvider) (services.SummaryData, error) {
	viewer, ok := GetViewer(e.Request)
	if !ok {
		return services.SummaryData{}, errUnauthenticated
	}

	var req QuoteRequest
	if err := e.BindBody(&req); err != nil {
		return services.SummaryData{}, fmt.Errorf("%w: %v", errBadRequest, err)
	}

	table, err := rates.Current(e.Request.Context())
	if err != nil {
		metrics.RecordBatch(string(viewer.Role), "unavailable")
		return services.SummaryData{}, err
	}

	results, err := services.Evaluate(viewer.Role, table, req.Items)
	if err != nil {
		metrics.RecordBatch(string(viewer.Role), "invalid")
		return services.SummaryData{}, err
	}
	metrics.RecordBatch(string(viewer.Role), "ok")
	for _, r := range results {
		metrics.RecordItem(string(services.ModeAir), r.AirAvailable)
		metrics.RecordItem(string(services.ModeSea), r.SeaAvailable)
	}

	return services.BuildSummary(viewer, table, results, time.Now()), nil
}

// HandleQuote returns a handler that quotes a batch of line items as JSON.
func HandleQuote(rates services.RateProvider, log *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := evaluateRequest(e, rates)
		if err != nil {
			return respondError(e, log, err)
		}

		results := make([]services.QuoteResult, len(data.Items))
		for i, item := range data.Items {
			results[i] = item.Result
		}

		log.Info("quote: batch evaluated",
			zap.String("batch_id", data.BatchID),
			zap.String("role", string(data.Viewer.Role)),
			zap.Int("items", len(results)),
		)

		return e.JSON(http.StatusOK, QuoteResponse{
			BatchID:       data.BatchID,
			Role:          data.Viewer.Role,
			GeneratedAt:   data.GeneratedAt,
			RateSource:    data.RateSource,
			RatesLoadedAt: data.RatesLoadedAt,
			Results:       results,
		})
	}
}
