package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pocketbase/pocketbase/core"

	"freightcalc/services"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app core.App, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// withViewer attaches a resolved viewer to the request, as ViewerMiddleware would.
func withViewer(req *http.Request, viewer services.Viewer) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), ViewerKey, viewer))
}

var (
	adminViewer    = services.Viewer{Email: "ops@example.com", Name: "Ops Lead", Role: services.RoleAdmin}
	businessViewer = services.Viewer{Email: "sales@example.com", Name: "Sales Rep", Role: services.RoleBusiness}
)

// testRates serves China/Shanghai by air only and India/Mumbai by air and sea.
func testRates() services.StaticRates {
	return services.StaticRates{Table: services.NewRateTable([]services.RateEntry{
		{Mode: services.ModeAir, Route: services.Route{Country: "China", Origin: "Shanghai"}, Rate: 3.50},
		{Mode: services.ModeAir, Route: services.Route{Country: "India", Origin: "Mumbai"}, Rate: 4.20},
		{Mode: services.ModeSea, Route: services.Route{Country: "India", Origin: "Mumbai"}, Rate: 85},
	}, "test", time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC))}
}

const quoteBody = `{"items":[
	{"supplier":"Acme Mills","reference":"SQN-1","country":"China","origin":"Shanghai","weight_value":200,"weight_type":"GSM_GRAMS_PER_M2","width":160,"width_unit":"CM"},
	{"supplier":"Delta","reference":"SQN-2","country":"India","origin":"Mumbai","weight_value":200,"weight_type":"GSM_GRAMS_PER_M2","width":160,"width_unit":"CM"}
]}`

func newQuoteRequest(t *testing.T, path, body string, viewer *services.Viewer) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if viewer != nil {
		req = withViewer(req, *viewer)
	}
	return req
}
