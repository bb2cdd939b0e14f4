package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestHTTPWorkbookSource_Fetch(t *testing.T) {
	workbook := rateWorkbook(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rates.xlsx" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Write(workbook)
	}))
	defer srv.Close()

	src := &HTTPWorkbookSource{URL: srv.URL + "/rates.xlsx", Client: srv.Client(), Log: zap.NewNop()}
	table, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if rate, ok := table.Lookup(ModeAir, "China", "Shanghai", "UK"); !ok || rate != 3.5 {
		t.Errorf("Lookup() = (%v, %v)", rate, ok)
	}
	if table.Source != src.URL {
		t.Errorf("Source = %q, want %q", table.Source, src.URL)
	}

	missing := &HTTPWorkbookSource{URL: srv.URL + "/missing.xlsx", Client: srv.Client(), Log: zap.NewNop()}
	if _, err := missing.Fetch(context.Background()); err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestHTTPWorkbookSource_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &HTTPWorkbookSource{URL: srv.URL, Client: srv.Client(), Log: zap.NewNop()}
	if _, err := src.Fetch(ctx); err == nil {
		t.Error("expected error for canceled context")
	}
}

func TestFileWorkbookSource_Fetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.xlsx")
	if err := os.WriteFile(path, rateWorkbook(t), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	table, err := (&FileWorkbookSource{Path: path, Log: zap.NewNop()}).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if table.RouteCount(ModeSea) != 1 {
		t.Errorf("sea routes = %d, want 1", table.RouteCount(ModeSea))
	}

	if _, err := (&FileWorkbookSource{Path: path + ".missing"}).Fetch(context.Background()); err == nil {
		t.Error("expected error for missing file")
	}
}
