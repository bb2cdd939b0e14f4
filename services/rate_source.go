package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
)

// maxWorkbookBytes caps the size of a downloaded rate workbook.
const maxWorkbookBytes = 32 << 20

// RateSource loads a fresh rate table from an upstream system.
type RateSource interface {
	Name() string
	Fetch(ctx context.Context) (*RateTable, error)
}

// HTTPWorkbookSource downloads the rate workbook as xlsx, e.g. a spreadsheet
// "export as xlsx" link.
type HTTPWorkbookSource struct {
	URL    string
	Client *http.Client
	Log    *zap.Logger
}

func (s *HTTPWorkbookSource) Name() string { return "http" }

func (s *HTTPWorkbookSource) Fetch(ctx context.Context) (*RateTable, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build rate workbook request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download rate workbook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download rate workbook: unexpected status %d", resp.StatusCode)
	}

	result, err := ParseRateWorkbook(io.LimitReader(resp.Body, maxWorkbookBytes), s.URL)
	if err != nil {
		return nil, err
	}
	logImport(orGlobal(s.Log), s.URL, result)
	return result.Table, nil
}

// FileWorkbookSource reads the rate workbook from a local xlsx file.
type FileWorkbookSource struct {
	Path string
	Log  *zap.Logger
}

func (s *FileWorkbookSource) Name() string { return "file" }

func (s *FileWorkbookSource) Fetch(ctx context.Context) (*RateTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open rate workbook: %w", err)
	}
	defer f.Close()

	result, err := ParseRateWorkbook(f, s.Path)
	if err != nil {
		return nil, err
	}
	logImport(orGlobal(s.Log), s.Path, result)
	return result.Table, nil
}

func logImport(log *zap.Logger, source string, result *ImportResult) {
	log.Info("rate workbook parsed",
		zap.String("source", source),
		zap.Int("sheets", result.Sheets),
		zap.Int("air_routes", result.Table.RouteCount(ModeAir)),
		zap.Int("sea_routes", result.Table.RouteCount(ModeSea)),
		zap.Int("skipped_rows", len(result.Warnings)),
	)
	for _, w := range result.Warnings {
		log.Debug("rate row skipped", zap.String("row", w.String()))
	}
}

func orGlobal(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.L()
	}
	return l
}
