package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"freightcalc/metrics"
	"freightcalc/services"
	"freightcalc/templates"
)

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

func exportFilename(data services.SummaryData, ext string) string {
	return fmt.Sprintf("Freight_Quote_%s_%s.%s",
		sanitizeFilename(data.Viewer.DisplayName()),
		data.GeneratedAt.Format("2006-01-02"),
		ext)
}

// HandleQuoteExportExcel returns a handler that quotes the posted items and
// downloads the summary as an Excel workbook.
func HandleQuoteExportExcel(rates services.RateProvider, log *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := evaluateRequest(e, rates)
		if err != nil {
			return respondError(e, log, err)
		}

		xlsxBytes, err := services.GenerateExcel(data)
		if err != nil {
			log.Error("export_excel: failed to generate", zap.Error(err))
			return writeError(e, http.StatusInternalServerError, "export_failed", "Failed to generate Excel file.", nil)
		}
		metrics.RecordExport("xlsx")

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename(data, "xlsx")))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleQuoteExportPDF returns a handler that quotes the posted items and
// downloads the summary as a PDF.
func HandleQuoteExportPDF(rates services.RateProvider, log *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := evaluateRequest(e, rates)
		if err != nil {
			return respondError(e, log, err)
		}

		pdfBytes, err := services.GeneratePDF(data)
		if err != nil {
			log.Error("export_pdf: failed to generate", zap.Error(err))
			return writeError(e, http.StatusInternalServerError, "export_failed", "Failed to generate PDF file.", nil)
		}
		metrics.RecordExport("pdf")

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename(data, "pdf")))
		e.Response.Write(pdfBytes)
		return nil
	}
}

// HandleQuoteText returns a handler that renders the summary as plain text
// for pasting into an email.
func HandleQuoteText(rates services.RateProvider, log *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := evaluateRequest(e, rates)
		if err != nil {
			return respondError(e, log, err)
		}
		metrics.RecordExport("text")
		return e.String(http.StatusOK, services.GenerateText(data))
	}
}

// HandleQuotePreview returns a handler that renders the HTML email preview.
func HandleQuotePreview(rates services.RateProvider, log *zap.Logger) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := evaluateRequest(e, rates)
		if err != nil {
			return respondError(e, log, err)
		}
		metrics.RecordExport("html")

		e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
		return templates.QuotePreview(data).Render(e.Request.Context(), e.Response)
	}
}
