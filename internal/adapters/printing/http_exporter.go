// Package printing adapts an external HTTP PDF rendering service to the
// PDFExporter port.
package printing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/crewpay/crewpay_backend/internal/core/ports/services"
	"github.com/crewpay/crewpay_backend/internal/middleware"
)

const exportTimeout = 60 * time.Second

// HTTPPDFExporter renders check PDFs by POSTing the check ids to an external
// renderer and returning the PDF bytes verbatim.
type HTTPPDFExporter struct {
	rendererURL string
	client      *http.Client
}

var _ portssvc.PDFExporter = (*HTTPPDFExporter)(nil)

// NewHTTPPDFExporter creates an exporter targeting the given renderer base URL.
func NewHTTPPDFExporter(rendererURL string) *HTTPPDFExporter {
	return &HTTPPDFExporter{
		rendererURL: rendererURL,
		client:      &http.Client{Timeout: exportTimeout},
	}
}

type exportRequest struct {
	CheckIDs []string `json:"checkIds"`
	WeekKey  string   `json:"weekKey"`
}

// ExportPDF submits the print job and returns the rendered document.
func (e *HTTPPDFExporter) ExportPDF(ctx context.Context, checkIDs []string, weekKey string) ([]byte, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	body, err := json.Marshal(exportRequest{CheckIDs: checkIDs, WeekKey: weekKey})
	if err != nil {
		return nil, fmt.Errorf("failed to encode export request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.rendererURL+"/render", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build export request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/pdf")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pdf renderer unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logger.Error("PDF renderer returned an error",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(snippet)),
		)
		return nil, fmt.Errorf("pdf renderer returned status %d", resp.StatusCode)
	}

	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read rendered pdf: %w", err)
	}
	return pdf, nil
}
