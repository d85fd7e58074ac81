package services

import (
	"context"

	"github.com/crewpay/crewpay_backend/internal/dto"
)

// PDFExporter is the external print/export collaborator. On success the
// engine marks exactly the submitted checks paid.
type PDFExporter interface {
	ExportPDF(ctx context.Context, checkIDs []string, weekKey string) ([]byte, error)
}

// PrintSvcFacade coordinates PDF export and the paid-state side effect.
// Gated by the actor's canPrintChecks capability; review transitions are not.
type PrintSvcFacade interface {
	PrintChecks(ctx context.Context, actorID string, req dto.PrintRequest) (*dto.PrintResult, error)
}
