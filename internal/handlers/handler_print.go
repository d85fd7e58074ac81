package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/crewpay/crewpay_backend/internal/core/ports/services"
	"github.com/crewpay/crewpay_backend/internal/dto"
	"github.com/crewpay/crewpay_backend/internal/middleware"
	"github.com/crewpay/crewpay_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// printHandler handles HTTP requests for check printing and export.
type printHandler struct {
	printService  portssvc.PrintSvcFacade
	posthogClient *utils.PosthogClientWrapper
}

// newPrintHandler creates a new printHandler.
func newPrintHandler(ps portssvc.PrintSvcFacade, posthogClient *utils.PosthogClientWrapper) *printHandler {
	return &printHandler{
		printService:  ps,
		posthogClient: posthogClient,
	}
}

// registerPrintRoutes registers the print/export route.
func registerPrintRoutes(rg *gin.RouterGroup, printService portssvc.PrintSvcFacade, posthogClient *utils.PosthogClientWrapper) {
	h := newPrintHandler(printService, posthogClient)

	rg.POST("/checks/print", h.printChecks)
}

// printChecks godoc
// @Summary Export checks as a PDF and mark them paid
// @Description Renders the selected checks for one pay week into a PDF, then best-effort marks each exported check paid. Paid-marking counts are reported via X-Checks-Marked-Paid, X-Checks-Already-Paid and X-Checks-Failed-Marks headers
// @Tags print
// @Accept  json
// @Produce  application/pdf
// @Param   request body dto.PrintRequest true "Check ids and pay week"
// @Success 200 {file} binary "Rendered PDF"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Printing capability required"
// @Failure 500 {object} map[string]string "Failed to export checks"
// @Security BearerAuth
// @Router /checks/print [post]
func (h *printHandler) printChecks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PrintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PrintChecks", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("week_key", req.WeekKey), slog.Int("check_count", len(req.CheckIDs)))

	result, err := h.printService.PrintChecks(c.Request.Context(), actorID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to export checks")
		return
	}

	logger.Info("Checks exported",
		slog.Int("marked_paid", result.MarkedPaid),
		slog.Int("already_paid", result.AlreadyPaid),
		slog.Int("failed_marks", result.FailedMarks),
	)
	middleware.PosthogEvent(c, h.posthogClient, "checks_printed", map[string]any{
		"week_key":    req.WeekKey,
		"check_count": len(req.CheckIDs),
		"marked_paid": result.MarkedPaid,
	})

	c.Header("X-Checks-Marked-Paid", strconv.Itoa(result.MarkedPaid))
	c.Header("X-Checks-Already-Paid", strconv.Itoa(result.AlreadyPaid))
	c.Header("X-Checks-Failed-Marks", strconv.Itoa(result.FailedMarks))
	c.Header("Content-Disposition", `attachment; filename="checks-`+req.WeekKey+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", result.PDF)
}
