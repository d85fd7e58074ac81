package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/crewpay/crewpay_backend/internal/core/ports/services"
	"github.com/crewpay/crewpay_backend/internal/dto"
	"github.com/crewpay/crewpay_backend/internal/middleware"
	"github.com/crewpay/crewpay_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// reviewHandler handles HTTP requests for the review/paid lifecycle.
type reviewHandler struct {
	reviewService portssvc.ReviewSvcFacade
	posthogClient *utils.PosthogClientWrapper
}

// newReviewHandler creates a new reviewHandler.
func newReviewHandler(rs portssvc.ReviewSvcFacade, posthogClient *utils.PosthogClientWrapper) *reviewHandler {
	return &reviewHandler{
		reviewService: rs,
		posthogClient: posthogClient,
	}
}

// registerReviewRoutes registers routes for review requests and review/paid transitions.
func registerReviewRoutes(rg *gin.RouterGroup, reviewService portssvc.ReviewSvcFacade, posthogClient *utils.PosthogClientWrapper) {
	h := newReviewHandler(reviewService, posthogClient)

	reviewRequests := rg.Group("/review-requests")
	{
		reviewRequests.GET("", h.listReviewRequests)
		reviewRequests.POST("/week", h.sendWeekForReview)
		reviewRequests.POST("/bulk", h.bulkSendForReview)
	}

	checks := rg.Group("/checks")
	{
		checks.POST("/:checkID/review-request", h.sendForReview)
		checks.POST("/:checkID/review", h.reviewViaDialog)
		checks.DELETE("/:checkID/review", h.undoReview)
		checks.POST("/review/bulk", h.markReviewedBulk)
		checks.DELETE("/:checkID/paid", h.unmarkPaid)
	}
}

// sendForReview godoc
// @Summary Send one check for review
// @Description Creates a pending review request targeting a single check
// @Tags reviews
// @Produce  json
// @Param   checkID path string true "Check ID"
// @Success 201 {object} dto.ReviewRequestResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Check not found"
// @Failure 409 {object} map[string]string "Open request already exists"
// @Failure 500 {object} map[string]string "Failed to send for review"
// @Security BearerAuth
// @Router /checks/{checkID}/review-request [post]
func (h *reviewHandler) sendForReview(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	checkID := c.Param("checkID")

	actorID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("check_id", checkID))

	request, err := h.reviewService.SendForReview(c.Request.Context(), actorID, checkID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to send for review")
		return
	}

	logger.Info("Check sent for review", slog.String("request_id", request.ID))
	middleware.PosthogEvent(c, h.posthogClient, "check_sent_for_review", map[string]any{"check_id": checkID})
	c.JSON(http.StatusCreated, dto.ToReviewRequestResponse(*request))
}

// sendWeekForReview godoc
// @Summary Send a whole company week for review
// @Description Creates one pending request covering every check the caller submitted for the company and week
// @Tags reviews
// @Accept  json
// @Produce  json
// @Param   request body dto.SendWeekForReviewRequest true "Company and week"
// @Success 201 {object} dto.ReviewRequestResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Open request already exists for this week"
// @Failure 500 {object} map[string]string "Failed to send week for review"
// @Security BearerAuth
// @Router /review-requests/week [post]
func (h *reviewHandler) sendWeekForReview(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SendWeekForReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SendWeekForReview", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("company_id", req.CompanyID), slog.String("week_key", req.WeekKey))

	request, err := h.reviewService.SendWeekForReview(c.Request.Context(), actorID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to send week for review")
		return
	}

	logger.Info("Week sent for review", slog.String("request_id", request.ID))
	middleware.PosthogEvent(c, h.posthogClient, "week_sent_for_review", map[string]any{
		"company_id": req.CompanyID,
		"week_key":   req.WeekKey,
	})
	c.JSON(http.StatusCreated, dto.ToReviewRequestResponse(*request))
}

// bulkSendForReview godoc
// @Summary Bulk send checks for review
// @Description Creates one pending request per unreviewed check in scope, atomically. Without confirm, returns the confirmation summary only
// @Tags reviews
// @Accept  json
// @Produce  json
// @Param   request body dto.BulkReviewRequest true "Scope and confirm flag"
// @Success 200 {object} dto.BulkConfirmation
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to bulk send for review"
// @Security BearerAuth
// @Router /review-requests/bulk [post]
func (h *reviewHandler) bulkSendForReview(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.BulkReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for BulkSendForReview", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.reviewService.BulkSendForReview(c.Request.Context(), actorID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to bulk send for review")
		return
	}

	if result.Committed {
		middleware.PosthogEvent(c, h.posthogClient, "bulk_sent_for_review", map[string]any{
			"company_id": result.CompanyID,
			"week_key":   result.WeekKey,
			"applied":    result.Applied,
		})
	}
	c.JSON(http.StatusOK, result)
}

// listReviewRequests godoc
// @Summary List a company's review request history
// @Description Cursor-paginated request history for one company, newest first
// @Tags reviews
// @Produce  json
// @Param   companyId query string true "Company ID"
// @Param   cursor query string false "Opaque cursor from a previous page"
// @Param   limit query int false "Page size (default 50, max 200)"
// @Success 200 {object} dto.ReviewRequestListResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Company outside visibility"
// @Failure 500 {object} map[string]string "Failed to list review requests"
// @Security BearerAuth
// @Router /review-requests [get]
func (h *reviewHandler) listReviewRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var query dto.ReviewRequestListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind query for ListReviewRequests", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	listing, err := h.reviewService.ListReviewRequests(c.Request.Context(), actorID, query)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list review requests")
		return
	}

	c.JSON(http.StatusOK, listing)
}

// reviewViaDialog godoc
// @Summary Mark one check reviewed
// @Description Admin operation. Marks the check reviewed and synchronizes the correlated review requests, back-filling one when none exists
// @Tags reviews
// @Produce  json
// @Param   checkID path string true "Check ID"
// @Success 200 {object} map[string]string "Reviewed"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Admin only"
// @Failure 404 {object} map[string]string "Check not found"
// @Failure 500 {object} map[string]string "Failed to mark reviewed"
// @Security BearerAuth
// @Router /checks/{checkID}/review [post]
func (h *reviewHandler) reviewViaDialog(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	checkID := c.Param("checkID")

	actorID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("check_id", checkID))

	if err := h.reviewService.ReviewViaDialog(c.Request.Context(), actorID, checkID); err != nil {
		respondServiceError(c, logger, err, "Failed to mark reviewed")
		return
	}

	logger.Info("Check marked reviewed")
	middleware.PosthogEvent(c, h.posthogClient, "check_reviewed", map[string]any{"check_id": checkID})
	c.JSON(http.StatusOK, gin.H{"message": "Check marked reviewed"})
}

// undoReview godoc
// @Summary Undo a check's review
// @Description Admin operation. Clears the reviewed flag and moves the correlated requests back to pending
// @Tags reviews
// @Produce  json
// @Param   checkID path string true "Check ID"
// @Success 200 {object} map[string]string "Review undone"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Admin only"
// @Failure 404 {object} map[string]string "Check not found"
// @Failure 500 {object} map[string]string "Failed to undo review"
// @Security BearerAuth
// @Router /checks/{checkID}/review [delete]
func (h *reviewHandler) undoReview(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	checkID := c.Param("checkID")

	actorID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("check_id", checkID))

	if err := h.reviewService.UndoReview(c.Request.Context(), actorID, checkID); err != nil {
		respondServiceError(c, logger, err, "Failed to undo review")
		return
	}

	logger.Info("Check review undone")
	middleware.PosthogEvent(c, h.posthogClient, "check_review_undone", map[string]any{"check_id": checkID})
	c.JSON(http.StatusOK, gin.H{"message": "Review undone"})
}

// markReviewedBulk godoc
// @Summary Bulk mark checks reviewed
// @Description Admin operation. Marks every eligible check in scope reviewed in one atomic batch. Without confirm, returns the confirmation summary only
// @Tags reviews
// @Accept  json
// @Produce  json
// @Param   request body dto.BulkReviewRequest true "Scope and confirm flag"
// @Success 200 {object} dto.BulkConfirmation
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Admin only"
// @Failure 500 {object} map[string]string "Failed to bulk mark reviewed"
// @Security BearerAuth
// @Router /checks/review/bulk [post]
func (h *reviewHandler) markReviewedBulk(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.BulkReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for MarkReviewedBulk", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.reviewService.MarkReviewedBulk(c.Request.Context(), actorID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to bulk mark reviewed")
		return
	}

	if result.Committed {
		middleware.PosthogEvent(c, h.posthogClient, "bulk_marked_reviewed", map[string]any{
			"company_id": result.CompanyID,
			"week_key":   result.WeekKey,
			"applied":    result.Applied,
		})
	}
	c.JSON(http.StatusOK, result)
}

// unmarkPaid godoc
// @Summary Clear a check's paid flag
// @Description Admin operation. Clears the paid flag set by a print/export
// @Tags reviews
// @Produce  json
// @Param   checkID path string true "Check ID"
// @Success 200 {object} map[string]string "Paid flag cleared"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Admin only"
// @Failure 404 {object} map[string]string "Check not found"
// @Failure 500 {object} map[string]string "Failed to unmark paid"
// @Security BearerAuth
// @Router /checks/{checkID}/paid [delete]
func (h *reviewHandler) unmarkPaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	checkID := c.Param("checkID")

	actorID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("check_id", checkID))

	if err := h.reviewService.UnmarkPaid(c.Request.Context(), actorID, checkID); err != nil {
		respondServiceError(c, logger, err, "Failed to unmark paid")
		return
	}

	logger.Info("Check paid flag cleared")
	middleware.PosthogEvent(c, h.posthogClient, "check_unmarked_paid", map[string]any{"check_id": checkID})
	c.JSON(http.StatusOK, gin.H{"message": "Paid flag cleared"})
}
