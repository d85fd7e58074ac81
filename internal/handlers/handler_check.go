package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/crewpay/crewpay_backend/internal/apperrors"
	portssvc "github.com/crewpay/crewpay_backend/internal/core/ports/services"
	"github.com/crewpay/crewpay_backend/internal/dto"
	"github.com/crewpay/crewpay_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// checkHandler handles HTTP requests related to check listings and breakdowns.
type checkHandler struct {
	queryService portssvc.CheckQuerySvcFacade
}

// newCheckHandler creates a new checkHandler.
func newCheckHandler(qs portssvc.CheckQuerySvcFacade) *checkHandler {
	return &checkHandler{
		queryService: qs,
	}
}

// registerCheckRoutes registers routes related to check queries.
func registerCheckRoutes(rg *gin.RouterGroup, queryService portssvc.CheckQuerySvcFacade) {
	h := newCheckHandler(queryService)

	checks := rg.Group("/checks")
	{
		checks.GET("", h.listChecks)
		checks.GET("/:checkID/breakdown", h.getCheckBreakdown)
	}
}

// listChecks godoc
// @Summary List visible checks grouped by pay week
// @Description Returns the caller's visible checks, filtered by the query predicates and grouped into descending week buckets
// @Tags checks
// @Produce  json
// @Param   companyId query string false "Restrict to one company"
// @Param   week query string false "Pay week key (Sunday date, YYYY-MM-DD)"
// @Param   createdBy query string false "Restrict to one creator user id"
// @Param   clientId query string false "Restrict to checks involving one client"
// @Param   search query string false "Case-insensitive match on employee or creator name"
// @Param   unreviewedOnly query bool false "Only checks not yet reviewed"
// @Param   refresh query bool false "Bypass the scoped cache"
// @Success 200 {object} dto.CheckListResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list checks"
// @Security BearerAuth
// @Router /checks [get]
func (h *checkHandler) listChecks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var query dto.CheckQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind query for ListChecks", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	listing, err := h.queryService.ListChecks(c.Request.Context(), actorID, query)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list checks")
		return
	}

	c.JSON(http.StatusOK, listing)
}

// getCheckBreakdown godoc
// @Summary Get the computed pay breakdown of one check
// @Description Recomputes the display pay lines for one visible check; the stored amount stays authoritative
// @Tags checks
// @Produce  json
// @Param   checkID path string true "Check ID"
// @Success 200 {object} dto.CheckBreakdownResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Check not found"
// @Failure 500 {object} map[string]string "Failed to compute breakdown"
// @Security BearerAuth
// @Router /checks/{checkID}/breakdown [get]
func (h *checkHandler) getCheckBreakdown(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	checkID := c.Param("checkID")

	actorID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("check_id", checkID))

	breakdown, err := h.queryService.GetCheckBreakdown(c.Request.Context(), actorID, checkID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Check not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Check not found"})
			return
		}
		respondServiceError(c, logger, err, "Failed to compute breakdown")
		return
	}

	c.JSON(http.StatusOK, breakdown)
}
