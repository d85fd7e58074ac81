package handlers

import (
	"net/http"

	portssvc "github.com/crewpay/crewpay_backend/internal/core/ports/services"
	"github.com/crewpay/crewpay_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// refDataHandler serves read-only company and client reference data.
type refDataHandler struct {
	refDataService portssvc.RefDataSvcFacade
}

func newRefDataHandler(rs portssvc.RefDataSvcFacade) *refDataHandler {
	return &refDataHandler{
		refDataService: rs,
	}
}

func registerRefDataRoutes(rg *gin.RouterGroup, refDataService portssvc.RefDataSvcFacade) {
	h := newRefDataHandler(refDataService)

	rg.GET("/companies", h.listCompanies)
	rg.GET("/clients", h.listClients)
}

// listCompanies godoc
// @Summary List visible companies
// @Description Returns the companies within the caller's visibility
// @Tags refdata
// @Produce  json
// @Success 200 {array} domain.Company
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list companies"
// @Security BearerAuth
// @Router /companies [get]
func (h *refDataHandler) listCompanies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	companies, err := h.refDataService.ListCompanies(c.Request.Context(), actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list companies")
		return
	}

	c.JSON(http.StatusOK, companies)
}

// listClients godoc
// @Summary List visible clients
// @Description Returns clients, optionally restricted to one visible company
// @Tags refdata
// @Produce  json
// @Param   companyId query string false "Restrict to one company"
// @Success 200 {array} domain.Client
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Company outside visibility"
// @Failure 500 {object} map[string]string "Failed to list clients"
// @Security BearerAuth
// @Router /clients [get]
func (h *refDataHandler) listClients(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	clients, err := h.refDataService.ListClients(c.Request.Context(), actorID, c.Query("companyId"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list clients")
		return
	}

	c.JSON(http.StatusOK, clients)
}
