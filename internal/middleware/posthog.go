package middleware

import (
	"net/http"
	"strings"

	"github.com/crewpay/crewpay_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health": true,
}

// payrollDimensions extracts the request inputs analytics is sliced by: which
// company, which pay week, and which check was acted on. Keys absent from the
// request are omitted.
func payrollDimensions(c *gin.Context) map[string]any {
	dims := make(map[string]any)
	if v := c.Query("companyId"); v != "" {
		dims["company_id"] = v
	}
	if v := c.Query("week"); v != "" {
		dims["week_key"] = v
	}
	if v := c.Param("checkID"); v != "" {
		dims["check_id"] = v
	}
	return dims
}

// PosthogMiddleware creates a Gin middleware handler that tracks API events with PostHog
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip if PostHog is not initialized or path is in skip list
		if posthogClient == nil || !posthogClient.IsInitialized() ||
			pathsToSkip[c.Request.URL.Path] || strings.HasPrefix(c.Request.URL.Path, "/swagger") {
			c.Next()
			return
		}

		// Process request first
		c.Next()

		// Skip if there was an error processing the request
		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		// Get user ID from context (set by auth middleware)
		userID, exists := GetUserIDFromCtx(c.Request.Context())
		if !exists {
			// No user ID, can't track event
			return
		}

		// Create event name from route path (e.g., "/api/v1/checks" -> "api_v1_checks")
		eventName := strings.TrimPrefix(c.FullPath(), "/")
		eventName = strings.ReplaceAll(eventName, "/", "_")

		// Skip if event name is empty (e.g., for 404s)
		if eventName == "" {
			return
		}

		props := payrollDimensions(c)
		props["method"] = c.Request.Method
		props["path"] = c.Request.URL.Path
		props["status_code"] = c.Writer.Status()

		// Send event to PostHog
		posthogClient.Enqueue(userID, eventName, props)
	}
}

// PosthogEvent is a helper to manually send custom events from handlers when
// needed. The payroll dimensions of the request are attached automatically;
// caller-supplied properties win on conflict.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if posthogClient == nil || !posthogClient.IsInitialized() {
		return
	}

	userID, exists := GetUserIDFromCtx(c.Request.Context())
	if !exists {
		return
	}

	props := payrollDimensions(c)
	props["method"] = c.Request.Method
	props["path"] = c.Request.URL.Path
	for k, v := range properties {
		props[k] = v
	}

	// Send custom event
	posthogClient.Enqueue(userID, eventName, props)
}
