package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/bank_console/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health":            true,
	"/api/notifications": true,
}

// PosthogMiddleware creates a Gin middleware handler that tracks console API events with PostHog
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		// Set by SessionIdentity; logins are attributed once the next request arrives
		username, exists := GetUsernameFromContext(c)
		if !exists {
			return
		}

		// "/api/accounts/:id/deposit" -> "api_accounts_:id_deposit"
		eventName := strings.TrimPrefix(c.FullPath(), "/")
		eventName = strings.ReplaceAll(eventName, "/", "_")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
		}
		// Route params are account ids; amounts and account numbers stay out of analytics
		if len(c.Params) > 0 {
			params := make(map[string]string)
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		posthogClient.Enqueue(username, eventName, props)
	}
}
