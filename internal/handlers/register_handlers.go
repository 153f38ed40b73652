package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/bank_console/internal/core/ports/services"
	"github.com/SscSPs/bank_console/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all console API routes.
func RegisterRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api", middleware.SessionIdentity(services.Session))

	registerSessionRoutes(api, services.Session, services.Console)
	registerAccountRoutes(api, services.Session, services.Accounts, services.Console)
	registerTransactionRoutes(api, services.Session, services.Transactions, services.Console)
	registerNotificationRoutes(api, services.Notifications)
}
