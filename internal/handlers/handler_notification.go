package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/bank_console/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

type notificationHandler struct {
	notifications portssvc.NotificationSink
}

func registerNotificationRoutes(rg *gin.RouterGroup, notifications portssvc.NotificationSink) {
	h := &notificationHandler{notifications: notifications}

	n := rg.Group("/notifications")
	{
		n.GET("", h.listNotifications)
		n.DELETE("/:id", h.dismissNotification)
	}
}

// listNotifications returns the unexpired notifications, oldest first.
func (h *notificationHandler) listNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, h.notifications.Active())
}

func (h *notificationHandler) dismissNotification(c *gin.Context) {
	if !h.notifications.Dismiss(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
