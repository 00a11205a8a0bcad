package handler

import (
	"net/http"

	"campusnet/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(c *gin.Context) {
	notifications, err := h.notificationService.ListFor(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// MarkRead is idempotent: re-reading an already-read notification
// succeeds with no change.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.notificationService.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"read": true})
}
