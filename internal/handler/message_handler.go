package handler

import (
	"net/http"

	"campusnet/internal/middleware"
	"campusnet/internal/service"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messageService *service.MessageService
}

func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// History returns the DM history with an accepted friend. The ledger
// is re-checked on every call, so a broken friendship returns 403.
func (h *MessageHandler) History(c *gin.Context) {
	messages, err := h.messageService.History(c.Request.Context(), middleware.UserID(c), c.Param("friendId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}
