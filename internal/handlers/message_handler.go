package handlers

import (
	"net/http"

	"concierge_backend/internal/services"
	"concierge_backend/internal/services/dto"
	"concierge_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	*BaseHandler
	messageService services.MessageService
}

func NewMessageHandler(base *BaseHandler, messageService services.MessageService) *MessageHandler {
	return &MessageHandler{BaseHandler: base, messageService: messageService}
}

// Send stores a message to another user.
// POST /api/messages
func (h *MessageHandler) Send(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	message, err := h.messageService.Send(h.GetDB(c), userID, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	h.Created(c, message)
}

// List returns the caller's messages, sent and received, newest first.
// GET /api/messages
func (h *MessageHandler) List(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	messages, err := h.messageService.List(h.GetDB(c), userID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	h.OK(c, messages)
}

// MarkRead flags a received message as read.
// PUT /api/messages/:id/read
func (h *MessageHandler) MarkRead(c *gin.Context) {
	userID, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	if err := h.messageService.MarkRead(h.GetDB(c), userID, c.Param("id")); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
