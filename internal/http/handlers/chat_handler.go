package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/workova-backend/internal/http/handlers/common"
	"github.com/ignatzorin/workova-backend/internal/service"
)

// ChatHandler отвечает за диалоги и переписку.
type ChatHandler struct {
	chats *service.ChatService
}

// NewChatHandler создаёт экземпляр.
func NewChatHandler(chats *service.ChatService) *ChatHandler {
	return &ChatHandler{chats: chats}
}

// ListMy обрабатывает GET /api/chats/my.
func (h *ChatHandler) ListMy(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	chats, err := h.chats.ForUser(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, chats)
}

// Get обрабатывает GET /api/chats/:id.
func (h *ChatHandler) Get(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	chat, err := h.chats.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, chat)
}

// ListMessages обрабатывает GET /api/chats/:id/messages.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	messages, err := h.chats.Messages(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

type sendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// SendMessage обрабатывает POST /api/chats/:id/messages.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req sendMessageRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	msg, err := h.chats.SendMessage(c.Request.Context(), c.Param("id"), userID, req.Text)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}
