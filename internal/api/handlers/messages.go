package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chat_web/internal/service"
)

// MessageHandler 處理與訊息相關的 HTTP 請求
type MessageHandler struct {
	chat *service.ChatService
}

func NewMessageHandler(chat *service.ChatService) *MessageHandler {
	return &MessageHandler{chat: chat}
}

// ListMessages 回傳最近的訊息，由舊到新排序
func (h *MessageHandler) ListMessages(c *gin.Context) {
	messages, err := h.chat.RecentMessages(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, messages)
}
