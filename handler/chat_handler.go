package handler

import (
	"net/http"

	"github.com/Aashish23092/expense-insights/dto"
	"github.com/Aashish23092/expense-insights/service"
	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Chat handles POST /chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.chatService.Chat(c.Request.Context(), req)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
