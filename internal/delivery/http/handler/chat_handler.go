package handler

import (
	"net/http"

	"github.com/fitmatch-app/backend/internal/usecase/chat"
	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatUseCase *chat.UseCase
}

func NewChatHandler(chatUseCase *chat.UseCase) *ChatHandler {
	return &ChatHandler{chatUseCase: chatUseCase}
}

// SendMessageRequest carries the message body
type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// List returns the caller's active chats, most recently active first
func (h *ChatHandler) List(c *gin.Context) {
	userID := c.GetInt("user_id")
	summaries, err := h.chatUseCase.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chats": summaries})
}

// Get returns one chat with its formatted history
func (h *ChatHandler) Get(c *gin.Context) {
	userID := c.GetInt("user_id")
	detail, err := h.chatUseCase.GetDetail(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// MarkRead marks every message in the chat as read by the caller
func (h *ChatHandler) MarkRead(c *gin.Context) {
	userID := c.GetInt("user_id")
	marked, err := h.chatUseCase.MarkRead(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"marked": marked})
}

// SendMessage appends a message to the chat
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	userID := c.GetInt("user_id")
	msg, err := h.chatUseCase.Send(c.Request.Context(), c.Param("id"), userID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}
