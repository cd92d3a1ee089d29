package handlers

import (
	"net/http"
	"strings"

	"brewheaven-api/models"

	"github.com/gin-gonic/gin"
)

type SendMessageRequest struct {
	Content string        `json:"content"`
	Sender  models.Sender `json:"sender"`
}

type BotResponseRequest struct {
	UserMessage string `json:"userMessage"`
}

// SendMessage appends a message to the chat log
func (h *Handler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	msg, err := h.data.AppendMessage(ctx, req.Content, req.Sender)
	if err != nil {
		h.fail(c, err, "Failed to save message")
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// GetMessages returns the chat log, oldest first
func (h *Handler) GetMessages(c *gin.Context) {
	ctx, cancel := h.ctx(c)
	defer cancel()
	c.JSON(http.StatusOK, h.data.ListMessages(ctx))
}

// GetBotResponse answers a customer message. It always answers; storing the
// reply is best-effort and message is null when that fails.
func (h *Handler) GetBotResponse(c *gin.Context) {
	var req BotResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.UserMessage) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userMessage is required"})
		return
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	menu := h.data.GetMenu(ctx)
	reply := h.bot.Resolve(ctx, req.UserMessage, menu)

	saved, err := h.data.AppendMessage(ctx, reply, models.SenderBot)
	if err != nil {
		h.logger.Warn("bot reply not stored", "error", err)
		saved = nil
	}
	c.JSON(http.StatusOK, gin.H{"response": reply, "message": saved})
}
