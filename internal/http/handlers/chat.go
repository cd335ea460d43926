package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type TalkRequest struct {
	Message string `json:"message" binding:"required"`
}

// Talk sends a message to the assistant and returns its reply.
func (h *Handler) Talk(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req TalkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	reply, err := h.Chat.Talk(c.Request.Context(), userID, req.Message)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "assistant unavailable"})
		return
	}
	c.JSON(http.StatusOK, reply)
}

// ChatHistory returns the caller's conversation so far.
func (h *Handler) ChatHistory(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	history, err := h.Chat.History(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": history})
}
