package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BingoToday returns the shared daily card, generating it on first access.
func (h *Handler) BingoToday(c *gin.Context) {
	b, err := h.Bingo.Today(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

type MarkFieldRequest struct {
	Field string `json:"field" binding:"required"`
}

// BingoMark completes a field on today's card.
func (h *Handler) BingoMark(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req MarkFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	b, err := h.Bingo.Mark(c.Request.Context(), userID, req.Field)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// BingoClear resets today's card for another round.
func (h *Handler) BingoClear(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	b, err := h.Bingo.Clear(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
