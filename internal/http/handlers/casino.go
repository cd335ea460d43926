package handlers

import (
	"net/http"

	"social_webapp/internal/game"
	"social_webapp/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type RouletteRequest struct {
	Kind   string `json:"kind" binding:"required"`
	Number *int   `json:"number"`
	Bet    int64  `json:"bet" binding:"required,min=1"`
}

// Roulette plays one roulette round.
func (h *Handler) Roulette(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req RouletteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	result, err := h.Casino.PlayRoulette(c.Request.Context(), userID, game.RouletteBet(req.Kind), req.Number, req.Bet)
	if err != nil {
		fail(c, err)
		return
	}

	middleware.CasinoRounds.WithLabelValues("roulette", outcome(result.HasWon)).Inc()
	c.JSON(http.StatusOK, result)
}

type HighCardRequest struct {
	Bet   string `json:"bet"`
	Stake int64  `json:"stake"`
}

// HighCard draws the next card; with a stake it settles the directional
// call against the previous one, with stake 0 it is a free baseline draw.
func (h *Handler) HighCard(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req HighCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	result, err := h.Casino.PlayHighCard(c.Request.Context(), userID, req.Bet, req.Stake)
	if err != nil {
		fail(c, err)
		return
	}

	if req.Stake > 0 {
		middleware.CasinoRounds.WithLabelValues("highcard", outcome(result.HasWon)).Inc()
	}
	c.JSON(http.StatusOK, result)
}

func outcome(won bool) string {
	if won {
		return "win"
	}
	return "loss"
}
