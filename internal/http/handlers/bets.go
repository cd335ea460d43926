package handlers

import (
	"net/http"
	"strconv"
	"time"

	"social_webapp/internal/domain"

	"github.com/gin-gonic/gin"
)

// ListBets returns every unsettled market with pool totals.
func (h *Handler) ListBets(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	bets, err := h.Bets.ListBets(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bets": bets})
}

type CreateBetRequest struct {
	Text     string     `json:"text" binding:"required"`
	Label1   string     `json:"label_1"`
	Label2   string     `json:"label_2"`
	Deadline *time.Time `json:"deadline"`
}

// CreateBet opens a new market.
func (h *Handler) CreateBet(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req CreateBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	deadline := time.Time{}
	if req.Deadline != nil {
		deadline = *req.Deadline
	}
	bet, err := h.Bets.CreateBet(c.Request.Context(), userID, req.Text, req.Label1, req.Label2, deadline)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, bet)
}

type VoteRequest struct {
	Side   string `json:"side" binding:"required"`
	Amount int64  `json:"amount" binding:"required,min=1"`
}

// Vote places a wager on one side of an open market.
func (h *Handler) Vote(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	betID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	vote, err := h.Bets.PlaceWager(c.Request.Context(), betID, userID, domain.BetSide(req.Side), req.Amount)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, vote)
}

type SettleRequest struct {
	WinningSide string `json:"winning_side" binding:"required"`
}

// Settle pays out a closed market.
func (h *Handler) Settle(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	betID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	result, err := h.Bets.Settle(c.Request.Context(), betID, domain.BetSide(req.WinningSide))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
