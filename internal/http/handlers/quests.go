package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListQuests returns the quest catalog.
func (h *Handler) ListQuests(c *gin.Context) {
	quests, err := h.Quests.ListQuests(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quests": quests})
}

// StartQuest assigns a quest for today.
func (h *Handler) StartQuest(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	questID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	dq, err := h.Quests.Start(c.Request.Context(), userID, questID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, dq)
}

// QuestStatus returns the current assignment with its countdown.
func (h *Handler) QuestStatus(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	status, err := h.Quests.Status(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// RedeemQuest pays out a finished quest.
func (h *Handler) RedeemQuest(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	quest, err := h.Quests.Redeem(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"redeemed": true,
		"coins":    quest.Coins,
		"points":   quest.Points,
		"exp":      quest.Exp,
	})
}
