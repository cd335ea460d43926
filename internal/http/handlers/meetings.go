package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type CreateMeetingRequest struct {
	Date        time.Time      `json:"date" binding:"required"`
	Place       string         `json:"place" binding:"required"`
	Description string         `json:"description"`
	Pizza       bool           `json:"pizza"`
	Casino      bool           `json:"casino"`
	AttendeeIDs []int64        `json:"attendee_ids" binding:"required"`
	Drinking    map[int64]bool `json:"drinking"`
}

// CreateMeeting registers a meeting with its attendee list.
func (h *Handler) CreateMeeting(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	m, err := h.Meetings.Create(c.Request.Context(), userID, req.Date, req.Place,
		req.Description, req.Pizza, req.Casino, req.AttendeeIDs, req.Drinking)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// ListMeetings returns meetings, optionally filtered with ?confirmed=.
func (h *Handler) ListMeetings(c *gin.Context) {
	var confirmed *bool
	if v := c.Query("confirmed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid confirmed filter"})
			return
		}
		confirmed = &b
	}

	meetings, err := h.Meetings.List(c.Request.Context(), confirmed)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meetings": meetings})
}

// GetMeeting returns one meeting with its place and attendances.
func (h *Handler) GetMeeting(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	details, err := h.Meetings.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// ConfirmMeeting records the caller's confirmation; crossing the majority
// threshold pays every attendee.
func (h *Handler) ConfirmMeeting(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	result, err := h.Meetings.Confirm(c.Request.Context(), id, userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// DeclineMeeting records that the caller denies the meeting happened.
func (h *Handler) DeclineMeeting(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.Meetings.Decline(c.Request.Context(), id, userID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"declined": true})
}

// ListPlaces returns known meeting places, most used first.
func (h *Handler) ListPlaces(c *gin.Context) {
	places, err := h.Meetings.ListPlaces(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"places": places})
}
