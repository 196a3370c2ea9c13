package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snapvote/snapvote/internal/api/auth"
	"github.com/snapvote/snapvote/internal/api/models"
	"github.com/snapvote/snapvote/internal/contest"
)

// Vote casts or moves the caller's single vote.
func (h *Handler) Vote(c *gin.Context) {
	user := auth.CurrentUser(c)

	var req models.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photoId is required"})
		return
	}

	if err := h.engine.Vote(c.Request.Context(), user.EmployeeID, req.PhotoID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "vote recorded"})
}

// MyVote reports the caller's current vote, if any.
func (h *Handler) MyVote(c *gin.Context) {
	user := auth.CurrentUser(c)

	vote, err := h.engine.CurrentVote(c.Request.Context(), user.EmployeeID)
	if err != nil {
		respondError(c, err)
		return
	}
	if vote == nil {
		c.JSON(http.StatusOK, gin.H{"photoId": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"photoId": vote.PhotoID})
}

// Leaderboard returns the ranked approved photos. Uploader names stay
// hidden until voting has ended, except for the admin.
func (h *Handler) Leaderboard(c *gin.Context) {
	user := auth.CurrentUser(c)

	phase, err := h.engine.CurrentPhase(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	showUploader := user.IsAdmin || phase == contest.PhaseEnded

	rows, err := h.engine.ComputeLeaderboard(c.Request.Context(), showUploader)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"phase":       string(phase),
		"leaderboard": rows,
	})
}
