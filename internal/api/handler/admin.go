package handler

import (
	"net/http"
	"strconv"

	"github.com/ccoveille/go-safecast"
	"github.com/gin-gonic/gin"
	"github.com/snapvote/snapvote/internal/api/models"
	"github.com/snapvote/snapvote/internal/contest"
	"github.com/snapvote/snapvote/internal/database"
	"golang.org/x/sync/errgroup"
)

const (
	defaultPageSize = 24
	maxPageSize     = 100
)

// AdminPhotos lists photos of every status, optionally filtered and
// paginated.
func (h *Handler) AdminPhotos(c *gin.Context) {
	photos, err := h.engine.Gallery(c.Request.Context(), true)
	if err != nil {
		respondError(c, err)
		return
	}

	if status := c.Query("status"); status != "" {
		filtered := make([]database.Photo, 0, len(photos))
		for _, p := range photos {
			if string(p.Status) == status {
				filtered = append(filtered, p)
			}
		}
		photos = filtered
	}

	page := 1
	pageSize := defaultPageSize
	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.ParseUint(pageStr, 10, 32); err == nil && p > 0 {
			if parsed, err := safecast.ToInt(p); err == nil {
				page = parsed
			}
		}
	}
	if pageSizeStr := c.Query("page_size"); pageSizeStr != "" {
		if ps, err := strconv.ParseUint(pageSizeStr, 10, 32); err == nil && ps > 0 && ps <= maxPageSize {
			if parsed, err := safecast.ToInt(ps); err == nil {
				pageSize = parsed
			}
		}
	}

	total := len(photos)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{
		"photos":   models.PhotoItemsFromDB(photos[start:end], true),
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

// AdminDashboard aggregates the moderation queue, contest stats and
// the full leaderboard in one payload.
func (h *Handler) AdminDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		stats       *contest.Stats
		pending     []database.Photo
		leaderboard []contest.LeaderboardRow
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		stats, err = h.engine.GetStats(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		pending, err = h.engine.PendingPhotos(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		leaderboard, err = h.engine.ComputeLeaderboard(ctx, true)
		return err
	})
	if err := g.Wait(); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":       stats,
		"pending":     models.PhotoItemsFromDB(pending, true),
		"leaderboard": leaderboard,
		"jobs":        h.engine.Scheduler().GetJobs(),
	})
}

// ApprovePhoto approves a pending photo.
func (h *Handler) ApprovePhoto(c *gin.Context) {
	if err := h.engine.Approve(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "photo approved"})
}

// RejectPhoto rejects a pending photo with an optional reason.
func (h *Handler) RejectPhoto(c *gin.Context) {
	var req models.RejectRequest
	_ = c.ShouldBindJSON(&req) // reason is optional

	if err := h.engine.Reject(c.Request.Context(), c.Param("id"), req.Reason); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "photo rejected"})
}

// DeletePhoto removes a photo and all votes referencing it.
func (h *Handler) DeletePhoto(c *gin.Context) {
	if err := h.engine.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "photo deleted"})
}

// EnableVoting transitions the contest from the upload phase to the
// voting phase.
func (h *Handler) EnableVoting(c *gin.Context) {
	if err := h.engine.EnableVoting(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "voting phase enabled"})
}

// DisableVoting transitions back to the upload phase.
func (h *Handler) DisableVoting(c *gin.Context) {
	if err := h.engine.DisableVoting(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "voting phase disabled"})
}

// EndVoting ends the voting phase.
func (h *Handler) EndVoting(c *gin.Context) {
	if err := h.engine.EndVoting(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "voting ended"})
}

// ResetContest returns an ended contest to the upload phase.
func (h *Handler) ResetContest(c *gin.Context) {
	if err := h.engine.ResetContest(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "contest reset"})
}

// AdminLeaderboard always includes uploader names.
func (h *Handler) AdminLeaderboard(c *gin.Context) {
	rows, err := h.engine.ComputeLeaderboard(c.Request.Context(), true)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": rows})
}
