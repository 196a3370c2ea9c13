package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/snapvote/snapvote/internal/api/auth"
	"github.com/snapvote/snapvote/internal/api/models"
	"github.com/snapvote/snapvote/internal/contest"
	"github.com/snapvote/snapvote/internal/imagestore"
	"github.com/snapvote/snapvote/internal/policy"
)

// maxUploadBytes bounds the multipart image read.
const maxUploadBytes = 20 << 20

type Handler struct {
	engine *contest.Engine
}

func New(engine *contest.Engine) *Handler {
	return &Handler{engine: engine}
}

// respondError maps engine errors onto HTTP responses. Validation
// failures decline with a reason; nothing was mutated.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, contest.ErrPhotoNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, contest.ErrTitleRequired),
		errors.Is(err, contest.ErrThemeRequired),
		errors.Is(err, contest.ErrUnknownTheme),
		errors.Is(err, contest.ErrImageRequired),
		errors.Is(err, contest.ErrImageInvalid),
		errors.Is(err, contest.ErrQuotaExceeded),
		errors.Is(err, contest.ErrThemeTaken),
		errors.Is(err, contest.ErrNotPending),
		errors.Is(err, contest.ErrNotApproved):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, contest.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, policy.ErrDiskFull):
		c.JSON(http.StatusInsufficientStorage, gin.H{"error": err.Error()})
	default:
		log.Error("request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// Gallery lists the photos the caller may see: approved photos for
// regular users, all statuses for the admin.
func (h *Handler) Gallery(c *gin.Context) {
	user := auth.CurrentUser(c)

	photos, err := h.engine.Gallery(c.Request.Context(), user.IsAdmin)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"photos": models.PhotoItemsFromDB(photos, user.IsAdmin)})
}

// MyPhotos lists the caller's own submissions with moderation status
// and rejection reasons.
func (h *Handler) MyPhotos(c *gin.Context) {
	user := auth.CurrentUser(c)

	photos, err := h.engine.UserPhotos(c.Request.Context(), user.EmployeeID)
	if err != nil {
		respondError(c, err)
		return
	}

	used, err := h.engine.CountNonRejected(c.Request.Context(), user.EmployeeID)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]models.PhotoItem, 0, len(photos))
	for _, p := range photos {
		items = append(items, models.OwnPhotoItemFromDB(p))
	}

	c.JSON(http.StatusOK, gin.H{
		"photos":    items,
		"used":      used,
		"available": h.engine.Config().MaxPhotosPerUser - used,
	})
}

// SubmitPhoto accepts a multipart photo submission.
func (h *Handler) SubmitPhoto(c *gin.Context) {
	user := auth.CurrentUser(c)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondError(c, contest.ErrImageRequired)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		respondError(c, err)
		return
	}

	photo, err := h.engine.Submit(c.Request.Context(), contest.SubmitRequest{
		EmployeeID: user.EmployeeID,
		Name:       user.Name,
		Title:      c.PostForm("title"),
		Theme:      c.PostForm("theme"),
		Image:      data,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.OwnPhotoItemFromDB(*photo))
}

// Image serves a photo's bytes. Retrieval walks the fallback chain and
// degrades to a placeholder rather than failing.
func (h *Handler) Image(c *gin.Context) {
	user := auth.CurrentUser(c)
	photoID := c.Param("id")

	photo, err := h.engine.GetPhoto(c.Request.Context(), photoID)
	if err != nil {
		respondError(c, err)
		return
	}

	// only the admin and the owner may see photos that are not approved
	if !user.IsAdmin && photo.Uploader != user.EmployeeID && photo.Status != "approved" {
		c.JSON(http.StatusNotFound, gin.H{"error": contest.ErrPhotoNotFound.Error()})
		return
	}

	data := h.engine.Images().Fetch(c.Request.Context(), imagestore.Reference{
		Filename:    photo.Filename,
		RemoteURL:   photo.RemoteURL,
		InlineImage: photo.InlineImage,
	})

	c.Header("Cache-Control", "private, max-age=3600")
	c.Data(http.StatusOK, "image/jpeg", data)
}

// State reports the contest phase.
func (h *Handler) State(c *gin.Context) {
	phase, err := h.engine.CurrentPhase(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ContestStateResponse{
		Phase:              string(phase),
		VotingPhaseEnabled: phase == contest.PhaseVoting || phase == contest.PhaseEnded,
		VotingEnded:        phase == contest.PhaseEnded,
	})
}

// Themes lists the configured contest themes.
func (h *Handler) Themes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"themes": h.engine.Config().Themes})
}
