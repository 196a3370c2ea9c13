package contest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/snapvote/snapvote/internal/database"
	"github.com/snapvote/snapvote/internal/notify/email"
)

// SubmitRequest carries a photo submission.
type SubmitRequest struct {
	EmployeeID string
	Name       string
	Title      string
	Theme      string
	Image      []byte
}

// Submit validates and persists a new photo submission. The photo
// starts in pending status and becomes visible to other users only
// after admin approval.
func (e *Engine) Submit(ctx context.Context, req SubmitRequest) (*database.Photo, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if req.Theme == "" {
		return nil, ErrThemeRequired
	}
	if !e.cfg.HasTheme(req.Theme) {
		return nil, ErrUnknownTheme
	}
	if len(req.Image) == 0 {
		return nil, ErrImageRequired
	}

	if err := e.guard.Check(ctx); err != nil {
		return nil, err
	}

	uploader := database.NormalizeEmployeeID(req.EmployeeID)

	count, err := e.db.CountNonRejectedByUploader(ctx, uploader)
	if err != nil {
		return nil, err
	}
	if count >= int64(e.cfg.MaxPhotosPerUser) {
		return nil, ErrQuotaExceeded
	}

	taken, err := e.db.HasNonRejectedForTheme(ctx, uploader, req.Theme)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrThemeTaken
	}

	processed, err := e.images.Process(req.Image)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageInvalid, err)
	}

	photoID := uuid.NewString()
	ref, err := e.images.Store(ctx, photoID, processed)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	photo := &database.Photo{
		PhotoID:     photoID,
		Title:       title,
		Filename:    ref.Filename,
		RemoteURL:   ref.RemoteURL,
		InlineImage: ref.InlineImage,
		Uploader:    uploader,
		UploadedAt:  time.Now().UTC(),
		Status:      database.PhotoStatusPending,
		Theme:       req.Theme,
		SizeBytes:   int64(len(processed)),
	}

	if err := e.db.CreatePhoto(ctx, photo); err != nil {
		// the image asset stays behind; the orphan sweep picks it up
		return nil, err
	}

	e.invalidateCaches(ctx)
	log.Info("photo submitted", "photo", photoID, "uploader", uploader, "theme", req.Theme)

	go func() {
		if err := e.notifier.SendSubmissionNotification(email.SubmissionNotification{
			Title:        title,
			Theme:        req.Theme,
			Uploader:     uploader,
			UploaderName: req.Name,
			UploadedAt:   photo.UploadedAt,
		}); err != nil {
			log.Warn("failed to send submission notification", "photo", photoID, "error", err)
		}
	}()

	return photo, nil
}

// CountNonRejected returns how many quota slots the user occupies.
func (e *Engine) CountNonRejected(ctx context.Context, employeeID string) (int, error) {
	count, err := e.db.CountNonRejectedByUploader(ctx, employeeID)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// UserPhotos returns all of the user's own photos, regardless of
// moderation status.
func (e *Engine) UserPhotos(ctx context.Context, employeeID string) ([]database.Photo, error) {
	return e.db.GetPhotosByUploader(ctx, employeeID)
}
