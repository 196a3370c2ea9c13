package contest

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/snapvote/snapvote/internal/database"
	"github.com/snapvote/snapvote/internal/imagestore"
	"gorm.io/gorm"
)

// Approve makes a pending photo visible to all users. Any prior
// rejection reason is cleared.
func (e *Engine) Approve(ctx context.Context, photoID string) error {
	photo, err := e.getPhoto(ctx, photoID)
	if err != nil {
		return err
	}
	if photo.Status != database.PhotoStatusPending {
		return ErrNotPending
	}

	if err := e.db.SetPhotoStatus(ctx, photoID, database.PhotoStatusApproved, nil); err != nil {
		return err
	}

	e.invalidateCaches(ctx)
	log.Info("photo approved", "photo", photoID)
	return nil
}

// Reject hides a pending photo from other users. The optional reason
// is shown to the uploader. Rejected photos free the uploader's quota
// slot and theme.
func (e *Engine) Reject(ctx context.Context, photoID, reason string) error {
	photo, err := e.getPhoto(ctx, photoID)
	if err != nil {
		return err
	}
	if photo.Status != database.PhotoStatusPending {
		return ErrNotPending
	}

	var reasonPtr *string
	if r := strings.TrimSpace(reason); r != "" {
		reasonPtr = &r
	}

	if err := e.db.SetPhotoStatus(ctx, photoID, database.PhotoStatusRejected, reasonPtr); err != nil {
		return err
	}

	e.invalidateCaches(ctx)
	log.Info("photo rejected", "photo", photoID, "reason", reason)
	return nil
}

// Delete removes the photo record and every vote referencing it, then
// best-effort deletes the backing assets. Asset removal failures are
// tolerated; orphans are collected by the sweep job.
func (e *Engine) Delete(ctx context.Context, photoID string) error {
	photo, err := e.getPhoto(ctx, photoID)
	if err != nil {
		return err
	}

	if err := e.db.DeletePhotoWithVotes(ctx, photoID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrPhotoNotFound
		}
		return err
	}

	e.images.Remove(ctx, photoID, imagestore.Reference{
		Filename:  photo.Filename,
		RemoteURL: photo.RemoteURL,
	})

	e.invalidateCaches(ctx)
	log.Info("photo deleted", "photo", photoID, "uploader", photo.Uploader)
	return nil
}

// Gallery returns the photos a caller may see: approved photos only,
// or every status for admins.
func (e *Engine) Gallery(ctx context.Context, includeAllStatuses bool) ([]database.Photo, error) {
	key := "approved"
	if includeAllStatuses {
		key = "all"
	}

	if photos, err := e.galleryCache.Get(ctx, key); err == nil {
		return photos, nil
	}

	var (
		photos []database.Photo
		err    error
	)
	if includeAllStatuses {
		photos, err = e.db.GetAllPhotos(ctx)
	} else {
		photos, err = e.db.GetPhotosByStatus(ctx, database.PhotoStatusApproved)
	}
	if err != nil {
		return nil, err
	}

	if err := e.galleryCache.Set(ctx, key, photos); err != nil {
		log.Debug("failed to cache gallery", "error", err)
	}
	return photos, nil
}

// PendingPhotos returns the moderation queue.
func (e *Engine) PendingPhotos(ctx context.Context) ([]database.Photo, error) {
	return e.db.GetPhotosByStatus(ctx, database.PhotoStatusPending)
}

// GetPhoto returns a single photo by its id.
func (e *Engine) GetPhoto(ctx context.Context, photoID string) (*database.Photo, error) {
	return e.getPhoto(ctx, photoID)
}

func (e *Engine) getPhoto(ctx context.Context, photoID string) (*database.Photo, error) {
	photo, err := e.db.GetPhotoByID(ctx, photoID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPhotoNotFound
		}
		return nil, err
	}
	return photo, nil
}
