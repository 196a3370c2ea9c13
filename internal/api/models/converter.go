package models

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/mergestat/timediff"
	"github.com/samber/lo"
	"github.com/snapvote/snapvote/internal/database"
)

// PhotoItemFromDB converts a database photo into its API view.
// Uploader and size information are included only for admin views.
func PhotoItemFromDB(photo database.Photo, adminView bool) PhotoItem {
	item := PhotoItem{
		ID:         photo.PhotoID,
		Title:      photo.Title,
		Theme:      photo.Theme,
		Status:     string(photo.Status),
		UploadedAt: photo.UploadedAt,
		Uploaded:   timediff.TimeDiff(photo.UploadedAt),
		ImageURL:   fmt.Sprintf("/api/photos/%s/image", photo.PhotoID),
	}
	if photo.RejectionReason != nil {
		item.RejectionReason = *photo.RejectionReason
	}
	if adminView {
		item.Uploader = photo.Uploader
		if photo.SizeBytes > 0 {
			item.Size = humanize.Bytes(uint64(photo.SizeBytes))
		}
	}
	return item
}

// PhotoItemsFromDB converts a slice of database photos.
func PhotoItemsFromDB(photos []database.Photo, adminView bool) []PhotoItem {
	return lo.Map(photos, func(p database.Photo, _ int) PhotoItem {
		return PhotoItemFromDB(p, adminView)
	})
}

// OwnPhotoItemFromDB converts one of the caller's own photos. Status
// and rejection reason are always visible to the owner, but uploader
// and size stay hidden to match the non-admin view.
func OwnPhotoItemFromDB(photo database.Photo) PhotoItem {
	return PhotoItemFromDB(photo, false)
}
