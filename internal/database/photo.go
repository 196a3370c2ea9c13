package database

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

type PhotoStatus string

const (
	PhotoStatusPending  PhotoStatus = "pending"
	PhotoStatusApproved PhotoStatus = "approved"
	PhotoStatusRejected PhotoStatus = "rejected"
)

// Photo represents a contest submission.
// Filename, RemoteURL and InlineImage form a fallback chain of image
// references; any one of them is enough to serve the photo.
type Photo struct {
	gorm.Model
	PhotoID         string `gorm:"uniqueIndex;not null"`
	Title           string `gorm:"not null"`
	Filename        string
	RemoteURL       *string
	InlineImage     *string
	Uploader        string    `gorm:"index;not null"`
	UploadedAt      time.Time `gorm:"not null"`
	Status          PhotoStatus `gorm:"not null;default:'pending';index"`
	RejectionReason *string
	Theme           string
	SizeBytes       int64
}

func (c *Client) CreatePhoto(ctx context.Context, photo *Photo) error {
	if err := c.db.WithContext(ctx).Create(photo).Error; err != nil {
		log.Error("failed to create photo", "error", err)
		return err
	}
	return nil
}

func (c *Client) GetPhotoByID(ctx context.Context, photoID string) (*Photo, error) {
	var photo Photo
	if err := c.db.WithContext(ctx).Where("photo_id = ?", photoID).First(&photo).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get photo", "error", err)
		}
		return nil, err
	}
	return &photo, nil
}

func (c *Client) GetAllPhotos(ctx context.Context) ([]Photo, error) {
	var photos []Photo
	if err := c.db.WithContext(ctx).Order("uploaded_at asc").Find(&photos).Error; err != nil {
		log.Error("failed to get all photos", "error", err)
		return nil, err
	}
	return photos, nil
}

func (c *Client) GetPhotosByStatus(ctx context.Context, status PhotoStatus) ([]Photo, error) {
	var photos []Photo
	if err := c.db.WithContext(ctx).Where("status = ?", status).Order("uploaded_at asc").Find(&photos).Error; err != nil {
		log.Error("failed to get photos by status", "error", err)
		return nil, err
	}
	return photos, nil
}

func (c *Client) GetPhotosByUploader(ctx context.Context, employeeID string) ([]Photo, error) {
	var photos []Photo
	if err := c.db.WithContext(ctx).Where("uploader = ?", NormalizeEmployeeID(employeeID)).Order("uploaded_at asc").Find(&photos).Error; err != nil {
		log.Error("failed to get photos by uploader", "error", err)
		return nil, err
	}
	return photos, nil
}

// CountNonRejectedByUploader counts the uploader's photos that still
// occupy quota. Rejected photos are excluded so users can resubmit.
func (c *Client) CountNonRejectedByUploader(ctx context.Context, employeeID string) (int64, error) {
	var count int64
	err := c.db.WithContext(ctx).Model(&Photo{}).
		Where("uploader = ? AND status <> ?", NormalizeEmployeeID(employeeID), PhotoStatusRejected).
		Count(&count).Error
	if err != nil {
		log.Error("failed to count photos by uploader", "error", err)
		return 0, err
	}
	return count, nil
}

func (c *Client) HasNonRejectedForTheme(ctx context.Context, employeeID, theme string) (bool, error) {
	var count int64
	err := c.db.WithContext(ctx).Model(&Photo{}).
		Where("uploader = ? AND theme = ? AND status <> ?", NormalizeEmployeeID(employeeID), theme, PhotoStatusRejected).
		Count(&count).Error
	if err != nil {
		log.Error("failed to check theme submission", "error", err)
		return false, err
	}
	return count > 0, nil
}

// SetPhotoStatus updates the moderation status. Approval clears any
// prior rejection reason.
func (c *Client) SetPhotoStatus(ctx context.Context, photoID string, status PhotoStatus, rejectionReason *string) error {
	updates := map[string]any{
		"status":           status,
		"rejection_reason": rejectionReason,
	}
	result := c.db.WithContext(ctx).Model(&Photo{}).Where("photo_id = ?", photoID).Updates(updates)
	if result.Error != nil {
		log.Error("failed to update photo status", "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeletePhotoWithVotes removes the photo record and every vote
// referencing it in a single transaction.
func (c *Client) DeletePhotoWithVotes(ctx context.Context, photoID string) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("photo_id = ?", photoID).Delete(&Photo{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("photo_id = ?", photoID).Delete(&Vote{}).Error
	})
}
