// Package imagestore persists uploaded photos and serves their bytes
// back through a fallback chain: remote store, inline payload, local
// file. Retrieval never returns an error to the caller; if every source
// fails, a generated placeholder is served instead.
package imagestore

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/snapvote/snapvote/internal/config"
)

// Reference identifies a stored image across the fallback chain. Any
// one populated field is enough to serve the photo.
type Reference struct {
	Filename    string
	RemoteURL   *string
	InlineImage *string
}

// Images coordinates the local store, the optional remote store and
// the inline fallback.
type Images struct {
	cfg    *config.ImagesConfig
	local  *LocalStore
	remote *RemoteStore
}

func New(cfg *config.ImagesConfig) (*Images, error) {
	local, err := NewLocalStore(cfg.Dir)
	if err != nil {
		return nil, err
	}

	var remote *RemoteStore
	if cfg.Remote != nil && cfg.Remote.Enabled {
		remote = NewRemoteStore(cfg.Remote)
	}

	return &Images{
		cfg:    cfg,
		local:  local,
		remote: remote,
	}, nil
}

// Process decodes the uploaded image, scales it down to the configured
// bounding box and re-encodes it as JPEG.
func (i *Images) Process(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > i.cfg.MaxWidth || bounds.Dy() > i.cfg.MaxHeight {
		img = imaging.Fit(img, i.cfg.MaxWidth, i.cfg.MaxHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(i.cfg.Quality)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// Store persists processed image bytes and returns the reference
// recorded with the photo. The local file is always written; the
// remote store is used when configured, with the inline payload as the
// fallback when the remote upload fails or no remote is configured.
func (i *Images) Store(ctx context.Context, photoID string, data []byte) (*Reference, error) {
	filename, err := i.local.Save(photoID, data)
	if err != nil {
		return nil, err
	}

	ref := &Reference{Filename: filename}

	if i.remote != nil {
		url, err := i.remote.Put(ctx, photoID, data)
		if err != nil {
			log.Warn("remote image upload failed, falling back to inline payload", "photo", photoID, "error", err)
		} else {
			ref.RemoteURL = &url
			return ref, nil
		}
	}

	if i.cfg.InlineFallback {
		inline := base64.StdEncoding.EncodeToString(data)
		ref.InlineImage = &inline
	}
	return ref, nil
}

// Fetch returns the image bytes for a reference, walking the fallback
// chain. It never fails; a placeholder is returned when every source
// misses.
func (i *Images) Fetch(ctx context.Context, ref Reference) []byte {
	if i.remote != nil && ref.RemoteURL != nil && *ref.RemoteURL != "" {
		data, err := i.remote.Get(ctx, *ref.RemoteURL)
		if err == nil {
			return data
		}
		log.Debug("remote image fetch failed, trying fallback", "url", *ref.RemoteURL, "error", err)
	}

	if ref.InlineImage != nil && *ref.InlineImage != "" {
		data, err := base64.StdEncoding.DecodeString(*ref.InlineImage)
		if err == nil {
			return data
		}
		log.Debug("inline image decode failed, trying fallback", "error", err)
	}

	if ref.Filename != "" {
		data, err := i.local.Open(ref.Filename)
		if err == nil {
			return data
		}
		log.Debug("local image read failed", "filename", ref.Filename, "error", err)
	}

	return i.Placeholder()
}

// Remove best-effort deletes the backing assets for a reference.
// Failures are logged, never returned: orphaned assets are tolerated.
func (i *Images) Remove(ctx context.Context, photoID string, ref Reference) {
	if i.remote != nil && ref.RemoteURL != nil && *ref.RemoteURL != "" {
		if err := i.remote.Delete(ctx, photoID); err != nil {
			log.Warn("failed to delete remote image", "photo", photoID, "error", err)
		}
	}
	if ref.Filename != "" {
		if err := i.local.Delete(ref.Filename); err != nil {
			log.Warn("failed to delete local image", "filename", ref.Filename, "error", err)
		}
	}
}

// Local exposes the local store for maintenance jobs.
func (i *Images) Local() *LocalStore {
	return i.local
}

// Placeholder returns a neutral gray JPEG used when a photo cannot be
// retrieved from any source.
func (i *Images) Placeholder() []byte {
	img := imaging.New(400, 300, color.NRGBA{R: 0xe5, G: 0xe7, B: 0xeb, A: 0xff})
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(i.cfg.Quality)); err != nil {
		log.Error("failed to encode placeholder image", "error", err)
		return nil
	}
	return buf.Bytes()
}
