package imagestore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/snapvote/snapvote/internal/config"
)

// RemoteStore pushes photos to an external HTTP image store so the
// contest can be served from hosts without persistent local storage.
type RemoteStore struct {
	cfg    *config.RemoteImagesConfig
	client *http.Client
}

func NewRemoteStore(cfg *config.RemoteImagesConfig) *RemoteStore {
	return &RemoteStore{
		cfg: cfg,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *RemoteStore) objectURL(photoID string) string {
	return fmt.Sprintf("%s/photos/%s.jpg", s.cfg.URL, photoID)
}

func (s *RemoteStore) authorize(req *http.Request) {
	if s.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	}
}

// Put uploads image bytes and returns the retrievable URL.
func (s *RemoteStore) Put(ctx context.Context, photoID string, data []byte) (string, error) {
	url := s.objectURL(photoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "image/jpeg")
	s.authorize(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("failed to upload image: HTTP %d", resp.StatusCode)
	}
	return url, nil
}

// Get downloads the image bytes for a stored URL.
func (s *RemoteStore) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	s.authorize(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: HTTP %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("invalid content type: %s", contentType)
	}

	return io.ReadAll(resp.Body)
}

// Delete removes the remote asset for a photo.
func (s *RemoteStore) Delete(ctx context.Context, photoID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.objectURL(photoID), nil)
	if err != nil {
		return err
	}
	s.authorize(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("failed to delete image: HTTP %d", resp.StatusCode)
	}
	return nil
}
