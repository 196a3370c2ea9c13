package imagestore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// LocalStore keeps photos on the local filesystem, one JPEG per photo
// id. Writes go through a temp file and a rename so an interrupted
// write never leaves a half-written photo behind.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create photo directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save writes the image bytes and returns the stored filename.
func (s *LocalStore) Save(photoID string, data []byte) (string, error) {
	filename := photoID + ".jpg"
	finalPath := filepath.Join(s.dir, filename)
	tempPath := filepath.Join(s.dir, "tmp_"+filename)

	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	if err := os.Rename(tempPath, finalPath); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("failed to move image into place: %w", err)
	}
	return filename, nil
}

func (s *LocalStore) Open(filename string) ([]byte, error) {
	// filenames are generated from uuids, but never trust a stored path
	if filepath.Base(filename) != filename {
		return nil, fmt.Errorf("invalid filename: %s", filename)
	}
	return os.ReadFile(filepath.Join(s.dir, filename))
}

func (s *LocalStore) Delete(filename string) error {
	if filepath.Base(filename) != filename {
		return fmt.Errorf("invalid filename: %s", filename)
	}
	err := os.Remove(filepath.Join(s.dir, filename))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Sweep removes files that belong to no known photo, plus stale temp
// files left behind by interrupted writes.
func (s *LocalStore) Sweep(known map[string]struct{}, tempMaxAge time.Duration) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("failed to read photo directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()

		if strings.HasPrefix(name, "tmp_") {
			info, err := entry.Info()
			if err != nil {
				continue
			}
			if time.Since(info.ModTime()) > tempMaxAge {
				if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
					log.Warn("failed to remove stale temp file", "file", name, "error", err)
				} else {
					log.Debug("removed stale temp file", "file", name)
				}
			}
			continue
		}

		if _, ok := known[name]; !ok {
			if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
				log.Warn("failed to remove orphaned image", "file", name, "error", err)
			} else {
				log.Info("removed orphaned image", "file", name)
			}
		}
	}
	return nil
}
