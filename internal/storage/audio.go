package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrOutsideDir is returned when a requested file name resolves outside the
// audio directory.
var ErrOutsideDir = errors.New("file path escapes audio directory")

// Store writes and serves the MP3 files under a single audio directory.
type Store struct {
	dir string
}

// New makes sure the audio directory exists and returns a store over it.
func New(dir string) (*Store, error) {
	if dir == "" {
		dir = "audio"
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve audio directory: %w", err)
	}

	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audio directory: %w", err)
	}

	return &Store{dir: abs}, nil
}

// Dir returns the absolute audio directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes one audio payload under a unique timestamped name and returns
// the bare file name and its full path.
func (s *Store) Save(data []byte) (string, string, error) {
	fileName := fmt.Sprintf("%d-%s.mp3", time.Now().UnixMilli(), uuid.NewString()[:8])
	fullPath := filepath.Join(s.dir, fileName)

	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", "", fmt.Errorf("failed to write audio file: %w", err)
	}

	logrus.WithFields(logrus.Fields{"file": fileName, "bytes": len(data)}).Info("audio file saved")
	return fileName, fullPath, nil
}

// Resolve maps a bare file name to its full path, rejecting names that would
// escape the audio directory.
func (s *Store) Resolve(fileName string) (string, error) {
	fullPath := filepath.Join(s.dir, fileName)
	if !strings.HasPrefix(fullPath, s.dir+string(filepath.Separator)) {
		return "", ErrOutsideDir
	}
	return fullPath, nil
}

// Remove deletes a stored audio file by its full path.
func (s *Store) Remove(fullPath string) error {
	return os.Remove(fullPath)
}
