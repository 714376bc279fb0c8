package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kenziemed/medclient/internal/logging"
	"github.com/kenziemed/medclient/internal/models"
	"go.uber.org/zap"
)

// FileStore persists the session record as a JSON file under the user's
// configuration directory. It is the local-profile analog of the
// browser's per-origin storage.
type FileStore struct {
	path   string
	logger *logging.SafeLogger
}

// NewFileStore creates a file-backed storage. An empty path selects the
// default location under the user configuration directory.
func NewFileStore(path string, logger *logging.SafeLogger) (*FileStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve user config dir: %w", err)
		}
		path = filepath.Join(dir, "medclient", "session.json")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create session dir: %w", err)
	}

	return &FileStore{path: path, logger: logger}, nil
}

// Path returns the session file location
func (s *FileStore) Path() string {
	return s.path
}

// Read loads the persisted session record
func (s *FileStore) Read(ctx context.Context) (*Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, models.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		s.logger.Warn("session file is not valid JSON",
			zap.String("path", s.path),
			zap.Error(err))
		return nil, models.ErrCorruptSession
	}

	if record.Token == "" {
		return nil, models.ErrSessionNotFound
	}

	return &record, nil
}

// Write persists the session record. The write is atomic: a temp file
// is renamed over the previous one so a crash never leaves a torn file.
func (s *FileStore) Write(ctx context.Context, record *Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}

	return nil
}

// Clear removes the persisted session
func (s *FileStore) Clear(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
