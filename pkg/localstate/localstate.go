// Package localstate persists small JSON blobs to the local filesystem,
// one file per namespaced key. It is the durable backing for records
// created in mock mode, reloaded when the store is constructed.
package localstate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/itherhq/ither/pkg/logger"
)

// Store reads and writes JSON state files under a base directory.
type Store struct {
	basePath string
}

// New creates a Store rooted at basePath, creating the directory if needed.
func New(basePath string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create local state directory")
		return nil, fmt.Errorf("failed to create local state directory %s: %w", basePath, err)
	}

	return &Store{basePath: basePath}, nil
}

// Save serializes v as JSON under key, replacing any previous value.
func (s *Store) Save(key string, v interface{}) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode state for key %s: %w", key, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		logger.Error().Err(err).Str("key", key).Msg("Failed to write state file")
		return fmt.Errorf("failed to write state for key %s: %w", key, err)
	}

	return nil
}

// Load reads the value stored under key into v. It reports whether a
// value was present; a missing key is not an error.
func (s *Store) Load(key string, v interface{}) (bool, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		logger.Error().Err(err).Str("key", key).Msg("Failed to read state file")
		return false, fmt.Errorf("failed to read state for key %s: %w", key, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode state for key %s: %w", key, err)
	}

	return true, nil
}

// Delete removes the value stored under key. Deleting an absent key is
// not an error.
func (s *Store) Delete(key string) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete state for key %s: %w", key, err)
	}

	return nil
}

// pathFor maps a key to a file path, rejecting keys that would escape
// the base directory.
func (s *Store) pathFor(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, "/\\") || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid state key: %q", key)
	}
	return filepath.Join(s.basePath, key+".json"), nil
}
