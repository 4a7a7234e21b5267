// Package dedup persists the identifiers and content fingerprints of every
// post that has been relayed, in two flat JSON array files. The record only
// grows; there is no eviction. The store assumes a single sequential process:
// Save is a read-modify-write of the full state and would race under
// concurrent writers.
package dedup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"animerelay/pkg/config"
	"animerelay/pkg/logger"
)

// Store reads and writes the dedup state files
type Store struct {
	idsPath     string
	contentPath string
	logger      logger.Logger
}

// NewStore creates a store over the configured state files
func NewStore(cfg *config.DedupConfig, log logger.Logger) *Store {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Store{
		idsPath:     cfg.PostedIDsFile,
		contentPath: cfg.PostedContentFile,
		logger:      log,
	}
}

// Load reads both state files. Missing files yield empty sets and no error.
// On a read or parse error the returned sets are still usable (empty), so
// the caller can log the error and keep going with a fresh state.
func (s *Store) Load() (ids Set, fingerprints Set, err error) {
	var errs []error

	ids, err = readSet(s.idsPath)
	if err != nil {
		s.logger.WithError(err).WithField("path", s.idsPath).Error("failed to load posted IDs, starting empty")
		ids = NewSet()
		errs = append(errs, err)
	}

	fingerprints, err = readSet(s.contentPath)
	if err != nil {
		s.logger.WithError(err).WithField("path", s.contentPath).Error("failed to load posted content hashes, starting empty")
		fingerprints = NewSet()
		errs = append(errs, err)
	}

	return ids, fingerprints, errors.Join(errs...)
}

// Save records one relayed post: it re-reads the current state, adds the new
// identifier and fingerprint, and rewrites both files atomically.
func (s *Store) Save(id, fingerprint string) error {
	ids, fingerprints, err := s.Load()
	if err != nil {
		// Fall back to whatever was readable; the new entry still gets
		// recorded so the item is not relayed twice.
		s.logger.WithError(err).Warn("saving dedup state over a partially loaded record")
	}

	ids.Add(id)
	fingerprints.Add(fingerprint)

	if err := writeSet(s.idsPath, ids); err != nil {
		return fmt.Errorf("failed to write posted IDs: %w", err)
	}
	if err := writeSet(s.contentPath, fingerprints); err != nil {
		return fmt.Errorf("failed to write posted content hashes: %w", err)
	}

	return nil
}

// readSet loads a JSON string array file into a Set. A missing file is an
// empty set.
func readSet(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewSet(), nil
		}
		return nil, err
	}

	var set Set
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if set == nil {
		set = NewSet()
	}
	return set, nil
}

// writeSet rewrites the full set atomically: write to a temp file, sync,
// then rename over the old file, so a crash never leaves a truncated state.
func writeSet(path string, set Set) error {
	data, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to encode set: %w", err)
	}

	tempPath := path + ".tmp"
	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to write state: %w", err)
	}

	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to sync state file: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close state file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to replace state file: %w", err)
	}

	return nil
}
