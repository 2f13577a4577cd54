// Package store reads and writes the issue document and holds the session's
// in-memory copy of it.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/heyandras/gridwatch/issue"
	"github.com/natefinch/atomic"
	"go.uber.org/zap"
)

const filePerms = 0o644

var errNotArray = errors.New("top-level value is not a JSON array")

// Store owns one issue document on disk. Every save rewrites the whole
// document; saves are serialised.
type Store struct {
	path   string
	logger *zap.Logger
	mu     sync.Mutex
}

// New creates a store for the document at path. A nil logger disables logging.
func New(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		path:   path,
		logger: logger.With(zap.String("path", path)),
	}
}

// Path returns the document location.
func (s *Store) Path() string {
	return s.path
}

// Load reads and parses the whole document, applying field defaults.
// All failures are *DataLoadError.
func (s *Store) Load() ([]issue.Issue, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.logger.Error("Failed to read issue document", zap.Error(err))
		return nil, &DataLoadError{Path: s.path, Err: err}
	}

	issues, err := Decode(data)
	if err != nil {
		s.logger.Error("Failed to parse issue document", zap.Error(err))
		return nil, &DataLoadError{Path: s.path, Err: err}
	}

	s.logger.Debug("Loaded issues", zap.Int("count", len(issues)))
	return issues, nil
}

// Save overwrites the document with issues. The write goes through a temp
// file and rename, so a failed save leaves the previous document intact.
// All failures are *DataPersistError.
func (s *Store) Save(issues []issue.Issue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeDocument(s.path, issues); err != nil {
		s.logger.Error("Failed to save issues", zap.Int("count", len(issues)), zap.Error(err))
		return &DataPersistError{Path: s.path, Err: err}
	}

	s.logger.Info("Saved issues", zap.Int("count", len(issues)))
	return nil
}

// WriteCopy writes issues to another path in the same format.
func (s *Store) WriteCopy(path string, issues []issue.Issue) error {
	if err := writeDocument(path, issues); err != nil {
		s.logger.Error("Failed to write copy", zap.String("target", path), zap.Error(err))
		return &DataPersistError{Path: path, Err: err}
	}
	s.logger.Info("Wrote copy", zap.String("target", path), zap.Int("count", len(issues)))
	return nil
}

// Decode parses a document: a JSON array of issue objects with unique ids.
func Decode(data []byte) ([]issue.Issue, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errNotArray
	}

	var issues []issue.Issue
	if err := json.Unmarshal(trimmed, &issues); err != nil {
		return nil, err
	}
	for n := range issues {
		issue.ApplyDefaults(&issues[n])
	}
	if err := issue.Validate(issues); err != nil {
		return nil, err
	}
	if issues == nil {
		issues = []issue.Issue{}
	}
	return issues, nil
}

// Encode renders issues as the on-disk document: 4-space indentation, no
// HTML escaping, trailing newline.
func Encode(issues []issue.Issue) ([]byte, error) {
	if issues == nil {
		issues = []issue.Issue{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(issues); err != nil {
		return nil, fmt.Errorf("failed to encode issues: %w", err)
	}
	return buf.Bytes(), nil
}

func writeDocument(path string, issues []issue.Issue) error {
	data, err := Encode(issues)
	if err != nil {
		return err
	}

	_, statErr := os.Stat(path)
	isNew := os.IsNotExist(statErr)

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	// atomic.WriteFile only carries permissions over from an existing file
	if isNew {
		if err := os.Chmod(path, filePerms); err != nil {
			return fmt.Errorf("failed to set file permissions: %w", err)
		}
	}
	return nil
}
