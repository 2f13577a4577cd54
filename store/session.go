package store

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/heyandras/gridwatch/issue"
	"go.uber.org/zap"
)

// Session holds the issue collection for one dashboard run. The collection is
// read once and served from memory; it is re-read only after a save.
//
// If the document is changed by someone else between load and save, the
// session's save overwrites it (last writer wins).
type Session struct {
	store  *Store
	logger *zap.Logger

	mu     sync.RWMutex
	issues []issue.Issue
}

// Open loads the store's document into a new session.
func Open(s *Store) (*Session, error) {
	issues, err := s.Load()
	if err != nil {
		return nil, err
	}
	return &Session{
		store:  s,
		logger: s.logger,
		issues: issues,
	}, nil
}

// Path returns the backing document location.
func (s *Session) Path() string {
	return s.store.Path()
}

// Issues returns a copy of the full collection in document order.
func (s *Session) Issues() []issue.Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]issue.Issue, len(s.issues))
	copy(out, s.issues)
	return out
}

// Get returns the issue with id.
func (s *Session) Get(id int) (issue.Issue, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx := s.indexOf(id); idx >= 0 {
		return s.issues[idx], true
	}
	return issue.Issue{}, false
}

// Filter returns the issues matching c in document order.
func (s *Session) Filter(c issue.Criteria) []issue.Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return issue.Filter(s.issues, c)
}

// Summary computes the counters over the full, unfiltered collection.
func (s *Session) Summary() issue.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return issue.Summarize(s.issues)
}

// Update sets status and solution on the issue with id, then saves the whole
// collection. An unknown id returns *NotFoundError and nothing is written.
// A failed save returns *DataPersistError; the edit stays in memory so the
// caller can retry.
func (s *Session) Update(id int, status, solution string) error {
	if !issue.ValidStatus(status) {
		return fmt.Errorf("%w: %q", issue.ErrInvalidStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		s.logger.Warn("Update for unknown issue", zap.Int("id", id))
		return &NotFoundError{ID: id}
	}

	s.issues[idx].Status = status
	s.issues[idx].Solution = solution
	s.logger.Info("Updated issue", zap.Int("id", id), zap.String("status", status))

	if err := s.store.Save(s.issues); err != nil {
		return err
	}
	s.refreshLocked()
	return nil
}

// Save writes the in-memory collection as it is, for retrying after a
// failed update.
func (s *Session) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Save(s.issues); err != nil {
		return err
	}
	s.refreshLocked()
	return nil
}

// Export writes the in-memory collection next to the document as
// <name>_updated.json and returns that path.
func (s *Session) Export() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	target := ExportPath(s.store.Path())
	if err := s.store.WriteCopy(target, s.issues); err != nil {
		return "", err
	}
	return target, nil
}

// ExportPath derives the export location for a document path.
func ExportPath(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		ext = ".json"
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + "_updated" + ext
}

// refreshLocked re-reads the document after a save. A failed re-read keeps
// the in-memory collection, which is what was just written.
func (s *Session) refreshLocked() {
	issues, err := s.store.Load()
	if err != nil {
		s.logger.Warn("Keeping in-memory issues after refresh failure", zap.Error(err))
		return
	}
	s.issues = issues
}

func (s *Session) indexOf(id int) int {
	for n, i := range s.issues {
		if i.ID == id {
			return n
		}
	}
	return -1
}
