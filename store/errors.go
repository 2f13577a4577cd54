package store

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrDataLoad    = errors.New("data load failed")
	ErrDataPersist = errors.New("data persist failed")
	ErrNotFound    = errors.New("issue not found")
)

// DataLoadError reports that the issue document could not be read or parsed.
// The dashboard has nothing to show without it.
type DataLoadError struct {
	Path string
	Err  error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("could not load issues from %s: %v", e.Path, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

func (e *DataLoadError) Is(target error) bool { return target == ErrDataLoad }

// DataPersistError reports a failed save. The in-memory collection is kept so
// the save can be retried.
type DataPersistError struct {
	Path string
	Err  error
}

func (e *DataPersistError) Error() string {
	return fmt.Sprintf("could not save issues to %s: %v", e.Path, e.Err)
}

func (e *DataPersistError) Unwrap() error { return e.Err }

func (e *DataPersistError) Is(target error) bool { return target == ErrDataPersist }

// NotFoundError reports an update aimed at an id that is not in the collection.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("issue #%d not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }
