package store

import (
	"errors"
	"fmt"
)

// Sentinel categories for storage failures. They are wrapped in a
// StorageError so callers can match the category with errors.Is while
// still seeing the operation and path involved.
var (
	// ErrNotFound reports a missing workspace file.
	ErrNotFound = errors.New("file not found")
	// ErrWriteFailed reports a failed write transaction.
	ErrWriteFailed = errors.New("write failed")
	// ErrCircularInclude reports an include directive that loops back on
	// a file currently being resolved.
	ErrCircularInclude = errors.New("circular include")
)

// StorageError carries the operation and path of a storage failure along
// with its cause.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op, path string, err error) *StorageError {
	return &StorageError{Op: op, Path: path, Err: err}
}
