package store

import (
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
)

// ErrNotFound is returned when a quiz does not exist.
var ErrNotFound = errors.New("quiz not found")

// Primary SQLite result codes for contention.
const (
	sqliteBusy   = 5
	sqliteLocked = 6
)

// RetryableError wraps a write that failed because the database was busy or
// locked. Retrying later may succeed.
type RetryableError struct {
	Op  string
	Err error
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("%s: database busy: %v", e.Op, e.Err)
}

func (e *RetryableError) Unwrap() error { return e.Err }

// wrap annotates err with op, marking contention errors as retryable.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if isBusy(err) {
		return &RetryableError{Op: op, Err: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isBusy(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		code := se.Code() & 0xff
		return code == sqliteBusy || code == sqliteLocked
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "sqlite_busy")
}
