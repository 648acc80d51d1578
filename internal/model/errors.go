package model

import (
	"errors"
	"fmt"
)

// ErrBackend matches every *BackendError via errors.Is.
var ErrBackend = errors.New("backend error")

// BackendError is returned when the remote store answers with a non-2xx status
// or cannot be reached at all (StatusCode 0).
type BackendError struct {
	Op         string
	StatusCode int
	Status     string
	Err        error
}

func (e *BackendError) Error() string {
	if e.StatusCode == 0 && e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: remote store answered %s", e.Op, e.Status)
}

func (e *BackendError) Unwrap() error { return e.Err }

func (e *BackendError) Is(target error) bool { return target == ErrBackend }
