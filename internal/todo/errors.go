package todo

import (
	"errors"
	"fmt"
)

// ErrEmptyTask is returned by Add when the text is empty after trimming.
var ErrEmptyTask = errors.New("task text is empty")

// Op names a store operation that touches storage.
type Op string

const (
	OpLoad      Op = "load"
	OpAdd       Op = "add"
	OpDelete    Op = "delete"
	OpDeleteAll Op = "delete all"
)

// PersistError is a storage read or write failure.
// For writes the in-memory list already holds the change.
type PersistError struct {
	Op  Op
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s tasks: %v", e.Op, e.Err)
}

// Unwrap returns the underlying storage error.
func (e *PersistError) Unwrap() error {
	return e.Err
}

// Notice returns the user-facing message for an error returned by the Store.
func Notice(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrEmptyTask) {
		return "Please enter a task."
	}
	var pe *PersistError
	if errors.As(err, &pe) {
		switch pe.Op {
		case OpAdd:
			return "Could not save the task."
		case OpDelete:
			return "Could not remove the task."
		case OpDeleteAll:
			return "Could not remove all tasks."
		case OpLoad:
			return "Could not load tasks."
		}
	}
	return err.Error()
}
