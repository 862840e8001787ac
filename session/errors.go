package session

import (
	"errors"
	"fmt"
)

// ErrBusy is returned when a generation or custom-section request arrives
// while another one is still in flight.
var ErrBusy = errors.New("session: generation already in progress")

// GenerationError reports a failed GenerateContent or AddCustomSection call.
// The store has already rolled back when it is returned.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("session: %s: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// PersistenceWarning reports a failed load or save against the KV. It is
// handed to the warning handler and never returned from an action.
type PersistenceWarning struct {
	Op  string // "load" or "save"
	Key string
	Err error
}

func (w *PersistenceWarning) Error() string {
	return fmt.Sprintf("session: %s %q: %v", w.Op, w.Key, w.Err)
}

func (w *PersistenceWarning) Unwrap() error { return w.Err }
