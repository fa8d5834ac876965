// Package repository implements raw-SQL persistence over MySQL.  The
// sentinel values below let services distinguish failure scenarios
// without parsing driver errors; services translate them into the
// business error catalog.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a unique key
// (MySQL error 1062).
var ErrDuplicate = errors.New("duplicate")

// ErrInsufficientSeats is returned when a guarded seat decrement affects
// no rows because the slot no longer holds enough seats.
var ErrInsufficientSeats = errors.New("insufficient seats")

// ErrSlotMissing is returned when a cancellation cannot restore seats
// because the inventory row for the booking's slot no longer exists.
var ErrSlotMissing = errors.New("slot missing")

// ErrAlreadyCancelled is returned when a status flip finds the booking
// already cancelled.
var ErrAlreadyCancelled = errors.New("already cancelled")

// isDuplicateKey detects MySQL duplicate-entry failures without importing
// driver internals.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
