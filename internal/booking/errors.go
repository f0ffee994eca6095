package booking

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrLoadFailure       = errors.New("failed to load day")
	ErrPlayerNotBooked   = errors.New("player has no bookings on this date")
	ErrRemindersDisabled = errors.New("reminders are not configured")
)

// ValidationError lists every problem with a request. Nothing is written
// when a request fails validation.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func (e *ValidationError) add(problem string) {
	e.Problems = append(e.Problems, problem)
}

func (e *ValidationError) orNil() error {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}

type FailureKind string

const (
	// FailureConflict: the slot is booked under a configuration this save
	// cannot reconcile. The slot is skipped.
	FailureConflict FailureKind = "conflict"
	// FailurePersistence: a store call failed. The rest of the slot is
	// abandoned.
	FailurePersistence FailureKind = "persistence"
	// FailureLoad: the day could not be re-read after the mutations.
	FailureLoad FailureKind = "load"
)

// SlotFailure reports one failed step of a save.
type SlotFailure struct {
	Kind    FailureKind `json:"kind"`
	Slot    string      `json:"slot,omitempty"`
	Player  string      `json:"player,omitempty"`
	Op      string      `json:"op"`
	Message string      `json:"message"`
	Err     error       `json:"-"`
}

func (f SlotFailure) Error() string {
	var b strings.Builder
	b.WriteString(string(f.Kind))
	b.WriteString(": ")
	b.WriteString(f.Op)
	if f.Slot != "" {
		b.WriteString(" [slot ")
		b.WriteString(f.Slot)
		b.WriteString("]")
	}
	if f.Player != "" {
		b.WriteString(" [player ")
		b.WriteString(f.Player)
		b.WriteString("]")
	}
	b.WriteString(": ")
	b.WriteString(f.Message)
	return b.String()
}

func (f SlotFailure) Unwrap() error {
	return f.Err
}

func persistenceFailure(op, slot, player string, err error) SlotFailure {
	msg := err.Error()
	if errors.Is(err, context.DeadlineExceeded) {
		msg = "store call timed out"
	}
	return SlotFailure{
		Kind:    FailurePersistence,
		Slot:    slot,
		Player:  player,
		Op:      op,
		Message: msg,
		Err:     err,
	}
}

func conflictFailure(slot, msg string) SlotFailure {
	return SlotFailure{
		Kind:    FailureConflict,
		Slot:    slot,
		Op:      "reconcile slot",
		Message: msg,
	}
}
