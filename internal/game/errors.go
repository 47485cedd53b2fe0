package game

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalChoice is returned when a binding is not one of the action's
	// current choices.
	ErrIllegalChoice = errors.New("illegal choice")
	// ErrAmbiguousResolution is returned when an object on the stack has more
	// than one way to resolve.
	ErrAmbiguousResolution = errors.New("stack object has more than one resolution")
	// ErrEmptyStack is returned by ResolveTop when nothing is waiting.
	ErrEmptyStack = errors.New("stack is empty")
	// ErrUnsettled is returned when Settle gives up before the stack and the
	// trigger queue are empty.
	ErrUnsettled = errors.New("state did not settle")
)

// StaleIdentityError reports a lookup of an identity that is not in the
// state being read.
type StaleIdentityError struct {
	ID ObjectID
}

func (e *StaleIdentityError) Error() string {
	return fmt.Sprintf("object %d is not in this state", e.ID)
}

// illegal builds an ErrIllegalChoice for panics raised inside Do.
func illegal(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrIllegalChoice, fmt.Sprintf(format, args...))
}

// contractViolation reports whether a recovered panic value is one of the
// contract errors a transition converts back into a returned error.
func contractViolation(r any) (error, bool) {
	err, ok := r.(error)
	if !ok {
		return nil, false
	}
	var stale *StaleIdentityError
	if errors.As(err, &stale) || errors.Is(err, ErrIllegalChoice) {
		return err, true
	}
	return nil, false
}
