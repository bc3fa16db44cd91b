package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrElementNotFound is matched by every ElementNotFoundError.
	ErrElementNotFound = errors.New("element not found")

	// ErrInvalidState is returned when an operation is called out of order.
	ErrInvalidState = errors.New("invalid driver state")

	// errMissing is returned by browserPage implementations when an element
	// did not appear within its timeout.
	errMissing = errors.New("element missing")
)

// ElementNotFoundError means the page layout changed or the content did not
// render within the wait window.
type ElementNotFoundError struct {
	Step     string
	Selector string
	Err      error
}

func (e *ElementNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s %q: %v", e.Step, ErrElementNotFound, e.Selector, e.Err)
	}
	return fmt.Sprintf("%s: %s %q", e.Step, ErrElementNotFound, e.Selector)
}

func (e *ElementNotFoundError) Is(target error) bool {
	return target == ErrElementNotFound
}

func (e *ElementNotFoundError) Unwrap() error {
	return e.Err
}

// InvalidStateError reports the operation and the state it was attempted in.
type InvalidStateError struct {
	Op    string
	State State
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: cannot %s while %s", ErrInvalidState, e.Op, e.State)
}

func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}

// pageErr converts a missing-element failure from the page into an
// ElementNotFoundError and wraps anything else with the step name.
func pageErr(step, selector string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, errMissing) {
		return &ElementNotFoundError{Step: step, Selector: selector, Err: err}
	}
	return fmt.Errorf("%s: %w", step, err)
}
