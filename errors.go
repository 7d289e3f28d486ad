package composex

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownKind is returned by Registry.Create when a descriptor's kind
	// matches no registered constructor. Top-level unknown kinds are never
	// silently defaulted.
	ErrUnknownKind = errors.New("unknown kind")

	// ErrInvalidComposition is returned at wrap time for a chain that cannot
	// be formed: a nil inner behavior or a nil effect. Composition errors
	// surface immediately, never at invocation time.
	ErrInvalidComposition = errors.New("invalid composition")
)

// PanicError converts a recovered panic value into an error for capture in
// a ListenerError.
func PanicError(recovered any) error {
	return fmt.Errorf("panic: %v", recovered)
}

// ListenerError records a single failed delivery within a notification pass.
// Panics raised by a listener are converted to errors before capture.
type ListenerError struct {
	ListenerID string
	Err        error
}

func (e ListenerError) Error() string {
	return fmt.Sprintf("listener %q: %v", e.ListenerID, e.Err)
}

func (e ListenerError) Unwrap() error { return e.Err }

// DeliveryError aggregates listener failures from one SetState pass. The
// pass itself always runs to completion; failures are collected and reported
// after every registered listener has been offered the notification.
type DeliveryError struct {
	Subject  string
	Failures []ListenerError
}

func (e *DeliveryError) Error() string {
	ids := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		ids[i] = f.ListenerID
	}
	return fmt.Sprintf("subject %q: %d listener(s) failed: %s",
		e.Subject, len(e.Failures), strings.Join(ids, ", "))
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *DeliveryError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}
