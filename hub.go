package composex

import (
	"context"

	"github.com/google/uuid"
)

// Listener receives state change notifications from a Subject. Identity is
// the dedupe key: a Subject holds at most one subscription per listener ID.
type Listener interface {
	ID() string
	OnChange(ctx context.Context, state any) error
}

type listenerFunc struct {
	id string
	fn func(ctx context.Context, state any) error
}

func (l *listenerFunc) ID() string { return l.id }

func (l *listenerFunc) OnChange(ctx context.Context, state any) error {
	return l.fn(ctx, state)
}

// ListenerFunc adapts a plain function to the Listener interface.
func ListenerFunc(id string, fn func(ctx context.Context, state any) error) Listener {
	return &listenerFunc{id: id, fn: fn}
}

// Subscription is the handle returned by Subscribe. Handles are non-owning:
// cancelling one removes the listener from the subject's registration order
// but does not affect the listener itself.
type Subscription struct {
	token    uuid.UUID
	listener Listener
	subject  *Subject
}

// ListenerID returns the identity of the subscribed listener.
func (s *Subscription) ListenerID() string { return s.listener.ID() }

// Token returns the subscription's unique token.
func (s *Subscription) Token() string { return s.token.String() }

// Cancel unsubscribes the listener. Safe to call more than once.
func (s *Subscription) Cancel() {
	if s.subject != nil {
		s.subject.Unsubscribe(s)
	}
}

// Subject holds mutable state and broadcasts every transition to its
// registered listeners, synchronously, in registration order.
//
// The baseline Subject is single-threaded: Subscribe, Unsubscribe, and
// SetState must all run on one goroutine. Re-entrant calls from within a
// listener callback are fine; concurrent calls are not. Use the concurrent
// package when multiple goroutines share a subject.
type Subject struct {
	name  string
	state any
	subs  []*Subscription
}

// NewSubject creates a Subject with an initial state. No notification is
// delivered for the initial value.
func NewSubject(name string, initial any) *Subject {
	return &Subject{name: name, state: initial}
}

// Name returns the subject's identity.
func (s *Subject) Name() string { return s.name }

// State returns the current state.
func (s *Subject) State() any { return s.state }

// Len returns the number of registered listeners.
func (s *Subject) Len() int { return len(s.subs) }

// Subscribe appends the listener to the registration order and returns its
// handle. Subscribing an identity that is already registered is a no-op
// returning the existing handle, so no listener is ever delivered to twice
// in one pass. A listener subscribed during an active delivery pass is not
// notified for that pass.
func (s *Subject) Subscribe(l Listener) *Subscription {
	if l == nil {
		return nil
	}
	for _, sub := range s.subs {
		if sub.listener.ID() == l.ID() {
			return sub
		}
	}
	sub := &Subscription{token: uuid.New(), listener: l, subject: s}
	s.subs = append(s.subs, sub)
	return sub
}

// Unsubscribe removes the subscription, preserving the order of the rest.
// Removing a nil, foreign, or already-removed handle is a no-op. Safe to
// call from within a listener callback, for the listener's own handle or
// anyone else's; the in-flight pass still delivers to its snapshot.
func (s *Subject) Unsubscribe(sub *Subscription) {
	if sub == nil || sub.subject != s {
		return
	}
	for i, cur := range s.subs {
		if cur.token == sub.token {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

// SetState updates the state, then delivers OnChange(newState) to every
// listener registered at the moment the pass began, in registration order,
// on the caller's goroutine. Each delivery is isolated: an error or panic in
// one listener never blocks the rest. After the pass, failures (if any) are
// reported together as a *DeliveryError.
func (s *Subject) SetState(ctx context.Context, newState any) error {
	s.state = newState

	// Snapshot so that listeners mutating the registration order mid-pass
	// cannot corrupt the in-flight delivery sequence.
	snapshot := make([]*Subscription, len(s.subs))
	copy(snapshot, s.subs)

	var failures []ListenerError
	for _, sub := range snapshot {
		if err := deliver(ctx, sub.listener, newState); err != nil {
			failures = append(failures, ListenerError{ListenerID: sub.listener.ID(), Err: err})
		}
	}

	if len(failures) > 0 {
		return &DeliveryError{Subject: s.name, Failures: failures}
	}
	return nil
}

// deliver isolates one listener invocation, converting panics to errors.
func deliver(ctx context.Context, l Listener, state any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = PanicError(r)
		}
	}()
	return l.OnChange(ctx, state)
}
