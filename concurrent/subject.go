package concurrent

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/comalice/composex"
)

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	token    uuid.UUID
	listener composex.Listener
	subject  *Subject
}

// ListenerID returns the identity of the subscribed listener.
func (s *Subscription) ListenerID() string { return s.listener.ID() }

// Token returns the subscription's unique token.
func (s *Subscription) Token() string { return s.token.String() }

// Cancel unsubscribes the listener. Safe to call more than once and from
// any goroutine.
func (s *Subscription) Cancel() {
	if s.subject != nil {
		s.subject.Unsubscribe(s)
	}
}

// Subject is the goroutine-safe counterpart of composex.Subject. See the
// package documentation for the locking discipline.
type Subject struct {
	name string

	state atomic.Pointer[any]

	// regMu guards copy-on-write mutation of subs. Never held during
	// listener callbacks.
	regMu sync.Mutex
	subs  atomic.Pointer[[]*Subscription]

	// deliverMu serializes SetState passes: state update and snapshot
	// selection are atomic, and passes never interleave.
	deliverMu sync.Mutex
}

// NewSubject creates a Subject with an initial state. No notification is
// delivered for the initial value.
func NewSubject(name string, initial any) *Subject {
	s := &Subject{name: name}
	s.state.Store(&initial)
	empty := make([]*Subscription, 0)
	s.subs.Store(&empty)
	return s
}

// Name returns the subject's identity.
func (s *Subject) Name() string { return s.name }

// State returns the most recently set state.
func (s *Subject) State() any { return *s.state.Load() }

// Len returns the number of registered listeners.
func (s *Subject) Len() int { return len(*s.subs.Load()) }

// Subscribe appends the listener to the registration order, deduplicated by
// listener ID: subscribing a registered identity is a no-op returning the
// existing handle. A listener subscribed while a delivery pass is running
// joins the next pass, not the in-flight one.
func (s *Subject) Subscribe(l composex.Listener) *Subscription {
	if l == nil {
		return nil
	}
	s.regMu.Lock()
	defer s.regMu.Unlock()

	cur := *s.subs.Load()
	for _, sub := range cur {
		if sub.listener.ID() == l.ID() {
			return sub
		}
	}

	sub := &Subscription{token: uuid.New(), listener: l, subject: s}
	next := make([]*Subscription, len(cur), len(cur)+1)
	copy(next, cur)
	next = append(next, sub)
	s.subs.Store(&next)
	return sub
}

// Unsubscribe removes the subscription, preserving the order of the rest.
// Removing a nil, foreign, or already-removed handle is a no-op. An
// in-flight pass keeps delivering to the snapshot it started with.
func (s *Subject) Unsubscribe(sub *Subscription) {
	if sub == nil || sub.subject != s {
		return
	}
	s.regMu.Lock()
	defer s.regMu.Unlock()

	cur := *s.subs.Load()
	for i, c := range cur {
		if c.token == sub.token {
			next := make([]*Subscription, 0, len(cur)-1)
			next = append(next, cur[:i]...)
			next = append(next, cur[i+1:]...)
			s.subs.Store(&next)
			return
		}
	}
}

// SetState updates the state and delivers OnChange(newState) to the
// snapshot of listeners registered when the pass began, in registration
// order, on the caller's goroutine. Concurrent SetState calls are
// serialized. Failures are isolated per listener and aggregated into a
// *composex.DeliveryError after the pass.
func (s *Subject) SetState(ctx context.Context, newState any) error {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	s.state.Store(&newState)
	snapshot := *s.subs.Load()

	var failures []composex.ListenerError
	for _, sub := range snapshot {
		if err := deliver(ctx, sub.listener, newState); err != nil {
			failures = append(failures, composex.ListenerError{ListenerID: sub.listener.ID(), Err: err})
		}
	}

	if len(failures) > 0 {
		return &composex.DeliveryError{Subject: s.name, Failures: failures}
	}
	return nil
}

func deliver(ctx context.Context, l composex.Listener, state any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = composex.PanicError(r)
		}
	}()
	return l.OnChange(ctx, state)
}
