// Package concurrent provides a goroutine-safe Subject for composex.
//
// The baseline composex.Subject is single-threaded by design. This variant
// hardens the same contract for concurrent use:
//
//   - The listener list is an immutable slice behind an atomic pointer;
//     Subscribe and Unsubscribe copy-on-write under a registration mutex.
//   - SetState passes are serialized by a delivery mutex, so deliveries for
//     one Subject are strictly ordered by the sequence of SetState calls and
//     never interleave.
//   - The registration mutex is never held while listener callbacks run, so
//     a listener may Subscribe or Unsubscribe (itself or others) from within
//     OnChange without deadlock.
//
// Snapshot-at-delivery-start semantics and per-listener failure isolation
// match the baseline Subject exactly.
//
// One restriction the baseline does not have: a listener must not call
// SetState on the same Subject from inside its own OnChange. Pass ordering
// requires the delivery mutex to be held for the whole pass, so a re-entrant
// SetState self-deadlocks. Dispatch follow-up transitions from another
// goroutine instead.
//
// Nothing is shared across Subjects; each carries its own locks and list.
package concurrent
