// Package composex is a small framework for building configured objects,
// composing their behavior through ordered wrapper chains, and broadcasting
// state changes to registered listeners.
//
// The three pieces compose leaf-to-root: a Registry produces a Constructible
// from a Descriptor, zero or more Wrappers turn it into one effective
// Behavior, and a Subject fans out state transitions caused by invoking that
// behavior. All baseline operations are synchronous and single-threaded; see
// the concurrent package for the goroutine-safe Subject variant.
package composex

import "context"

// Behavior is the invocation capability every composable entity satisfies.
// Wrappers preserve this signature, so any Behavior can stand in for any
// other as a chain base or a standalone invocation target.
type Behavior interface {
	Invoke(ctx context.Context, input any) (any, error)
}

// BehaviorFunc adapts a plain function to the Behavior interface.
type BehaviorFunc func(ctx context.Context, input any) (any, error)

func (f BehaviorFunc) Invoke(ctx context.Context, input any) (any, error) {
	return f(ctx, input)
}

// Constructible is a factory-produced entity: a Behavior with a stable
// identity. Construction is all-or-nothing; a Constructible handed to a
// caller is always fully initialized.
type Constructible interface {
	Behavior

	// Name returns the entity's stable identity.
	Name() string
}

type constructible struct {
	name string
	fn   BehaviorFunc
}

func (c *constructible) Name() string { return c.name }

func (c *constructible) Invoke(ctx context.Context, input any) (any, error) {
	return c.fn(ctx, input)
}

// NewConstructible wraps a behavior function with an identity. Variants that
// differ only by parameter should be closures over their configuration, not
// distinct types.
func NewConstructible(name string, fn BehaviorFunc) Constructible {
	return &constructible{name: name, fn: fn}
}
